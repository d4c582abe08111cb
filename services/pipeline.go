package services

import (
	"datacleaners/models"
	"datacleaners/storage"
	"datacleaners/utils"
)

// KeywordResult is the outcome of the single-file keyword pipeline.
type KeywordResult struct {
	Header   []string
	Keywords []*models.Keyword
	Metrics  models.KeywordMetrics
}

// Pipeline runs each cleaner end to end on an upload: decode, parse,
// clean. Read failures are returned as *FileError naming the upload.
type Pipeline struct {
	Leads    *LeadCleaner
	Keywords *KeywordFilter
	Reporter *NicheReporter
	Export   *ExportCleaner
}

// NewPipeline wires the cleaners with shared logging and term lists.
func NewPipeline(logger *utils.Logger, educational, commercial []string) *Pipeline {
	filter := NewKeywordFilter(logger, educational, commercial)
	return &Pipeline{
		Leads:    NewLeadCleaner(logger),
		Keywords: filter,
		Reporter: NewNicheReporter(logger, filter),
		Export:   NewExportCleaner(logger),
	}
}

// CleanLeads reads a scraped lead export and cleans it for city.
func (p *Pipeline) CleanLeads(u models.Upload, city string) ([]*models.Lead, error) {
	table, err := storage.ReadLeadFile(u.Name, u.Data)
	if err != nil {
		return nil, &FileError{File: u.Name, Err: err}
	}
	return p.Leads.Clean(table, city)
}

// FilterKeywords reads one keyword-planner export and returns its
// commercial high-intent keywords.
func (p *Pipeline) FilterKeywords(u models.Upload) (*KeywordResult, error) {
	table, err := storage.ReadKeywordFile(u.Name, u.Data)
	if err != nil {
		return nil, &FileError{File: u.Name, Err: err}
	}
	kws, metrics, err := p.Keywords.Filter(table)
	if err != nil {
		return nil, err
	}
	return &KeywordResult{Header: table.Header, Keywords: kws, Metrics: metrics}, nil
}

// Report compares several keyword-planner exports.
func (p *Pipeline) Report(files []models.Upload) ([]*models.NicheReport, []*FileError) {
	return p.Reporter.Report(files)
}

// CleanExport reads a converted keyword export and tidies it.
func (p *Pipeline) CleanExport(u models.Upload) (*ExportResult, error) {
	table, err := storage.ReadExportFile(u.Name, u.Data)
	if err != nil {
		return nil, &FileError{File: u.Name, Err: err}
	}
	return p.Export.Clean(table), nil
}
