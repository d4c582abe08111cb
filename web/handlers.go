package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"datacleaners/config"
	"datacleaners/models"
	"datacleaners/services"
	"datacleaners/utils"
)

// Handlers serves the upload forms and their results. Nothing is kept
// between requests.
type Handlers struct {
	cfg      *config.Config
	logger   *utils.Logger
	pipeline *services.Pipeline
	tmpl     *template.Template
}

// NewHandlers parses the page templates and returns ready handlers.
func NewHandlers(cfg *config.Config, logger *utils.Logger, pipeline *services.Pipeline) (*Handlers, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}
	return &Handlers{cfg: cfg, logger: logger, pipeline: pipeline, tmpl: tmpl}, nil
}

// Index lists the tools.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, &page{
		Tool:     "home",
		Title:    "FortuneMarq Data Cleaners",
		Icon:     "📈",
		Subtitle: "Automated cleaning for high-quality data exports.",
	})
}

// Leads shows the lead cleaner form and, on POST, its result.
func (h *Handlers) Leads(w http.ResponseWriter, r *http.Request) {
	p := &page{
		Tool:     "leads",
		Title:    "FortuneMarq Data Cleaners",
		Icon:     "📈",
		Subtitle: "Automated lead cleaning for high-quality data exports.",
		City:     h.cfg.DefaultCity,
	}
	if r.Method == http.MethodPost {
		h.cleanLeads(w, r, p)
	}
	h.render(w, p)
}

func (h *Handlers) cleanLeads(w http.ResponseWriter, r *http.Request, p *page) {
	fail := func(err error) {
		h.logger.Warn("[web] Lead cleaning failed: %v", err)
		p.Error = "Something went wrong while processing the file: " + err.Error()
		p.Hint = (&services.SchemaError{Required: services.RequiredLeadColumns()}).Hint()
	}

	if err := h.parseUploadForm(w, r); err != nil {
		fail(err)
		return
	}
	if city := strings.TrimSpace(r.FormValue("city")); city != "" {
		p.City = city
	}
	upload, err := singleUpload(r, "file")
	if err != nil {
		fail(err)
		return
	}
	leads, err := h.pipeline.CleanLeads(upload, p.City)
	if err != nil {
		fail(err)
		return
	}
	art, err := leadsArtifact(p.City, leads)
	if err != nil {
		fail(err)
		return
	}

	records := make([][]string, 0, len(leads))
	for _, l := range leads {
		records = append(records, l.Record())
	}
	p.Success = fmt.Sprintf("Cleaning complete! Found %d valid leads.", len(leads))
	p.PreviewTitle = "Preview of Cleaned Data"
	p.Columns = models.LeadHeader
	p.Rows = preview(records, h.cfg.LeadPreviewRows)
	p.offer("Download Cleaned CSV", art)
}

// Keywords shows the commercial keyword finder and, on POST, its result.
func (h *Handlers) Keywords(w http.ResponseWriter, r *http.Request) {
	p := &page{
		Tool:     "keywords",
		Title:    "FortuneMarq Commercial Keyword Finder",
		Icon:     "💰",
		Subtitle: "Filters: High Intent & Commercial Keywords Only",
	}
	if r.Method == http.MethodPost {
		h.filterKeywords(w, r, p)
	}
	h.render(w, p)
}

func (h *Handlers) filterKeywords(w http.ResponseWriter, r *http.Request, p *page) {
	fail := func(err error) {
		h.logger.Warn("[web] Keyword filtering failed: %v", err)
		p.Error = "Error: " + err.Error()
	}

	if err := h.parseUploadForm(w, r); err != nil {
		fail(err)
		return
	}
	upload, err := singleUpload(r, "file")
	if err != nil {
		fail(err)
		return
	}
	res, err := h.pipeline.FilterKeywords(upload)
	if err != nil {
		fail(err)
		return
	}
	art, err := keywordsArtifact(res)
	if err != nil {
		fail(err)
		return
	}

	m := res.Metrics
	p.Success = fmt.Sprintf("Found %d Commercial High-Intent Keywords.", m.Total)
	p.Metrics = []metric{
		{Label: "Total Commercial Keywords", Value: fmt.Sprint(m.Total)},
		{Label: "Total Commercial Volume", Value: services.FormatVolume(m.TotalSearches)},
		{Label: "Avg. Market CPC", Value: services.FormatCPC(h.cfg.CurrencySymbol, m.AvgCPC)},
	}
	p.PreviewTitle = "High Intent Keyword List"
	p.Columns = services.RequiredKeywordColumns()
	rows := make([][]string, 0, len(res.Keywords))
	for _, k := range preview(res.Keywords, h.cfg.KeywordPreviewRows) {
		rows = append(rows, []string{k.Text, models.FormatNumber(k.AvgMonthlySearches), models.FormatNumber(k.TopOfPageBidHigh)})
	}
	p.Rows = rows
	p.offer("Download Commercial Keywords", art)
}

// Report shows the niche comparison form and, on POST, its result.
func (h *Handlers) Report(w http.ResponseWriter, r *http.Request) {
	p := &page{
		Tool:     "report",
		Title:    "FortuneMarq Niche Market Report",
		Icon:     "📊",
		Subtitle: "Compare commercial keyword demand across niches, one export per niche.",
	}
	if r.Method == http.MethodPost {
		h.buildReport(w, r, p)
	}
	h.render(w, p)
}

func (h *Handlers) buildReport(w http.ResponseWriter, r *http.Request, p *page) {
	fail := func(err error) {
		h.logger.Warn("[web] Report failed: %v", err)
		p.Error = "Error: " + err.Error()
	}

	if err := h.parseUploadForm(w, r); err != nil {
		fail(err)
		return
	}
	uploads, skipped := collectUploads(r, "files")
	if len(uploads) == 0 && len(skipped) == 0 {
		fail(errNoFile)
		return
	}

	reports, errs := h.pipeline.Report(uploads)
	skipped = append(skipped, errs...)
	for _, e := range skipped {
		p.Warnings = append(p.Warnings, "Skipped "+e.Error())
	}
	if len(reports) == 0 {
		p.Error = "None of the uploaded files could be processed."
		return
	}

	csvArt, err := reportArtifact(reports, "csv")
	if err != nil {
		fail(err)
		return
	}
	xlsxArt, err := reportArtifact(reports, "xlsx")
	if err != nil {
		fail(err)
		return
	}

	p.Success = fmt.Sprintf("Compared %d niches.", len(reports))
	p.PreviewTitle = "Niche Comparison"
	p.Columns = models.NicheReportHeader
	for _, rep := range reports {
		p.Rows = append(p.Rows, []string{
			rep.Niche,
			fmt.Sprint(rep.TotalKeywords),
			services.FormatVolume(rep.TotalSearches),
			services.FormatCPC(h.cfg.CurrencySymbol, rep.AvgCPC),
			rep.TopKeyword,
		})
	}
	p.offer("Download Report (CSV)", csvArt)
	p.offer("Download Report (Excel)", xlsxArt)
}

// Export shows the keyword export cleaner and, on POST, its result.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	p := &page{
		Tool:     "export",
		Title:    "FortuneMarq Keyword Export Cleaner",
		Icon:     "🧹",
		Subtitle: "Percentages become fractions, missing bids become 0, empty columns are dropped.",
	}
	if r.Method == http.MethodPost {
		h.cleanExport(w, r, p)
	}
	h.render(w, p)
}

func (h *Handlers) cleanExport(w http.ResponseWriter, r *http.Request, p *page) {
	fail := func(err error) {
		h.logger.Warn("[web] Export cleaning failed: %v", err)
		p.Error = "Error: " + err.Error()
	}

	if err := h.parseUploadForm(w, r); err != nil {
		fail(err)
		return
	}
	upload, err := singleUpload(r, "file")
	if err != nil {
		fail(err)
		return
	}
	res, err := h.pipeline.CleanExport(upload)
	if err != nil {
		fail(err)
		return
	}
	art, err := exportArtifact(res)
	if err != nil {
		fail(err)
		return
	}

	p.Success = fmt.Sprintf("Cleaned %d rows; dropped %d empty columns.", len(res.Table.Rows), len(res.DroppedColumns))
	p.PreviewTitle = "Preview of Cleaned Export"
	p.Columns = res.Table.Header
	p.Rows = preview(res.Table.Rows, h.cfg.LeadPreviewRows)
	p.offer("Download Cleaned Export", art)
}

// collectUploads reads every file under field. Files that cannot be read
// are returned as errors instead of aborting the batch.
func collectUploads(r *http.Request, field string) ([]models.Upload, []*services.FileError) {
	var (
		uploads []models.Upload
		errs    []*services.FileError
	)
	for _, fh := range formFiles(r, field) {
		u, err := readUpload(fh)
		if err != nil {
			var fileErr *services.FileError
			if !errors.As(err, &fileErr) {
				fileErr = &services.FileError{File: fh.Filename, Err: err}
			}
			errs = append(errs, fileErr)
			continue
		}
		uploads = append(uploads, u)
	}
	return uploads, errs
}
