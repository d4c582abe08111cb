package web

import (
	"bytes"
	"encoding/base64"
	"html/template"

	"datacleaners/models"
	"datacleaners/services"
	"datacleaners/storage"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// artifact is a generated download.
type artifact struct {
	FileName    string
	ContentType string
	Data        []byte
}

// dataURI embeds the artifact in a link so no result is kept server-side.
func (a artifact) dataURI() template.URL {
	return template.URL("data:" + a.ContentType + ";base64," + base64.StdEncoding.EncodeToString(a.Data))
}

func csvArtifact(name string, header []string, records [][]string) (artifact, error) {
	var buf bytes.Buffer
	if err := storage.WriteCSV(&buf, header, records); err != nil {
		return artifact{}, err
	}
	return artifact{FileName: name, ContentType: contentTypeCSV, Data: buf.Bytes()}, nil
}

func leadsArtifact(city string, leads []*models.Lead) (artifact, error) {
	return csvArtifact(services.LeadsFileName(city), models.LeadHeader, storage.LeadRecords(leads))
}

func keywordsArtifact(res *services.KeywordResult) (artifact, error) {
	return csvArtifact(services.CommercialKeywordsFileName, res.Header, storage.KeywordRecords(res.Keywords))
}

func exportArtifact(res *services.ExportResult) (artifact, error) {
	return csvArtifact(services.CleanedExportFileName, res.Table.Header, res.Table.Rows)
}

func reportArtifact(reports []*models.NicheReport, format string) (artifact, error) {
	records := storage.NicheReportRecords(reports)
	if format != "xlsx" {
		return csvArtifact(services.NicheReportFileName+".csv", models.NicheReportHeader, records)
	}

	var buf bytes.Buffer
	xw, err := storage.NewXLSXWriter(&buf, "Niche Report", models.NicheReportHeader)
	if err != nil {
		return artifact{}, err
	}
	if err := storage.WriteTable(xw, records); err != nil {
		return artifact{}, err
	}
	return artifact{FileName: services.NicheReportFileName + ".xlsx", ContentType: contentTypeXLSX, Data: buf.Bytes()}, nil
}
