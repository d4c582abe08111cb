package services

import (
	"datacleaners/models"
	"datacleaners/utils"
)

// Columns touched by the export cleaner. All are optional.
var (
	PercentColumns  = []string{"Three month change", "YoY change"}
	ZeroFillColumns = []string{"Top of page bid (low range)", "Competition (indexed value)"}
)

// CleanedExportFileName is the download name of a cleaned keyword export.
const CleanedExportFileName = "Cleaned_Keywords.csv"

// ExportResult is a cleaned keyword export and what was removed from it.
type ExportResult struct {
	Table          *models.Table
	DroppedColumns []string
}

// ExportCleaner tidies an already-converted keyword export for analysis.
type ExportCleaner struct {
	logger *utils.Logger
}

// NewExportCleaner creates an ExportCleaner with the given logger.
func NewExportCleaner(logger *utils.Logger) *ExportCleaner {
	return &ExportCleaner{logger: logger}
}

// Clean converts percentage columns to fractions, fills missing bids and
// competition values with 0, blanks null markers, and drops columns that
// are empty in every row. A table with no rows keeps all its columns.
func (c *ExportCleaner) Clean(table *models.Table) *ExportResult {
	width := len(table.Header)
	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		out := make([]string, width)
		for j := range out {
			if v := models.Cell(row, j); !IsNull(v) {
				out[j] = v
			}
		}
		rows[i] = out
	}

	for _, col := range PercentColumns {
		idx := table.Index(col)
		if idx < 0 {
			continue
		}
		for _, row := range rows {
			row[idx] = models.FormatNumber(ParsePercent(row[idx]))
		}
	}
	for _, col := range ZeroFillColumns {
		idx := table.Index(col)
		if idx < 0 {
			continue
		}
		for _, row := range rows {
			if row[idx] == "" {
				row[idx] = "0"
			}
		}
	}

	keep := make([]int, 0, width)
	var dropped []string
	for j, h := range table.Header {
		if len(rows) > 0 && columnEmpty(rows, j) {
			dropped = append(dropped, h)
			continue
		}
		keep = append(keep, j)
	}

	result := &models.Table{Name: table.Name, Header: make([]string, 0, len(keep))}
	for _, j := range keep {
		result.Header = append(result.Header, table.Header[j])
	}
	for _, row := range rows {
		out := make([]string, 0, len(keep))
		for _, j := range keep {
			out = append(out, row[j])
		}
		result.Rows = append(result.Rows, out)
	}

	c.logger.Info("[export] %s: %d rows, %d → %d columns", table.Name, len(rows), width, len(keep))
	if len(dropped) > 0 {
		c.logger.Debug("[export] Dropped empty columns: %v", dropped)
	}
	return &ExportResult{Table: result, DroppedColumns: dropped}
}

func columnEmpty(rows [][]string, j int) bool {
	for _, row := range rows {
		if row[j] != "" {
			return false
		}
	}
	return true
}
