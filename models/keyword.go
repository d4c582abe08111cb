package models

import (
	"math"
	"strconv"
)

// NotAvailable is shown wherever a derived value is undefined.
const NotAvailable = "N/A"

// Keyword is one normalized row of a keyword-planner export.
// Fields keeps every source cell so the row can be written back with the
// original header; the numeric columns inside it are rewritten with their
// normalized values.
type Keyword struct {
	Text               string
	AvgMonthlySearches float64
	TopOfPageBidHigh   float64
	Fields             []string
}

// KeywordMetrics summarizes a filtered keyword list.
type KeywordMetrics struct {
	Total         int
	TotalSearches float64
	// AvgCPC is the mean of positive bids; NaN when there are none.
	AvgCPC float64
}

// HasAvgCPC reports whether AvgCPC is defined.
func (m KeywordMetrics) HasAvgCPC() bool {
	return !math.IsNaN(m.AvgCPC)
}

// NicheReport is one row of the multi-file comparison, one per input file.
type NicheReport struct {
	Niche         string
	TotalKeywords int
	TotalSearches float64
	// AvgCPC is the mean of positive bids; NaN when there are none.
	AvgCPC     float64
	TopKeyword string
}

// HasAvgCPC reports whether AvgCPC is defined.
func (r *NicheReport) HasAvgCPC() bool {
	return !math.IsNaN(r.AvgCPC)
}

// NicheReportHeader is the header row of the report export.
var NicheReportHeader = []string{
	"Niche", "Total Commercial Keywords", "Total Monthly Searches", "Avg CPC", "Top Keyword",
}

// Record returns the row in NicheReportHeader column order. An undefined
// AvgCPC is written as an empty cell.
func (r *NicheReport) Record() []string {
	cpc := ""
	if r.HasAvgCPC() {
		cpc = FormatNumber(r.AvgCPC)
	}
	return []string{
		r.Niche,
		strconv.Itoa(r.TotalKeywords),
		FormatNumber(r.TotalSearches),
		cpc,
		r.TopKeyword,
	}
}
