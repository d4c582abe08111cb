package services

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"datacleaners/models"
	"datacleaners/storage"
	"datacleaners/utils"
)

// NicheReportFileName is the download name of the comparison report.
const NicheReportFileName = "Niche_Market_Report"

// NicheReporter compares the commercial keyword demand of several
// keyword-planner exports, one niche per file.
type NicheReporter struct {
	logger *utils.Logger
	filter *KeywordFilter
}

// NewNicheReporter creates a NicheReporter that classifies with filter.
func NewNicheReporter(logger *utils.Logger, filter *KeywordFilter) *NicheReporter {
	return &NicheReporter{logger: logger, filter: filter}
}

// Report summarizes each file in upload order. A file that cannot be read
// or lacks the keyword columns is skipped and reported in the returned
// errors; the rest are still processed. Rows are ordered by total monthly
// searches, highest first.
func (r *NicheReporter) Report(files []models.Upload) ([]*models.NicheReport, []*FileError) {
	var (
		reports []*models.NicheReport
		errs    []*FileError
	)

	for _, f := range files {
		report, err := r.reportFile(f)
		if err != nil {
			r.logger.Warn("[report] Skipping %s: %v", f.Name, err)
			errs = append(errs, &FileError{File: f.Name, Err: err})
			continue
		}
		reports = append(reports, report)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].TotalSearches > reports[j].TotalSearches
	})

	r.logger.Info("[report] %d files → %d niches (%d skipped)", len(files), len(reports), len(errs))
	return reports, errs
}

func (r *NicheReporter) reportFile(f models.Upload) (*models.NicheReport, error) {
	table, err := storage.ReadKeywordFile(f.Name, f.Data)
	if err != nil {
		return nil, err
	}
	kws, err := r.filter.Parse(table)
	if err != nil {
		return nil, err
	}
	return Summarize(NicheName(f.Name), r.filter.Commercial(kws)), nil
}

// Summarize builds one report row from a niche's commercial keywords.
// TopKeyword is the first keyword with the highest volume, or N/A.
func Summarize(niche string, kws []*models.Keyword) *models.NicheReport {
	m := Metrics(kws)
	report := &models.NicheReport{
		Niche:         niche,
		TotalKeywords: m.Total,
		TotalSearches: m.TotalSearches,
		AvgCPC:        m.AvgCPC,
		TopKeyword:    models.NotAvailable,
	}
	var top *models.Keyword
	for _, k := range kws {
		if top == nil || k.AvgMonthlySearches > top.AvgMonthlySearches {
			top = k
		}
	}
	if top != nil {
		report.TopKeyword = top.Text
	}
	return report
}

var printer = message.NewPrinter(language.English)

// FormatVolume renders a search volume with thousands separators.
func FormatVolume(v float64) string {
	return printer.Sprintf("%.0f", v)
}

// FormatCPC renders an average bid with its currency symbol, or N/A.
func FormatCPC(symbol string, v float64) string {
	if math.IsNaN(v) {
		return models.NotAvailable
	}
	return printer.Sprintf("%s%.2f", symbol, v)
}

// Print writes the report as a terminal table.
func (r *NicheReporter) Print(w io.Writer, currency string, reports []*models.NicheReport, errs []*FileError) {
	sep := strings.Repeat("═", 78)
	thin := strings.Repeat("─", 78)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 NICHE MARKET REPORT\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	if len(reports) == 0 {
		fmt.Fprintf(w, "  No niches could be processed\n")
	} else {
		fmt.Fprintf(w, "  \033[1;33m%-24s %8s %14s %10s  %s\033[0m\n",
			"Niche", "Keywords", "Searches/mo", "Avg CPC", "Top keyword")
		fmt.Fprintf(w, "  %s\n", thin)
		for _, rep := range reports {
			fmt.Fprintf(w, "  %-24s %8d %14s %10s  %s\n",
				truncate(rep.Niche, 24), rep.TotalKeywords, FormatVolume(rep.TotalSearches),
				FormatCPC(currency, rep.AvgCPC), truncate(rep.TopKeyword, 24))
		}
	}

	if len(errs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "\033[1;31m  Skipped files\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		for _, e := range errs {
			fmt.Fprintf(w, "  %s\n", e.Error())
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
