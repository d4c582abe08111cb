package services

import (
	"math"
	"sort"

	"datacleaners/models"
	"datacleaners/utils"
)

// Keyword-planner column labels, matched exactly after header trimming.
const (
	KeywordColumn  = "Keyword"
	SearchesColumn = "Avg. monthly searches"
	BidHighColumn  = "Top of page bid (high range)"
)

// RequiredKeywordColumns lists the columns a keyword-planner export must have.
func RequiredKeywordColumns() []string {
	return []string{KeywordColumn, SearchesColumn, BidHighColumn}
}

// CommercialKeywordsFileName is the download name of the filtered list.
const CommercialKeywordsFileName = "Commercial_HighIntent_Keywords.csv"

// KeywordFilter classifies keyword-planner rows by intent.
type KeywordFilter struct {
	logger      *utils.Logger
	educational TermMatcher
	commercial  TermMatcher
}

// NewKeywordFilter creates a KeywordFilter. Keywords containing any
// educational term are dropped; keywords without a bid are kept only when
// they contain a commercial term.
func NewKeywordFilter(logger *utils.Logger, educational, commercial []string) *KeywordFilter {
	return &KeywordFilter{
		logger:      logger,
		educational: NewTermMatcher(educational),
		commercial:  NewTermMatcher(commercial),
	}
}

// Parse checks the schema and normalizes every row. Null cells are blanked
// and the numeric columns are rewritten with their coerced values, so
// Fields can be exported as-is under table.Header.
func (f *KeywordFilter) Parse(table *models.Table) ([]*models.Keyword, error) {
	required := RequiredKeywordColumns()
	if missing := table.Missing(required...); len(missing) > 0 {
		return nil, &SchemaError{File: table.Name, Missing: missing, Required: required}
	}

	kwIdx := table.Index(KeywordColumn)
	volIdx := table.Index(SearchesColumn)
	bidIdx := table.Index(BidHighColumn)

	out := make([]*models.Keyword, 0, len(table.Rows))
	for _, row := range table.Rows {
		fields := make([]string, len(table.Header))
		for i := range fields {
			if v := models.Cell(row, i); !IsNull(v) {
				fields[i] = v
			}
		}
		k := &models.Keyword{
			Text:               fields[kwIdx],
			AvgMonthlySearches: ParseNumber(fields[volIdx]),
			TopOfPageBidHigh:   ParseNumber(fields[bidIdx]),
			Fields:             fields,
		}
		fields[volIdx] = models.FormatNumber(k.AvgMonthlySearches)
		fields[bidIdx] = models.FormatNumber(k.TopOfPageBidHigh)
		out = append(out, k)
	}
	return out, nil
}

// Filter runs the full single-file pipeline: dedupe, drop zero-volume,
// drop educational, keep commercial, sort by volume descending.
func (f *KeywordFilter) Filter(table *models.Table) ([]*models.Keyword, models.KeywordMetrics, error) {
	all, err := f.Parse(table)
	if err != nil {
		return nil, models.KeywordMetrics{}, err
	}

	kws := Dedupe(all)
	deduped := len(kws)
	kws = WithVolume(kws)
	withVolume := len(kws)
	kws = f.excludeEducational(kws)
	informational := withVolume - len(kws)
	kws = f.keepCommercial(kws)
	SortBySearches(kws)

	metrics := Metrics(kws)
	f.logger.Info("[keywords] %s: %d rows → %d commercial keywords (duplicates: %d, no volume: %d, educational: %d)",
		table.Name, len(all), len(kws), len(all)-deduped, deduped-withVolume, informational)
	return kws, metrics, nil
}

// Commercial applies only the volume and commercial-intent rules, keeping
// duplicates and informational phrasing. Used for per-niche counts.
func (f *KeywordFilter) Commercial(kws []*models.Keyword) []*models.Keyword {
	return f.keepCommercial(WithVolume(kws))
}

// IsEducational reports whether the keyword reads as informational.
func (f *KeywordFilter) IsEducational(text string) bool {
	return f.educational.Match(text)
}

// IsCommercial reports whether the keyword signals purchase intent.
func (f *KeywordFilter) IsCommercial(k *models.Keyword) bool {
	return k.TopOfPageBidHigh > 0 || f.commercial.Match(k.Text)
}

func (f *KeywordFilter) excludeEducational(kws []*models.Keyword) []*models.Keyword {
	out := make([]*models.Keyword, 0, len(kws))
	for _, k := range kws {
		if f.IsEducational(k.Text) {
			f.logger.Debug("[keywords] Educational keyword skipped: %s", k.Text)
			continue
		}
		out = append(out, k)
	}
	return out
}

func (f *KeywordFilter) keepCommercial(kws []*models.Keyword) []*models.Keyword {
	out := make([]*models.Keyword, 0, len(kws))
	for _, k := range kws {
		if f.IsCommercial(k) {
			out = append(out, k)
		}
	}
	return out
}

// Dedupe keeps the first row for each keyword text.
func Dedupe(kws []*models.Keyword) []*models.Keyword {
	seen := utils.NewKeySet()
	out := make([]*models.Keyword, 0, len(kws))
	for _, k := range kws {
		if seen.Add(k.Text) {
			out = append(out, k)
		}
	}
	return out
}

// WithVolume drops keywords with no monthly searches.
func WithVolume(kws []*models.Keyword) []*models.Keyword {
	out := make([]*models.Keyword, 0, len(kws))
	for _, k := range kws {
		if k.AvgMonthlySearches > 0 {
			out = append(out, k)
		}
	}
	return out
}

// SortBySearches orders keywords by monthly searches, highest first.
// Equal volumes keep their relative order.
func SortBySearches(kws []*models.Keyword) {
	sort.SliceStable(kws, func(i, j int) bool {
		return kws[i].AvgMonthlySearches > kws[j].AvgMonthlySearches
	})
}

// Metrics summarizes a keyword list. AvgCPC averages only positive bids and
// is NaN when there are none.
func Metrics(kws []*models.Keyword) models.KeywordMetrics {
	m := models.KeywordMetrics{Total: len(kws), AvgCPC: math.NaN()}
	var bidSum float64
	var bidCount int
	for _, k := range kws {
		m.TotalSearches += k.AvgMonthlySearches
		if k.TopOfPageBidHigh > 0 {
			bidSum += k.TopOfPageBidHigh
			bidCount++
		}
	}
	if bidCount > 0 {
		m.AvgCPC = bidSum / float64(bidCount)
	}
	return m
}
