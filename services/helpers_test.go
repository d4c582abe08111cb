package services

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"datacleaners/models"
	"datacleaners/utils"
)

func newTestLogger() *utils.Logger { return utils.Discard() }

func newTestFilter() *KeywordFilter {
	return NewKeywordFilter(newTestLogger(),
		[]string{"what is", "how to", "types of", "meaning", "causes", "symptoms", "history", "example", "defined"},
		[]string{"near me", "cost", "price", "clinic", "specialist", "treatment", "implant", "whitening", "best", "root canal", "braces", "dentist", "fees"},
	)
}

// keywordTable builds a planner table from (keyword, searches, bid) triples.
func keywordTable(rows ...[3]string) *models.Table {
	t := &models.Table{
		Name:   "test.csv",
		Header: []string{"Keyword", "Currency", "Avg. monthly searches", "Top of page bid (high range)"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r[0], "INR", r[1], r[2]})
	}
	return t
}

// plannerText renders a keyword-planner export: two banner lines, a
// tab-separated header with padded labels, then rows.
func plannerText(rows ...[3]string) string {
	var b strings.Builder
	b.WriteString("Keyword Stats 2026-10-01 at 10_00_00\n")
	b.WriteString("All locations\n")
	b.WriteString(" Keyword \tCurrency\tAvg. monthly searches\tTop of page bid (high range)\n")
	for _, r := range rows {
		b.WriteString(r[0] + "\tINR\t" + r[1] + "\t" + r[2] + "\n")
	}
	return b.String()
}

func utf16Bytes(t *testing.T, s string) []byte {
	t.Helper()
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	out, _, err := transform.Bytes(enc, []byte(s))
	if err != nil {
		t.Fatalf("encode utf-16: %v", err)
	}
	return out
}

func keywordTexts(kws []*models.Keyword) []string {
	out := make([]string, len(kws))
	for i, k := range kws {
		out[i] = k.Text
	}
	return out
}
