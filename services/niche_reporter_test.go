package services

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"datacleaners/models"
)

func TestNicheReporterPartialFailure(t *testing.T) {
	r := NewNicheReporter(newTestLogger(), newTestFilter())
	files := []models.Upload{
		{Name: "dental_clinics.csv", Data: utf16Bytes(t, plannerText(
			[3]string{"dentist near me", "1000", "0"},
			[3]string{"what is root canal cost", "5000", "0"},
			[3]string{"tooth pain", "700", "0"},
		))},
		{Name: "broken_file.csv", Data: []byte("banner\nbanner\nfoo\tbar\n1\t2\n")},
		{Name: "car_rental.csv", Data: []byte(plannerText(
			[3]string{"self drive car", "4000", "15"},
			[3]string{"car rental price", "2000", "0"},
			[3]string{"car rental price", "2000", "0"},
		))},
	}

	reports, errs := r.Report(files)
	if len(reports) != 2 {
		t.Fatalf("expected 2 report rows, got %d", len(reports))
	}
	if len(errs) != 1 || errs[0].File != "broken_file.csv" {
		t.Fatalf("expected one error for broken_file.csv, got %v", errs)
	}
	var schemaErr *SchemaError
	if !errors.As(errs[0], &schemaErr) {
		t.Errorf("expected schema error, got %v", errs[0].Err)
	}

	car, dental := reports[0], reports[1]
	if car.Niche != "car rental" || dental.Niche != "dental clinics" {
		t.Fatalf("order: got %q, %q", car.Niche, dental.Niche)
	}
	if car.TotalKeywords != 3 || car.TotalSearches != 8000 {
		t.Errorf("car rental: got %d keywords / %v searches", car.TotalKeywords, car.TotalSearches)
	}
	if car.AvgCPC != 15 || car.TopKeyword != "self drive car" {
		t.Errorf("car rental: got cpc %v top %q", car.AvgCPC, car.TopKeyword)
	}
	if dental.TotalKeywords != 2 || dental.TotalSearches != 6000 {
		t.Errorf("dental: got %d keywords / %v searches", dental.TotalKeywords, dental.TotalSearches)
	}
	if dental.HasAvgCPC() {
		t.Errorf("dental: AvgCPC should be undefined, got %v", dental.AvgCPC)
	}
	if dental.TopKeyword != "what is root canal cost" {
		t.Errorf("dental: TopKeyword got %q", dental.TopKeyword)
	}
}

func TestNicheReporterUnreadableFile(t *testing.T) {
	r := NewNicheReporter(newTestLogger(), newTestFilter())
	_, errs := r.Report([]models.Upload{{Name: "bin.csv", Data: []byte{0xff, 0xfe, 0x00}}})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
}

func TestSummarizeEmpty(t *testing.T) {
	rep := Summarize("empty niche", nil)
	if rep.TopKeyword != models.NotAvailable {
		t.Errorf("TopKeyword: got %q, want N/A", rep.TopKeyword)
	}
	if rep.TotalKeywords != 0 || rep.TotalSearches != 0 || !math.IsNaN(rep.AvgCPC) {
		t.Errorf("got %+v", *rep)
	}
}

func TestSummarizeTopKeywordFirstOnTie(t *testing.T) {
	rep := Summarize("n", []*models.Keyword{
		{Text: "a", AvgMonthlySearches: 10},
		{Text: "b", AvgMonthlySearches: 30},
		{Text: "c", AvgMonthlySearches: 30},
	})
	if rep.TopKeyword != "b" {
		t.Errorf("TopKeyword: got %q, want b", rep.TopKeyword)
	}
}

func TestNicheReporterPrint(t *testing.T) {
	r := NewNicheReporter(newTestLogger(), newTestFilter())
	var buf bytes.Buffer
	r.Print(&buf, "₹", []*models.NicheReport{
		{Niche: "dental clinics", TotalKeywords: 2, TotalSearches: 12500, AvgCPC: math.NaN(), TopKeyword: "dentist"},
	}, []*FileError{{File: "bad.csv", Err: errors.New("boom")}})

	out := buf.String()
	for _, want := range []string{"dental clinics", "12,500", "N/A", "bad.csv: boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCPC(t *testing.T) {
	if got := FormatCPC("₹", math.NaN()); got != "N/A" {
		t.Errorf("FormatCPC(NaN) = %q", got)
	}
	if got := FormatCPC("₹", 42.5); got != "₹42.50" {
		t.Errorf("FormatCPC(42.5) = %q", got)
	}
}
