package services

import (
	"errors"
	"testing"

	"datacleaners/models"
)

func leadTable(rows ...[]string) *models.Table {
	return &models.Table{
		Name:   "raw.csv",
		Header: []string{"hfpxzc href", "qBF1Pd", "MW4etd", "UsdlK", "lcr4fd href"},
		Rows:   rows,
	}
}

func TestLeadCleanerContactability(t *testing.T) {
	c := NewLeadCleaner(newTestLogger())
	table := leadTable(
		[]string{"u1", "Acme", "4.5", "", ""},
		[]string{"u2", "Acme", "4.5", "", "acme.com"},
		[]string{"u3", "", "4.1", "555", "x.com"},
		[]string{"u4", "Smile Dental", "4.9", "0836 222", ""},
	)

	leads, err := c.Clean(table, "Hubli")
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(leads))
	}

	if leads[0].BusinessName != "Acme" || leads[0].WebsiteLink != "acme.com" || leads[0].Phone != "" {
		t.Errorf("lead 0: got %+v", *leads[0])
	}
	if leads[1].WebsiteLink != models.NilWebsite {
		t.Errorf("absent website: got %q, want %q", leads[1].WebsiteLink, models.NilWebsite)
	}
	for _, l := range leads {
		if l.City != "Hubli" {
			t.Errorf("City: got %q, want Hubli", l.City)
		}
	}
}

func TestLeadCleanerNullMarkers(t *testing.T) {
	c := NewLeadCleaner(newTestLogger())
	table := leadTable(
		[]string{"u1", "Acme", "", "N/A", "  "},
		[]string{"u2", "NaN", "", "555", ""},
		[]string{"u3", "Bright Smile", "", "N/A", "bright.in"},
	)

	leads, err := c.Clean(table, "Dharwad")
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(leads))
	}
	if leads[0].Phone != "" {
		t.Errorf("null phone should be blank, got %q", leads[0].Phone)
	}
}

func TestLeadCleanerShortRows(t *testing.T) {
	c := NewLeadCleaner(newTestLogger())
	table := leadTable(
		[]string{"u1", "Acme", "4.0", "555"},
	)

	leads, err := c.Clean(table, "Hubli")
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(leads) != 1 || leads[0].WebsiteLink != models.NilWebsite {
		t.Fatalf("expected one lead with NIL website, got %v", leads)
	}
}

func TestLeadCleanerEmptyResultIsValid(t *testing.T) {
	c := NewLeadCleaner(newTestLogger())
	leads, err := c.Clean(leadTable([]string{"u1", "Acme", "", "", ""}), "Hubli")
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(leads) != 0 {
		t.Errorf("expected 0 leads, got %d", len(leads))
	}
}

func TestLeadCleanerSchemaMismatch(t *testing.T) {
	c := NewLeadCleaner(newTestLogger())
	table := &models.Table{
		Name:   "wrong.csv",
		Header: []string{"name", "UsdlK"},
		Rows:   [][]string{{"Acme", "555"}},
	}

	_, err := c.Clean(table, "Hubli")
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if len(schemaErr.Missing) != 2 || schemaErr.Missing[0] != "qBF1Pd" || schemaErr.Missing[1] != "lcr4fd href" {
		t.Errorf("Missing: got %v", schemaErr.Missing)
	}
	want := "Ensure the uploaded file contains the columns: 'qBF1Pd', 'UsdlK', 'lcr4fd href'."
	if schemaErr.Hint() != want {
		t.Errorf("Hint: got %q, want %q", schemaErr.Hint(), want)
	}
}

func TestLeadsFileName(t *testing.T) {
	if got := LeadsFileName("Hubli"); got != "Cleaned_Hubli_Leads.csv" {
		t.Errorf("LeadsFileName: got %q", got)
	}
}
