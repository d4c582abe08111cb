package storage

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const plannerExport = "Keyword Stats 2026-10-01 at 10_00_00\n" +
	"All locations; Last 12 months\n" +
	" Keyword \t Avg. monthly searches\tTop of page bid (high range) \n" +
	"dentist near me\t1000\t25.5\n" +
	"\n" +
	"clinic fees\t10\n"

func encodeUTF16(t *testing.T, s string, order unicode.Endianness) []byte {
	t.Helper()
	out, _, err := transform.Bytes(unicode.UTF16(order, unicode.UseBOM).NewEncoder(), []byte(s))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return out
}

func TestReadKeywordFileUTF16(t *testing.T) {
	for _, order := range []unicode.Endianness{unicode.LittleEndian, unicode.BigEndian} {
		table, err := ReadKeywordFile("planner.csv", encodeUTF16(t, plannerExport, order))
		if err != nil {
			t.Fatalf("ReadKeywordFile: %v", err)
		}
		wantHeader := []string{"Keyword", "Avg. monthly searches", "Top of page bid (high range)"}
		if !reflect.DeepEqual(table.Header, wantHeader) {
			t.Errorf("Header: got %q, want %q", table.Header, wantHeader)
		}
		if len(table.Rows) != 2 {
			t.Fatalf("Rows: got %d, want 2", len(table.Rows))
		}
		if table.Rows[1][0] != "clinic fees" || len(table.Rows[1]) != 2 {
			t.Errorf("row 1: got %q", table.Rows[1])
		}
		if table.Name != "planner.csv" {
			t.Errorf("Name: got %q", table.Name)
		}
	}
}

func TestReadKeywordFileFallsBackToUTF8(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, plannerExport...)
	table, err := ReadKeywordFile("planner.csv", raw)
	if err != nil {
		t.Fatalf("ReadKeywordFile: %v", err)
	}
	if table.Rows[0][0] != "dentist near me" {
		t.Errorf("row 0: got %q", table.Rows[0])
	}
}

func TestReadKeywordFileAllDecodingsFail(t *testing.T) {
	_, err := ReadKeywordFile("bad.csv", []byte{0xC3, 0x28, '\n'})

	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if derr.File != "bad.csv" || len(derr.Attempts) != 2 {
		t.Fatalf("got %+v", derr)
	}
	if derr.Attempts[0].Decoding != "UTF-16" || derr.Attempts[1].Decoding != "UTF-8" {
		t.Errorf("attempt order: got %+v", derr.Attempts)
	}
	if !errors.Is(err, errInvalidUTF8) {
		t.Errorf("expected last cause to be invalid UTF-8, got %v", errors.Unwrap(err))
	}
}

func TestReadKeywordFileTooShort(t *testing.T) {
	_, err := ReadKeywordFile("short.csv", []byte("only one banner\n"))
	if !errors.Is(err, ErrNoHeader) {
		t.Errorf("expected ErrNoHeader, got %v", err)
	}
}

func TestReadLeadFileKeepsHeaderAsIs(t *testing.T) {
	raw := "qBF1Pd,UsdlK,lcr4fd href\nAcme,\"555, ext 2\",acme.com\n"
	table, err := ReadLeadFile("leads.csv", []byte(raw))
	if err != nil {
		t.Fatalf("ReadLeadFile: %v", err)
	}
	if table.Index("lcr4fd href") != 2 {
		t.Errorf("header: got %q", table.Header)
	}
	if table.Rows[0][1] != "555, ext 2" {
		t.Errorf("quoted cell: got %q", table.Rows[0][1])
	}
}

func TestReadTableEmpty(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""), LeadReadOptions)
	if !errors.Is(err, ErrNoHeader) {
		t.Errorf("expected ErrNoHeader, got %v", err)
	}
}
