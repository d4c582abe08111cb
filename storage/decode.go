package storage

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decoding turns raw upload bytes into UTF-8 text.
type Decoding struct {
	Name   string
	Decode func(raw []byte) ([]byte, error)
}

var (
	// UTF16 accepts only BOM-prefixed UTF-16 (either byte order), which is
	// what the keyword planner emits.
	UTF16 = Decoding{Name: "UTF-16", Decode: decodeUTF16}
	// UTF8 accepts valid UTF-8, dropping a leading BOM if present.
	UTF8 = Decoding{Name: "UTF-8", Decode: decodeUTF8}

	// KeywordDecodings is the order keyword-planner files are tried in.
	KeywordDecodings = []Decoding{UTF16, UTF8}
	// LeadDecodings is the order scraped lead exports are tried in.
	LeadDecodings = []Decoding{UTF8}
)

var errInvalidUTF8 = errors.New("invalid UTF-8")

func decodeUTF16(raw []byte) ([]byte, error) {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeUTF8(raw []byte) ([]byte, error) {
	if !utf8.Valid(raw) {
		return nil, errInvalidUTF8
	}
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Attempt records why one decoding could not read a file.
type Attempt struct {
	Decoding string
	Err      error
}

// DecodeError is returned when no decoding in the list could read a file.
type DecodeError struct {
	File     string
	Attempts []Attempt
}

func (e *DecodeError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Decoding, a.Err))
	}
	return fmt.Sprintf("no decoding could read the file (%s)", strings.Join(parts, "; "))
}

// Unwrap exposes the last attempt's cause.
func (e *DecodeError) Unwrap() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Err
}
