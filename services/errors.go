package services

import (
	"fmt"
	"strings"
)

// SchemaError is returned when an upload lacks columns a pipeline needs.
type SchemaError struct {
	File     string
	Missing  []string
	Required []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing column(s) %s", quoteAll(e.Missing))
}

// Hint lists every column the pipeline expects.
func (e *SchemaError) Hint() string {
	return fmt.Sprintf("Ensure the uploaded file contains the columns: %s.", quoteAll(e.Required))
}

// FileError records a file skipped by a batch run.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func quoteAll(cols []string) string {
	q := make([]string, len(cols))
	for i, c := range cols {
		q[i] = "'" + c + "'"
	}
	return strings.Join(q, ", ")
}
