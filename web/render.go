package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

type metric struct {
	Label string
	Value string
}

type download struct {
	Label    string
	FileName string
	Href     template.URL
}

// page is everything the single page template can show.
type page struct {
	Tool     string
	Title    string
	Icon     string
	Subtitle string

	City string

	Success  string
	Error    string
	Hint     string
	Warnings []string

	Metrics      []metric
	PreviewTitle string
	Columns      []string
	Rows         [][]string
	Downloads    []download
}

func parseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

func (h *Handlers) render(w http.ResponseWriter, p *page) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "page", p); err != nil {
		h.logger.Error("[web] render %s: %v", p.Tool, err)
		http.Error(w, "Something went wrong while rendering the page.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (p *page) offer(label string, a artifact) {
	p.Downloads = append(p.Downloads, download{Label: label, FileName: a.FileName, Href: a.dataURI()})
}

// preview returns at most n rows.
func preview[T any](rows []T, n int) []T {
	if n >= 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}
