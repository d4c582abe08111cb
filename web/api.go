package web

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// APILeads returns the cleaned lead CSV as an attachment.
func (h *Handlers) APILeads(w http.ResponseWriter, r *http.Request) {
	if err := h.parseUploadForm(w, r); err != nil {
		h.apiError(w, err)
		return
	}
	city := strings.TrimSpace(r.FormValue("city"))
	if city == "" {
		city = h.cfg.DefaultCity
	}
	upload, err := singleUpload(r, "file")
	if err != nil {
		h.apiError(w, err)
		return
	}
	leads, err := h.pipeline.CleanLeads(upload, city)
	if err != nil {
		h.apiError(w, err)
		return
	}
	art, err := leadsArtifact(city, leads)
	if err != nil {
		h.apiError(w, err)
		return
	}
	w.Header().Set("X-Row-Count", strconv.Itoa(len(leads)))
	sendArtifact(w, art)
}

// APIKeywords returns the commercial keyword CSV as an attachment.
func (h *Handlers) APIKeywords(w http.ResponseWriter, r *http.Request) {
	if err := h.parseUploadForm(w, r); err != nil {
		h.apiError(w, err)
		return
	}
	upload, err := singleUpload(r, "file")
	if err != nil {
		h.apiError(w, err)
		return
	}
	res, err := h.pipeline.FilterKeywords(upload)
	if err != nil {
		h.apiError(w, err)
		return
	}
	art, err := keywordsArtifact(res)
	if err != nil {
		h.apiError(w, err)
		return
	}
	w.Header().Set("X-Row-Count", strconv.Itoa(res.Metrics.Total))
	sendArtifact(w, art)
}

// APIReport returns the niche report as CSV, or as XLSX with ?format=xlsx.
// Skipped files are listed in X-Skipped-Files.
func (h *Handlers) APIReport(w http.ResponseWriter, r *http.Request) {
	if err := h.parseUploadForm(w, r); err != nil {
		h.apiError(w, err)
		return
	}
	uploads, skipped := collectUploads(r, "files")
	if len(uploads) == 0 && len(skipped) == 0 {
		h.apiError(w, errNoFile)
		return
	}

	reports, errs := h.pipeline.Report(uploads)
	skipped = append(skipped, errs...)
	if len(reports) == 0 {
		msgs := make([]string, 0, len(skipped))
		for _, e := range skipped {
			msgs = append(msgs, e.Error())
		}
		http.Error(w, "no file could be processed:\n"+strings.Join(msgs, "\n"), http.StatusUnprocessableEntity)
		return
	}

	art, err := reportArtifact(reports, r.URL.Query().Get("format"))
	if err != nil {
		h.apiError(w, err)
		return
	}
	if len(skipped) > 0 {
		names := make([]string, 0, len(skipped))
		for _, e := range skipped {
			names = append(names, e.File)
		}
		w.Header().Set("X-Skipped-Files", strings.Join(names, ", "))
	}
	w.Header().Set("X-Row-Count", strconv.Itoa(len(reports)))
	sendArtifact(w, art)
}

// APIExport returns the cleaned keyword export as an attachment.
func (h *Handlers) APIExport(w http.ResponseWriter, r *http.Request) {
	if err := h.parseUploadForm(w, r); err != nil {
		h.apiError(w, err)
		return
	}
	upload, err := singleUpload(r, "file")
	if err != nil {
		h.apiError(w, err)
		return
	}
	res, err := h.pipeline.CleanExport(upload)
	if err != nil {
		h.apiError(w, err)
		return
	}
	art, err := exportArtifact(res)
	if err != nil {
		h.apiError(w, err)
		return
	}
	w.Header().Set("X-Row-Count", strconv.Itoa(len(res.Table.Rows)))
	sendArtifact(w, art)
}

func (h *Handlers) apiError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("[api] %v", err)
	} else {
		h.logger.Warn("[api] %v", err)
	}
	http.Error(w, err.Error(), status)
}

func sendArtifact(w http.ResponseWriter, a artifact) {
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Data)
}
