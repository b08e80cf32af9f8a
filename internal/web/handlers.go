package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	gomponents "maragu.dev/gomponents"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/cleaner"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/pipeline"
)

// maxUploadBytes caps uploaded file size.
const maxUploadBytes = 32 << 20

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, indexPage(s.store.Recent(10)))
}

// formOptions maps checkbox fields onto pipeline options. Unchecked
// boxes are absent from the form.
func formOptions(r *http.Request) pipeline.Options {
	on := func(name string) bool { return r.FormValue(name) != "" }
	return pipeline.Options{
		DropEmptyColumns: on("drop_empty_columns"),
		RemoveDuplicates: on("remove_duplicates"),
		FillMissing:      on("fill_missing"),
		HandleOutliers:   on("handle_outliers"),
		NormalizeTypes:   on("normalize_types"),
	}
}

// readUpload pulls the uploaded file out of the multipart form.
func readUpload(r *http.Request) (*dataset.Dataset, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file field: %w", err)
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return dataset.ReadNamed(header.Filename, content)
}

func (s *Server) runUpload(r *http.Request) (*cleaner.Result, error) {
	ds, err := readUpload(r)
	if err != nil {
		return nil, err
	}
	gen := s.gen
	if r.FormValue("narrative_enabled") == "" {
		gen = nil
	}
	c := &cleaner.Cleaner{Options: formOptions(r), Narrative: gen}
	res, err := c.Run(r.Context(), ds)
	if err != nil {
		return nil, err
	}
	s.store.Add(res)
	return res, nil
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	res, err := s.runUpload(r)
	if err != nil {
		slog.Warn("upload rejected", "error", err)
		renderHTML(w, http.StatusBadRequest, errorPage("Upload failed", err.Error()))
		return
	}
	http.Redirect(w, r, "/runs/"+res.Report.ID, http.StatusSeeOther)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, ok := s.store.Get(id)
	if !ok {
		renderHTML(w, http.StatusNotFound, errorPage("Run not found", "That run does not exist or has expired."))
		return
	}
	renderHTML(w, http.StatusOK, resultsPage(res))
}

// downloadName derives an attachment filename from the source file.
func downloadName(source, ext string) string {
	base := strings.TrimSuffix(source, filepath.Ext(source))
	if base == "" {
		base = "dataset"
	}
	return base + "_cleaned" + ext
}

func (s *Server) handleCleanedCSV(w http.ResponseWriter, r *http.Request) {
	res, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		_ = render.Render(w, r, errRunNotFound(chi.URLParam(r, "id")))
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(res.Report.Source, ".csv")))
	if err := dataset.WriteCSV(res.Dataset, w); err != nil {
		slog.Warn("csv download failed", "run", res.Report.ID, "error", err)
	}
}

func (s *Server) handleCleanedXLSX(w http.ResponseWriter, r *http.Request) {
	res, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		_ = render.Render(w, r, errRunNotFound(chi.URLParam(r, "id")))
		return
	}
	// Build the workbook first so a failure can still produce an error
	// response instead of a truncated download.
	var buf bytes.Buffer
	if err := dataset.WriteXLSX(res.Dataset, &buf); err != nil {
		_ = render.Render(w, r, errExportFailed(err))
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(res.Report.Source, ".xlsx")))
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	res, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		_ = render.Render(w, r, errRunNotFound(chi.URLParam(r, "id")))
		return
	}
	render.JSON(w, r, res.Report)
}

func (s *Server) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	res, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		renderHTML(w, http.StatusNotFound, errorPage("Run not found", "That run does not exist or has expired."))
		return
	}
	renderHTML(w, http.StatusOK, res.Report.Document())
}

func (s *Server) handleAPIClean(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	res, err := s.runUpload(r)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			_ = render.Render(w, r, errCleanFailed(err))
			return
		}
		_ = render.Render(w, r, errInvalidUpload(err))
		return
	}
	base := "/runs/" + res.Report.ID
	render.JSON(w, r, map[string]any{
		"report": res.Report,
		"links": map[string]string{
			"page":         base,
			"cleaned_csv":  base + "/cleaned.csv",
			"cleaned_xlsx": base + "/cleaned.xlsx",
			"report_json":  base + "/report.json",
			"report_html":  base + "/report.html",
		},
	})
}
