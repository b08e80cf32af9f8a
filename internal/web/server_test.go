package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/config"
)

const dirtyCSV = "plot,yield,notes\nA1,12,\nB3,,\nA1,12,\nC2,40,\n"

var allStages = map[string]string{
	"drop_empty_columns": "on",
	"remove_duplicates":  "on",
	"fill_missing":       "on",
	"handle_outliers":    "on",
	"normalize_types":    "on",
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Global{
		DropEmptyColumns: true,
		RemoveDuplicates: true,
		FillMissing:      true,
		HandleOutliers:   true,
		NormalizeTypes:   true,
		ListenAddr:       "127.0.0.1:0",
	}
	return New(cfg)
}

func multipartUpload(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func uploadRun(t *testing.T, s *Server) string {
	t.Helper()
	body, contentType := multipartUpload(t, "plots.csv", dirtyCSV, allStages)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/runs/"))
	return loc
}

func TestUploadRedirectsToResults(t *testing.T) {
	s := newTestServer(t)
	loc := uploadRun(t, s)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, loc, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "Cleaning report")
	assert.Contains(t, page, "plots.csv")
	assert.Contains(t, page, "Downloads")
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	s := newTestServer(t)
	body, contentType := multipartUpload(t, "data.pdf", "%PDF-1.4", allStages)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Upload failed")
}

func TestCleanedCSVDownload(t *testing.T) {
	s := newTestServer(t)
	loc := uploadRun(t, s)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, loc+"/cleaned.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "plots_cleaned.csv")
	assert.Equal(t, "plot,yield\nA1,12\nB3,26\nC2,40\n", rec.Body.String())
}

func TestCleanedXLSXDownload(t *testing.T) {
	s := newTestServer(t)
	loc := uploadRun(t, s)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, loc+"/cleaned.xlsx", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "expected zip magic")
}

func TestReportJSONDownload(t *testing.T) {
	s := newTestServer(t)
	loc := uploadRun(t, s)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, loc+"/report.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var rep map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, "plots.csv", rep["source"])
	assert.EqualValues(t, 4, rep["rows_before"])
	assert.EqualValues(t, 3, rep["rows_after"])
}

func TestRunNotFound(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIndexListsRecentRuns(t *testing.T) {
	s := newTestServer(t)
	loc := uploadRun(t, s)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), loc)
}

func TestAPIClean(t *testing.T) {
	s := newTestServer(t)
	body, contentType := multipartUpload(t, "plots.csv", dirtyCSV, allStages)
	req := httptest.NewRequest(http.MethodPost, "/api/clean", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Report struct {
			ScoreBefore float64 `json:"score_before"`
			ScoreAfter  float64 `json:"score_after"`
		} `json:"report"`
		Links map[string]string `json:"links"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.GreaterOrEqual(t, out.Report.ScoreAfter, out.Report.ScoreBefore)
	assert.Contains(t, out.Links["cleaned_csv"], "/cleaned.csv")
}

func TestAPICleanMissingFile(t *testing.T) {
	s := newTestServer(t)
	body, contentType := func() (*bytes.Buffer, string) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("fill_missing", "on"))
		require.NoError(t, mw.Close())
		return &buf, mw.FormDataContentType()
	}()
	req := httptest.NewRequest(http.MethodPost, "/api/clean", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "INVALID_UPLOAD", payload.ErrorCode)
}

func TestStoreEvictsOldRuns(t *testing.T) {
	s := newTestServer(t)
	first := uploadRun(t, s)
	for i := 0; i < maxRuns; i++ {
		uploadRun(t, s)
	}
	id := strings.TrimPrefix(first, "/runs/")
	_, ok := s.store.Get(id)
	assert.False(t, ok, "expected oldest run evicted")
}
