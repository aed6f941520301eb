package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlcompare-go/internal/config"
	"github.com/xuri/excelize/v2"
)

func newTestServer() *Server {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(config.Default(), log)
}

func workbookBytes(t *testing.T, cells map[string]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for cell, value := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", cell, value))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

type upload struct {
	field, name string
	data        []byte
}

func multipartRequest(t *testing.T, target string, files []upload, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCompareEndpoint(t *testing.T) {
	ref := workbookBytes(t, map[string]interface{}{"A1": "name", "B1": "age", "A2": "Ann", "B2": 25})
	test := workbookBytes(t, map[string]interface{}{"A1": "age", "B1": "name", "A2": 25, "B2": "Ann"})

	req := multipartRequest(t, "/api/compare", []upload{
		{"reference", "correct.xlsx", ref},
		{"test", "test.xlsx", test},
	}, nil)
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Reference string `json:"reference"`
		Passed    bool   `json:"passed"`
		Total     int    `json:"total"`
		Checks    []struct {
			Name   string   `json:"name"`
			Passed bool     `json:"passed"`
			Issues []string `json:"issues"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "correct.xlsx", body.Reference)
	assert.False(t, body.Passed)
	assert.Equal(t, 6, body.Total)
	require.Len(t, body.Checks, 6)
	assert.Equal(t, "columns", body.Checks[0].Name)
	assert.False(t, body.Checks[0].Passed)
}

func TestCompareEndpointMissingFile(t *testing.T) {
	ref := workbookBytes(t, map[string]interface{}{"A1": "x"})
	req := multipartRequest(t, "/api/compare", []upload{{"reference", "correct.xlsx", ref}}, nil)
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `missing file field \"test\"`)
}

func TestVerifySumEndpoint(t *testing.T) {
	data := workbookBytes(t, map[string]interface{}{"A1": 10, "A2": 20, "A3": 30, "B1": 60})
	req := multipartRequest(t, "/api/verify-sum", []upload{{"file", "sum.xlsx", data}},
		map[string]string{"range": "A1:A3", "target": "B1"})
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Passed bool    `json:"passed"`
		Sum    float64 `json:"sum"`
		Error  string  `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Error)
	assert.True(t, body.Passed)
	assert.Equal(t, 60.0, body.Sum)
}

func TestVerifySumEndpointBadSheet(t *testing.T) {
	data := workbookBytes(t, map[string]interface{}{"A1": 1})
	req := multipartRequest(t, "/api/verify-sum", []upload{{"file", "sum.xlsx", data}},
		map[string]string{"range": "A1", "target": "A1", "sheet": "first"})
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCopyUploadUsesBaseName(t *testing.T) {
	ref := workbookBytes(t, map[string]interface{}{"A1": "x"})
	req := multipartRequest(t, "/api/compare", []upload{
		{"reference", "../../etc/correct.xlsx", ref},
		{"test", "test.xlsx", ref},
	}, nil)
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Reference string `json:"reference"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, filepath.Base("correct.xlsx"), body.Reference)
}

func TestUploadScratchRemoved(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	data := workbookBytes(t, map[string]interface{}{"A1": 10, "B1": 10})
	req := multipartRequest(t, "/api/verify-sum", []upload{{"file", "sum.xlsx", data}},
		map[string]string{"range": "A1", "target": "B1"})
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHTTPServerTimeouts(t *testing.T) {
	srv := newTestServer().httpServer()
	assert.Equal(t, config.Default().Addr, srv.Addr)
	assert.Positive(t, srv.ReadHeaderTimeout)
	assert.Positive(t, srv.ReadTimeout)
	assert.Positive(t, srv.WriteTimeout)
}
