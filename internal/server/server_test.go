// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/papergen/internal/papers"
	"github.com/pdiddy/papergen/pkg/types"
)

func newTestServer(t *testing.T, run RunFunc) (*Server, *httptest.Server) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "question_papers")
	s := &Server{
		PapersDir:     dir,
		ThresholdPath: filepath.Join(dir, "threshold.txt"),
		Run:           run,
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func multipartBody(t *testing.T, files map[string]string, threshold string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile("question_papers", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	if threshold != "" {
		require.NoError(t, mw.WriteField("threshold", threshold))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestUpload_StoresPapersAndThreshold(t *testing.T) {
	s, ts := newTestServer(t, nil)

	body, ctype := multipartBody(t, map[string]string{"MAY18.pdf": "%PDF-a", "DEC19.pdf": "%PDF-b"}, "45")
	resp, err := http.Post(ts.URL+"/upload-question-paper", ctype, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got uploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.ElementsMatch(t, []string{"MAY18.pdf", "DEC19.pdf"}, got.Saved)
	assert.Equal(t, 45, got.Threshold)

	data, err := os.ReadFile(filepath.Join(s.PapersDir, "MAY18.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-a", string(data))
	assert.Equal(t, 45, papers.ReadThreshold(s.ThresholdPath))
}

func TestUpload_KeepsExistingThreshold(t *testing.T) {
	s, ts := newTestServer(t, nil)
	require.NoError(t, papers.WriteThreshold(s.ThresholdPath, 60))

	body, ctype := multipartBody(t, map[string]string{"APR20.pdf": "%PDF"}, "")
	resp, err := http.Post(ts.URL+"/upload-question-paper", ctype, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 60, papers.ReadThreshold(s.ThresholdPath))
}

func TestUpload_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		threshold string
		errMsg    string
	}{
		{"no files", nil, "30", "no question_papers"},
		{"not a pdf", map[string]string{"notes.docx": "x"}, "30", "not a PDF"},
		{"threshold not a number", map[string]string{"MAY18.pdf": "x"}, "lots", "threshold must be"},
		{"threshold out of range", map[string]string{"MAY18.pdf": "x"}, "120", "threshold must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ts := newTestServer(t, nil)

			body, ctype := multipartBody(t, tt.files, tt.threshold)
			resp, err := http.Post(ts.URL+"/upload-question-paper", ctype, body)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var got map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Contains(t, got["error"], tt.errMsg)

			_, err = os.Stat(s.ThresholdPath)
			assert.True(t, os.IsNotExist(err), "nothing stored on rejection")
		})
	}
}

func TestUpload_NotMultipart(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Post(ts.URL+"/upload-question-paper", "application/json", bytes.NewReader([]byte(`{}`)))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerate_ReturnsResult(t *testing.T) {
	calls := 0
	run := func(context.Context) (types.Result, error) {
		calls++
		return types.Success(map[string]any{"summary": map[string]any{"total_questions": 20}}), nil
	}
	_, ts := newTestServer(t, run)

	resp, err := http.Post(ts.URL+"/generate", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, true, got["success"])
	assert.Equal(t, 1, calls)
}

func TestGenerate_ErrorResultIsOK(t *testing.T) {
	run := func(context.Context) (types.Result, error) {
		return types.Failure("No PDF files found"), nil
	}
	_, ts := newTestServer(t, run)

	resp, err := http.Post(ts.URL+"/generate", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "No PDF files found", got["error"])
}

func TestGenerate_WriteFailure(t *testing.T) {
	run := func(context.Context) (types.Result, error) {
		return types.Result{}, errors.New("writing output_paper_api.json: permission denied")
	}
	_, ts := newTestServer(t, run)

	resp, err := http.Post(ts.URL+"/generate", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGenerate_MethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/generate")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestGenerate_UnencodableResultIsLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s := &Server{
		Run: func(ctx context.Context) (types.Result, error) {
			return types.Success(map[string]any{"bad": make(chan int)}), nil
		},
		Log: zap.New(core),
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("writing response").Len())
	assert.Equal(t, int64(http.StatusOK), logs.All()[0].ContextMap()["status"])
}
