// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the pipeline over HTTP: uploading question papers
// with a threshold, and triggering a generation run.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/papergen/internal/papers"
	"github.com/pdiddy/papergen/pkg/types"
)

// maxUploadBytes bounds the multipart form kept in memory.
const maxUploadBytes = 32 << 20

// RunFunc performs one generation run and returns its result.
type RunFunc func(ctx context.Context) (types.Result, error)

// Server serves the upload and generate endpoints.
type Server struct {
	PapersDir     string
	ThresholdPath string
	Run           RunFunc
	Log           *zap.Logger

	// mu serializes runs; they share the output file.
	mu sync.Mutex
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("POST /upload-question-paper", s.handleUpload)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	return mux
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

type uploadResponse struct {
	Saved     []string `json:"saved"`
	Threshold int      `json:"threshold"`
}

// handleUpload stores multipart "question_papers" PDFs in the papers
// directory and an optional "threshold" value in the threshold file.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	threshold := papers.ReadThreshold(s.ThresholdPath)
	if raw := strings.TrimSpace(r.FormValue("threshold")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 100 {
			s.writeError(w, http.StatusBadRequest, "threshold must be an integer between 0 and 100")
			return
		}
		threshold = v
	}

	files := r.MultipartForm.File["question_papers"]
	if len(files) == 0 {
		s.writeError(w, http.StatusBadRequest, "no question_papers uploaded")
		return
	}
	for _, fh := range files {
		if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is not a PDF", fh.Filename))
			return
		}
	}

	if err := os.MkdirAll(s.PapersDir, 0o755); err != nil {
		s.log().Error("creating papers directory", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "cannot store papers")
		return
	}

	saved := make([]string, 0, len(files))
	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		if err := saveUpload(fh, filepath.Join(s.PapersDir, name)); err != nil {
			s.log().Error("saving upload", zap.String("file", name), zap.Error(err))
			s.writeError(w, http.StatusInternalServerError, "cannot store "+name)
			return
		}
		saved = append(saved, name)
	}

	if err := papers.WriteThreshold(s.ThresholdPath, threshold); err != nil {
		s.log().Error("writing threshold", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "cannot store threshold")
		return
	}

	s.log().Info("papers uploaded", zap.Strings("files", saved), zap.Int("threshold", threshold))
	s.writeJSON(w, http.StatusOK, uploadResponse{Saved: saved, Threshold: threshold})
}

func saveUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// handleGenerate runs the pipeline and returns the result mapping. Error
// results are still 200: the body carries the "error" key.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.Run(r.Context())
	if err != nil {
		s.log().Error("generation run", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// writeJSON sends v with status. The header is already out when encoding
// fails, so the failure is only logged.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.log().Error("writing response", zap.Int("status", status), zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
