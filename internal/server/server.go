// Package server exposes comparison and sum verification over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/xlcompare-go/internal/config"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/output"
)

const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 2 * time.Minute
	writeTimeout      = 2 * time.Minute
	idleTimeout       = time.Minute

	// uploadMemory is how much of a multipart body is held in memory
	// before parts spill to temporary files.
	uploadMemory = 4 << 20
)

// Server serves the comparison API.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	log    logrus.FieldLogger
}

// New creates a server with routes and middleware configured.
func New(cfg *config.Config, log logrus.FieldLogger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		log:    log,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/api/compare", s.handleCompare)
	s.router.Post("/api/verify-sum", s.handleVerifySum)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on the configured address.
func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.cfg.Addr).Info("listening")
	return s.httpServer().ListenAndServe()
}

func (s *Server) httpServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	dir, cleanup, err := s.parseUpload(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer cleanup()

	refPath, err := saveFormFile(r, "reference", dir)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	testPath, err := saveFormFile(r, "test", dir)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	report := xlcompare.Compare(refPath, testPath, s.options())
	data, err := output.ReportToJSON(report, false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeRaw(w, http.StatusOK, data)
}

func (s *Server) handleVerifySum(w http.ResponseWriter, r *http.Request) {
	dir, cleanup, err := s.parseUpload(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer cleanup()

	path, err := saveFormFile(r, "file", dir)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := s.options()
	if v := r.FormValue("sheet"); v != "" {
		idx, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid sheet index %q", v))
			return
		}
		opts.SheetIndex = idx
	}

	result := xlcompare.VerifySum(path, r.FormValue("range"), r.FormValue("target"), opts)
	data, err := output.SumToJSON(result, false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeRaw(w, http.StatusOK, data)
}

func (s *Server) options() xlcompare.Options {
	return xlcompare.Options{Format: s.cfg.Format, Logger: s.log}
}

// parseUpload parses the multipart body and returns a scratch directory
// for the uploaded files. cleanup removes the directory and any form
// parts spilled to disk.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) (dir string, cleanup func(), err error) {
	limit := s.cfg.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(uploadMemory); err != nil {
		return "", nil, fmt.Errorf("invalid upload: %w", err)
	}
	removeForm := func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			s.log.WithError(err).Warn("failed to remove upload parts")
		}
	}

	dir, err = os.MkdirTemp("", "xlcompare-*")
	if err != nil {
		removeForm()
		return "", nil, err
	}
	return dir, func() {
		removeForm()
		if err := os.RemoveAll(dir); err != nil {
			s.log.WithError(err).Warn("failed to remove upload directory")
		}
	}, nil
}

// saveFormFile copies the named upload into dir, keeping its base name.
func saveFormFile(r *http.Request, field, dir string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", fmt.Errorf("missing file field %q", field)
		}
		return "", err
	}
	defer file.Close()

	return copyUpload(file, header, field, dir)
}

func copyUpload(file multipart.File, header *multipart.FileHeader, field, dir string) (string, error) {
	fieldDir := filepath.Join(dir, field)
	if err := os.MkdirAll(fieldDir, 0755); err != nil {
		return "", err
	}

	name := filepath.Base(header.Filename)
	if name == "." || name == string(filepath.Separator) {
		name = field
	}
	path := filepath.Join(fieldDir, name)
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, data)
}

func writeRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
