package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ukaji3/acedash-go/pkg/acedash"
	"github.com/ukaji3/acedash-go/pkg/acedash/models"
	"github.com/ukaji3/acedash-go/pkg/acedash/validate"
)

// Client-facing error messages.
const (
	msgInvalidChart   = "無效圖表"
	msgInvalidType    = "無效類型"
	msgNoValidTime    = "無有效時間"
	msgInvalidRequest = "無效請求"
	msgBodyTooLarge   = "請求內容過大"
)

type chartRequest struct {
	ChartType      string   `json:"chartType"`
	TimeSelections []string `json:"timeSelections"`
	TimeMode       string   `json:"timeMode"`
	DataType       string   `json:"dataType"`
}

// sanitize cleans the free-text selections. Identifiers are checked
// verbatim by the handler and never rewritten.
func (r *chartRequest) sanitize() {
	for i, sel := range r.TimeSelections {
		r.TimeSelections[i] = validate.Sanitize(sel)
	}
}

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTimeOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.svc.TimeOptions(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: opts})
}

func (s *Server) handleChartData(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	if !validate.IsValidChartID(req.ChartType) {
		writeError(w, http.StatusBadRequest, msgInvalidChart)
		return
	}
	if !validate.IsValidAggregationMode(req.DataType) {
		writeError(w, http.StatusBadRequest, msgInvalidType)
		return
	}
	if !validate.IsValidTimeMode(req.TimeMode) {
		writeError(w, http.StatusBadRequest, msgNoValidTime)
		return
	}
	req.sanitize()

	window, err := s.svc.Window(r.Context(), models.TimeMode(req.TimeMode), req.TimeSelections)
	switch {
	case errors.Is(err, acedash.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, msgNoValidTime)
		return
	case err != nil:
		s.internalError(w, r, err)
		return
	}

	result, err := s.svc.Generate(r.Context(), req.ChartType, window, models.AggregationMode(req.DataType))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: result})
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	if s.cache != nil {
		s.cache.Flush()
	}
	s.log.Info("cache cleared", zap.String("request_id", RequestIDFrom(r.Context())))
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, err.Error())
}

// staticHandler serves the client bundle. Paths that match no file fall
// back to index.html so client-side routes resolve.
func (s *Server) staticHandler() http.Handler {
	dir := s.cfg.StaticDir
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if dir == "" {
			http.NotFound(w, r)
			return
		}
		if clean := path.Clean("/" + r.URL.Path); clean != "/" {
			info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean)))
			if err == nil && !info.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}
		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, index)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}
