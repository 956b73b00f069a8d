package submission

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/slipcheck/slipcheck/internal/extraction"
)

// maxUploadSize caps a slip photo at 16MB, matching the extraction
// service's own upload limit.
const maxUploadSize = int64(16 << 20)

// submitResponse is the JSON shape of a terminal submission outcome.
type submitResponse struct {
	Status string          `json:"status"`
	Result []RenderedField `json:"result,omitempty"`
	Entry  *LogEntry       `json:"entry,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// statusResponse reports the workflow state for the page banner.
type statusResponse struct {
	State   State  `json:"state"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, submitResponse{Status: "error", Error: message})
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleSubmit runs one submission: intake validation, extraction, and
// on success the log append. Every outcome is a definite JSON response.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		message := "Error parsing form"
		if err.Error() == "http: request body too large" {
			message = "File is too large. Maximum size is 16MB."
		}
		writeError(w, http.StatusBadRequest, message)
		return
	}

	upload, err := FileFromForm(r.MultipartForm)
	if err != nil {
		var invalidType *InvalidFileTypeError
		if errors.As(err, &invalidType) {
			slog.Info("Rejected upload", "file_name", invalidType.FileName, "content_type", invalidType.ContentType)
			s.controller.Reject(err)
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := s.controller.Submit(r.Context(), upload)
	if err != nil {
		if errors.Is(err, ErrBusy) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		var serviceErr *extraction.ServiceError
		if errors.As(err, &serviceErr) {
			writeError(w, http.StatusBadGateway, serviceErr.Message)
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Status: "success",
		Result: outcome.Result,
		Entry:  &outcome.Entry,
	})
}

// handleGetLog returns the submission log, newest first
func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	// Entries() never returns nil, so the page always gets an array
	writeJSON(w, http.StatusOK, s.log.Entries())
}

// handleClearLog empties the log and removes the persisted snapshot
func (s *Server) handleClearLog(w http.ResponseWriter, r *http.Request) {
	if err := s.log.Clear(); err != nil {
		slog.Error("Error clearing log", "error", err)
		writeError(w, http.StatusInternalServerError, "Error clearing log")
		return
	}
	setCORSHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleStatus reports the workflow state and banner message
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	state, message := s.controller.Status()
	writeJSON(w, http.StatusOK, statusResponse{State: state, Message: message})
}

// handleStaticCSS serves the CSS file
func (s *Server) handleStaticCSS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/css")
	w.Write(appCSS)
}

// handleStaticJS serves the JavaScript file
func (s *Server) handleStaticJS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write(appJS)
}
