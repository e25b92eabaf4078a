package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jrsteele09/go-interview-server/extraction"
	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
	"github.com/jrsteele09/go-interview-server/interview"
	"github.com/jrsteele09/go-interview-server/sessions"
	"github.com/rs/zerolog/log"
)

const maxJSONBytes = 1 << 20

type createInterviewRequest struct {
	Email   string `json:"email"`
	Passkey string `json:"passkey"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type countdownView struct {
	Seconds int  `json:"seconds"`
	Active  bool `json:"active"`
}

// interviewView is what a candidate client renders: the session, its transcript and the question timer.
type interviewView struct {
	Session   *sessions.Session   `json:"session"`
	Messages  []interview.Message `json:"messages"`
	Countdown countdownView       `json:"countdown"`
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// CreateInterviewHandler opens an interview for the candidate email and optional passkey.
func (s *Server) CreateInterviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createInterviewRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		id, err := s.interviews.CreateSession(r.Context(), req.Email, req.Passkey)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}

func (s *Server) InterviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeInterview(w, r, http.StatusOK)
	}
}

// UploadResumeHandler reads the multipart "resume" file and hands it to the interview.
func (s *Server) UploadResumeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxResumeBytes+1024)
		if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
			writeJSONError(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile(resumeFormField)
		if err != nil {
			writeJSONError(w, "missing resume file", http.StatusBadRequest)
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			writeJSONError(w, "failed to read resume file", http.StatusBadRequest)
			return
		}

		doc := extraction.Document{Name: header.Filename, Size: header.Size, Content: content}
		if err := s.interviews.SubmitUpload(r.Context(), r.PathValue("id"), doc); err != nil {
			writeServiceError(w, r, err)
			return
		}
		s.writeInterview(w, r, http.StatusOK)
	}
}

// SubmitMessageHandler submits a candidate detail or an answer. It returns once the text has been handled.
func (s *Server) SubmitMessageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req messageRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := s.interviews.SubmitText(r.Context(), r.PathValue("id"), req.Text); err != nil {
			writeServiceError(w, r, err)
			return
		}
		s.writeInterview(w, r, http.StatusOK)
	}
}

// FinalizeInterviewHandler retries storing an interview whose last answer could not be saved.
func (s *Server) FinalizeInterviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.interviews.Finalize(r.Context(), r.PathValue("id")); err != nil {
			writeServiceError(w, r, err)
			return
		}
		s.writeInterview(w, r, http.StatusOK)
	}
}

func (s *Server) writeInterview(w http.ResponseWriter, r *http.Request, status int) {
	id := r.PathValue("id")
	session, err := s.interviews.Snapshot(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	view := interviewView{Session: session, Messages: []interview.Message{}}
	// Interviews restored from the store have no live transcript or timer.
	if messages, err := s.interviews.Transcript(id); err == nil {
		view.Messages = messages
	}
	if seconds, active, err := s.interviews.Countdown(id); err == nil {
		view.Countdown = countdownView{Seconds: seconds, Active: active}
	}
	writeJSON(w, status, view)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps the service error taxonomy onto status codes.
// Validation reasons are shown as is; unexpected errors are logged and hidden.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *apperr.ValidationError
	switch {
	case apperr.As(err, &validation):
		writeJSONError(w, validation.Reason, http.StatusBadRequest)
	case apperr.Is(err, apperr.ErrSessionNotFound):
		writeJSONError(w, apperr.ErrSessionNotFound.Error(), http.StatusNotFound)
	case apperr.Is(err, apperr.ErrNotFound):
		writeJSONError(w, apperr.ErrNotFound.Error(), http.StatusNotFound)
	case apperr.Is(err, apperr.ErrBusy):
		writeJSONError(w, apperr.ErrBusy.Error(), http.StatusConflict)
	case apperr.Is(err, apperr.ErrWrongStage):
		writeJSONError(w, apperr.ErrWrongStage.Error(), http.StatusConflict)
	case apperr.Is(err, apperr.ErrSessionCompleted):
		writeJSONError(w, apperr.ErrSessionCompleted.Error(), http.StatusConflict)
	case apperr.Is(err, apperr.ErrInvalidCredentials):
		writeJSONError(w, apperr.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		writeJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
