package server

import (
	"net/http"

	"github.com/jrsteele09/go-interview-server/passkeys"
	"github.com/jrsteele09/go-interview-server/sessions"
)

type issuePasskeyRequest struct {
	Description string `json:"description"`
}

type passkeyDetail struct {
	Passkey    *passkeys.Record    `json:"passkey"`
	Interviews []*sessions.Session `json:"interviews"`
}

// ListInterviewsHandler lists completed interviews, optionally filtered by ?q=.
func (s *Server) ListInterviewsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.interviews.ListSessions(r.Context(), sessions.Filter{Search: r.URL.Query().Get("q")})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if list == nil {
			list = []*sessions.Session{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.interviews.Stats(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) ListPasskeysHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.interviews.ListPasskeys(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if list == nil {
			list = []*passkeys.Record{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) IssuePasskeyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req issuePasskeyRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		record, err := s.interviews.IssuePasskey(r.Context(), req.Description)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, record)
	}
}

// PasskeyHandler returns a passkey with the completed interviews that used it.
func (s *Server) PasskeyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.PathValue("token")
		record, err := s.interviews.GetPasskey(r.Context(), token)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		list, err := s.interviews.ListSessionsByPasskey(r.Context(), token)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if list == nil {
			list = []*sessions.Session{}
		}
		writeJSON(w, http.StatusOK, passkeyDetail{Passkey: record, Interviews: list})
	}
}
