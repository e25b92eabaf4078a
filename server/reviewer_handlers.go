package server

import (
	"net/http"

	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
)

type registerReviewerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginReviewerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type reviewerStatus struct {
	HasAccount    bool `json:"has_account"`
	Authenticated bool `json:"authenticated"`
}

// RegisterReviewerHandler stores the reviewer credential, replacing any earlier one, and logs the reviewer in.
func (s *Server) RegisterReviewerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReviewerRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := s.interviews.RegisterReviewer(r.Context(), req.Email, req.Password, req.ConfirmPassword); err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, s.reviewerStatus(r))
	}
}

func (s *Server) LoginReviewerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReviewerRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if !s.interviews.LoginReviewer(r.Context(), req.Email, req.Password) {
			writeJSONError(w, apperr.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, s.reviewerStatus(r))
	}
}

func (s *Server) LogoutReviewerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.interviews.LogoutReviewer()
		writeJSON(w, http.StatusOK, s.reviewerStatus(r))
	}
}

func (s *Server) ReviewerStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.reviewerStatus(r))
	}
}

func (s *Server) reviewerStatus(r *http.Request) reviewerStatus {
	return reviewerStatus{
		HasAccount:    s.interviews.HasReviewerAccount(r.Context()),
		Authenticated: s.interviews.ReviewerAuthenticated(),
	}
}
