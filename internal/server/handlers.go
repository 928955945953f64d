// internal/server/handlers.go
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"nyaysetu/internal/auth"
	"nyaysetu/internal/chat"
	commonerrors "nyaysetu/internal/common/errors"
	"nyaysetu/internal/store"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errors.WriteError(w, commonerrors.NewValidationError("request body must be valid JSON"))
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": s.config.App.Name,
		"version": s.config.App.Version,
	})
}

func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"languages": []map[string]string{
			{"code": "en", "name": "English", "native": "English"},
			{"code": "hi", "name": "Hindi", "native": "हिंदी"},
			{"code": "mr", "name": "Marathi", "native": "मराठी"},
		},
	})
}

func (s *Server) handleFormTypes(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"form_types": []map[string]string{
			{"code": "FIR", "name": "First Information Report", "description": "Police complaint registration"},
			{"code": "RTI", "name": "Right to Information", "description": "Information request application"},
			{"code": "COMPLAINT", "name": "General Complaint", "description": "General grievance complaint"},
			{"code": "APPEAL", "name": "Legal Appeal", "description": "Appeal application"},
		},
	})
}

type chatRequest struct {
	Question string `json:"question"`
	Language string `json:"language"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.chat.ResolveChat(r.Context(), req.Question, req.Language)
	if err != nil {
		s.errors.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type formRequest struct {
	FormType  string                 `json:"form_type"`
	Responses map[string]interface{} `json:"responses"`
}

func (s *Server) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.forms.Generate(r.Context(), req.FormType, req.Responses)
	if err != nil {
		s.errors.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGenerateFormPDF(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	// Render into a buffer first so a render failure can still produce a
	// JSON error response.
	var buf bytes.Buffer
	result, err := s.forms.GeneratePDF(r.Context(), &buf, req.FormType, req.Responses)
	if err != nil {
		s.errors.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_NyaySetu.pdf"`, result.FormType))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("failed to write pdf response", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) handleListChats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := parseTime(q.Get("start"))
	if err != nil {
		s.errors.WriteError(w, commonerrors.NewValidationError("start must be an RFC 3339 timestamp or YYYY-MM-DD date"))
		return
	}
	end, err := parseTime(q.Get("end"))
	if err != nil {
		s.errors.WriteError(w, commonerrors.NewValidationError("end must be an RFC 3339 timestamp or YYYY-MM-DD date"))
		return
	}

	records, err := s.chats.List(r.Context(), store.ChatFilter{
		Start:    start,
		End:      end,
		Language: q.Get("language"),
		Query:    q.Get("q"),
	})
	if err != nil {
		s.errors.WriteError(w, commonerrors.NewDatabaseError(commonerrors.ErrCodeQueryExecutionFailed, err.Error()))
		return
	}
	if records == nil {
		records = []chat.Record{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"chats": records})
}

func (s *Server) handleListForms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := parseTime(q.Get("start"))
	if err != nil {
		s.errors.WriteError(w, commonerrors.NewValidationError("start must be an RFC 3339 timestamp or YYYY-MM-DD date"))
		return
	}
	end, err := parseTime(q.Get("end"))
	if err != nil {
		s.errors.WriteError(w, commonerrors.NewValidationError("end must be an RFC 3339 timestamp or YYYY-MM-DD date"))
		return
	}

	records, err := s.formLog.List(r.Context(), store.FormFilter{
		Start:    start,
		End:      end,
		FormType: q.Get("form_type"),
		Query:    q.Get("q"),
	})
	if err != nil {
		s.errors.WriteError(w, commonerrors.NewDatabaseError(commonerrors.ErrCodeQueryExecutionFailed, err.Error()))
		return
	}
	if records == nil {
		records = []store.FormRecord{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"forms": records})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterInput
	if !s.decodeJSON(w, r, &req) {
		return
	}

	out, err := s.auth.Register(r.Context(), &req)
	if errors.Is(err, auth.ErrEmailTaken) {
		s.errors.WriteError(w, &commonerrors.StandardError{
			Code:      commonerrors.ErrCodeConflict,
			Message:   "Email already registered",
			Retryable: false,
			Timestamp: time.Now().UTC(),
		})
		return
	}
	if err != nil {
		s.errors.WriteError(w, err)
		return
	}

	message := "Registered successfully. Please verify your email."
	if out.Verified {
		message = "Registered successfully. You can now login."
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  message,
		"verified": out.Verified,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginInput
	if !s.decodeJSON(w, r, &req) {
		return
	}

	out, err := s.auth.Login(r.Context(), &req)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.errors.WriteError(w, commonerrors.NewUnauthorizedError("invalid email or password"))
		return
	case errors.Is(err, auth.ErrNotVerified):
		s.errors.WriteError(w, commonerrors.NewUnauthorizedError("account is not verified"))
		return
	case err != nil:
		s.errors.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	err := s.auth.VerifyByToken(r.Context(), r.URL.Query().Get("token"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.errors.WriteError(w, commonerrors.NewValidationError("invalid verification token"))
		return
	}
	if err != nil {
		s.errors.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Email verified successfully"})
}

type oauthBeginRequest struct {
	Provider string `json:"provider"`
}

func (s *Server) handleOAuthBegin(w http.ResponseWriter, r *http.Request) {
	var req oauthBeginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	out, err := s.auth.BeginOAuth(r.Context(), req.Provider)
	if errors.Is(err, auth.ErrProviderUnknown) {
		s.errors.WriteError(w, commonerrors.NewValidationError("unknown oauth provider"))
		return
	}
	if err != nil {
		s.errors.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

type oauthDevRequest struct {
	State string `json:"state"`
	Email string `json:"email"`
}

func (s *Server) handleOAuthDev(w http.ResponseWriter, r *http.Request) {
	var req oauthDevRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	out, err := s.auth.CompleteDevOAuth(r.Context(), req.State, req.Email)
	if errors.Is(err, auth.ErrStateUnknown) {
		s.errors.WriteError(w, commonerrors.NewValidationError("unknown or expired oauth state"))
		return
	}
	if err != nil {
		s.errors.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}
