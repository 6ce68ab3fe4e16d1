package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/rathodv/maya"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string     `json:"token"`
	User  *maya.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}

	user := &maya.User{Email: req.Email, Name: req.Name}
	if err := s.UserService.CreateUser(r.Context(), user, req.Password); err != nil {
		Error(w, r, err)
		return
	}

	token, err := s.TokenService.Issue(user.ID)
	if err != nil {
		Error(w, r, err)
		return
	}

	// Welcome mail is fire-and-forget; registration never fails on it.
	if s.Mailer != nil {
		go func(to string) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.Mailer.SendWelcome(ctx, to); err != nil {
				slog.Warn("welcome email failed", "error", err)
			}
		}(user.Email)
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}

	user, err := s.UserService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		Error(w, r, err)
		return
	}

	token, err := s.TokenService.Issue(user.ID)
	if err != nil {
		Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

type otpRequestRequest struct {
	Email string `json:"email"`
}

type otpVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (s *Server) handleOTPRequest(w http.ResponseWriter, r *http.Request) {
	var req otpRequestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	if s.Mailer == nil {
		Error(w, r, maya.Errorf(maya.EUNAVAILABLE, "mail provider not configured"))
		return
	}

	code, err := s.OTPService.IssueOTP(r.Context(), req.Email)
	if err != nil {
		Error(w, r, err)
		return
	}
	if err := s.Mailer.SendOTP(r.Context(), req.Email, code); err != nil {
		Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "verification code sent"})
}

func (s *Server) handleOTPVerify(w http.ResponseWriter, r *http.Request) {
	var req otpVerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}

	if err := s.OTPService.VerifyOTP(r.Context(), req.Email, req.Code); err != nil {
		Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}
