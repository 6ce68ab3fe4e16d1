package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rathodv/maya"
)

// ShutdownTimeout bounds graceful shutdown on Close.
const ShutdownTimeout = 5 * time.Second

// maxBodySize limits request bodies accepted by the JSON endpoints.
const maxBodySize = 1 << 20 // 1MB

// Server is the Maya HTTP API server. It wraps a net/http server with a
// chi router and delegates all domain work to the injected services.
// Configure the exported fields before calling Open.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Bind address, e.g. ":8080".
	Addr string

	// Origins allowed by the CORS middleware. "*" allows any origin.
	CORSOrigins []string

	// Reported by GET /api/info.
	Version string

	// Services used by the API endpoints.
	UserService     maya.UserService
	OTPService      maya.OTPService
	TokenService    maya.TokenService
	SettingsService maya.SettingsService
	ReminderService maya.ReminderService
	Searcher        maya.Searcher
	Responder       maya.Responder
	IntentExtractor maya.IntentExtractor
	Mailer          maya.Mailer

	// SearchProviders lists the configured provider names for /api/info.
	SearchProviders []string

	// AIEnabled reports whether a model backend is configured.
	AIEnabled bool

	// MailEnabled reports whether a mail provider is configured.
	MailEnabled bool
}

// NewServer creates a new Server with all routes registered. Handlers
// read the service fields at request time, so services may be assigned
// after construction but before serving.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{},
		router: chi.NewRouter(),
	}
	s.server.Handler = http.HandlerFunc(s.ServeHTTP)

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/otp/request", s.handleOTPRequest)
		r.Post("/auth/otp/verify", s.handleOTPVerify)
		r.Get("/info", s.handleInfo)
		r.Post("/email/test", s.handleEmailTest)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/settings", s.handleSettingsGet)
			r.Put("/settings", s.handleSettingsUpdate)

			r.Post("/chat", s.handleChat)
			r.Get("/search", s.handleSearch)

			r.Post("/reminders/parse", s.handleReminderParse)
			r.Post("/reminders", s.handleReminderCreate)
			r.Get("/reminders", s.handleReminderList)
			r.Get("/reminders/{id}", s.handleReminderGet)
			r.Patch("/reminders/{id}/cancel", s.handleReminderCancel)
		})
	})

	return s
}

// ServeHTTP applies CORS headers and dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if origin := r.Header.Get("Origin"); origin != "" && s.originAllowed(origin) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Vary", "Origin")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.router.ServeHTTP(w, r)
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.CORSOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// Open begins listening on Addr. It returns immediately; serving
// happens on a background goroutine until Close.
func (s *Server) Open() (err error) {
	if s.Addr == "" {
		return fmt.Errorf("listen address required")
	}
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			slog.Error("http server terminated", "error", err)
		}
	}()
	return nil
}

// Close gracefully shuts the server down, waiting up to ShutdownTimeout
// for in-flight requests.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server. Useful in tests where
// Addr binds to port 0.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	version := s.Version
	if version == "" {
		version = "dev"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "maya",
		"version": version,
		"features": map[string]any{
			"searchProviders": s.SearchProviders,
			"ai":              s.AIEnabled,
			"mail":            s.MailEnabled,
		},
	})
}

type emailTestRequest struct {
	To string `json:"to"`
}

func (s *Server) handleEmailTest(w http.ResponseWriter, r *http.Request) {
	if s.Mailer == nil {
		Error(w, r, maya.Errorf(maya.EUNAVAILABLE, "mail provider not configured"))
		return
	}
	var req emailTestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	if req.To == "" {
		Error(w, r, maya.Errorf(maya.EINVALID, "recipient required"))
		return
	}
	if err := s.Mailer.Send(r.Context(), req.To, "Maya test email", "<p>Mail delivery is working.</p>"); err != nil {
		Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"sent": true})
}

// errorStatusCodes maps application error codes to HTTP status codes.
var errorStatusCodes = map[string]int{
	maya.ECONFLICT:     http.StatusConflict,
	maya.EINVALID:      http.StatusBadRequest,
	maya.ENOTFOUND:     http.StatusNotFound,
	maya.EUNAUTHORIZED: http.StatusUnauthorized,
	maya.EUNAVAILABLE:  http.StatusServiceUnavailable,
	maya.EINTERNAL:     http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error
// code, defaulting to 500.
func ErrorStatusCode(code string) int {
	if status, ok := errorStatusCodes[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// Error writes an application error as a JSON response. Internal errors
// are logged and masked; coded errors pass their message through.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := maya.ErrorCode(err), maya.ErrorMessage(err)
	if code == maya.EINTERNAL {
		slog.Error("http request error", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, ErrorStatusCode(code), errorResponse{Code: code, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// decodeJSON reads a size-limited JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return maya.Errorf(maya.EINVALID, "invalid request body")
	}
	return nil
}
