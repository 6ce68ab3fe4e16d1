package http

import (
	"net/http"

	"github.com/rathodv/maya"
)

func (s *Server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	settings, err := s.SettingsService.FindSettings(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var settings maya.Settings
	if err := decodeJSON(w, r, &settings); err != nil {
		Error(w, r, err)
		return
	}

	// The authenticated user owns the row regardless of the body.
	settings.UserID = userIDFromContext(r.Context())

	if err := s.SettingsService.UpdateSettings(r.Context(), &settings); err != nil {
		Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &settings)
}
