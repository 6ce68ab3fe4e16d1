package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rathodv/maya"
)

type reminderParseRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleReminderParse(w http.ResponseWriter, r *http.Request) {
	var req reminderParseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		Error(w, r, maya.Errorf(maya.EINVALID, "text required"))
		return
	}

	var parsed *maya.ParsedReminder
	if s.IntentExtractor != nil {
		var err error
		if parsed, err = s.IntentExtractor.ExtractIntent(r.Context(), req.Text); err != nil {
			parsed = maya.ParseReminderText(req.Text)
		}
	} else {
		parsed = maya.ParseReminderText(req.Text)
	}

	writeJSON(w, http.StatusOK, parsed)
}

type reminderCreateRequest struct {
	// Free text takes the natural-language path when set.
	Text string `json:"text"`

	Description string     `json:"description"`
	DueAt       *time.Time `json:"dueAt"`
	Recurrence  string     `json:"recurrence"`
}

func (s *Server) handleReminderCreate(w http.ResponseWriter, r *http.Request) {
	var req reminderCreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	userID := userIDFromContext(r.Context())

	if strings.TrimSpace(req.Text) != "" {
		parsed := maya.ParseReminderText(req.Text)
		if parsed.Intent != maya.IntentReminder || parsed.TaskDescription == "" {
			Error(w, r, maya.Errorf(maya.EINVALID, "could not parse a reminder from text"))
			return
		}
		reminder, err := s.createParsedReminder(r, userID, parsed)
		if err != nil {
			Error(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, reminder)
		return
	}

	reminder := &maya.Reminder{
		UserID:      userID,
		Description: req.Description,
		Recurrence:  req.Recurrence,
	}
	if req.DueAt != nil {
		reminder.DueAt = *req.DueAt
	} else {
		reminder.DueAt, _, _ = maya.ParseTimeExpression(maya.DefaultTimeExpression, time.Now())
	}

	if err := s.ReminderService.CreateReminder(r.Context(), reminder); err != nil {
		Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reminder)
}

func (s *Server) handleReminderList(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	filter := maya.ReminderFilter{UserID: &userID}

	status := r.URL.Query().Get("status")
	if status == "" {
		status = maya.ReminderPending
	}
	if status != "all" {
		filter.Status = &status
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	reminders, err := s.ReminderService.FindReminders(r.Context(), filter)
	if err != nil {
		Error(w, r, err)
		return
	}
	if reminders == nil {
		reminders = []*maya.Reminder{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reminders": reminders})
}

func (s *Server) handleReminderGet(w http.ResponseWriter, r *http.Request) {
	reminder, err := s.findOwnedReminder(r)
	if err != nil {
		Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reminder)
}

func (s *Server) handleReminderCancel(w http.ResponseWriter, r *http.Request) {
	reminder, err := s.findOwnedReminder(r)
	if err != nil {
		Error(w, r, err)
		return
	}

	status := maya.ReminderCancelled
	updated, err := s.ReminderService.UpdateReminder(r.Context(), reminder.ID, maya.ReminderUpdate{Status: &status})
	if err != nil {
		Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// findOwnedReminder loads the reminder from the URL and verifies the
// authenticated user owns it. Other users' reminders read as absent.
func (s *Server) findOwnedReminder(r *http.Request) (*maya.Reminder, error) {
	reminder, err := s.ReminderService.FindReminderByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	if reminder.UserID != userIDFromContext(r.Context()) {
		return nil, maya.Errorf(maya.ENOTFOUND, "reminder not found")
	}
	return reminder, nil
}
