package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rathodv/maya"
)

type chatRequest struct {
	Message string             `json:"message"`
	History []maya.ChatMessage `json:"history"`
	Memory  string             `json:"memory"`
}

type chatResponse struct {
	Reply      string         `json:"reply"`
	Intent     string         `json:"intent,omitempty"`
	Reminder   *maya.Reminder `json:"reminder,omitempty"`
	UsedSearch bool           `json:"usedSearch"`
	Offline    bool           `json:"offline"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		Error(w, r, maya.Errorf(maya.EINVALID, "message required"))
		return
	}
	userID := userIDFromContext(r.Context())

	// Reminder phrasing short-circuits the model conversation.
	if s.IntentExtractor != nil {
		parsed, err := s.IntentExtractor.ExtractIntent(r.Context(), req.Message)
		if err == nil && parsed.Intent == maya.IntentReminder && parsed.TaskDescription != "" {
			reminder, err := s.createParsedReminder(r, userID, parsed)
			if err != nil {
				Error(w, r, err)
				return
			}
			reply := fmt.Sprintf("Got it. I'll remind you to %s on %s.",
				reminder.Description, maya.PrettyTime(reminder.DueAt))
			writeJSON(w, http.StatusOK, chatResponse{
				Reply:    reply,
				Intent:   parsed.Intent,
				Reminder: reminder,
			})
			return
		}
	}

	// Persona comes from the user's stored settings.
	var name, tone string
	if s.SettingsService != nil {
		if settings, err := s.SettingsService.FindSettings(r.Context(), userID); err == nil {
			name = settings.DisplayName
			tone = settings.Personality
		}
	}

	var webContext string
	var usedSearch bool
	if s.Searcher != nil && maya.NeedsRealtimeSearch(req.Message) {
		if results, err := s.Searcher.SearchAndScrape(r.Context(), req.Message); err == nil && len(results) > 0 {
			webContext = maya.BuildSearchContext("", results)
			usedSearch = true
		}
	}

	cc := maya.ChatContext{
		History:    req.History,
		Memory:     req.Memory,
		WebContext: webContext,
		Name:       name,
		Tone:       tone,
	}

	var reply string
	var offline bool
	if s.Responder == nil {
		reply, offline = maya.OfflineReply(req.Message), true
	} else if got, err := s.Responder.Respond(r.Context(), req.Message, cc); err != nil {
		reply, offline = maya.OfflineReply(req.Message), true
	} else {
		reply = got
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:      reply,
		UsedSearch: usedSearch,
		Offline:    offline,
	})
}

// createParsedReminder resolves a parsed intent to a stored reminder,
// using the default morning slot when the time expression is missing or
// unparseable.
func (s *Server) createParsedReminder(r *http.Request, userID string, parsed *maya.ParsedReminder) (*maya.Reminder, error) {
	expr := parsed.TimeExpression
	if expr == "" {
		expr = maya.DefaultTimeExpression
	}
	dueAt, recurrence, err := maya.ParseTimeExpression(expr, time.Now())
	if err != nil {
		dueAt, recurrence, _ = maya.ParseTimeExpression(maya.DefaultTimeExpression, time.Now())
	}

	reminder := &maya.Reminder{
		UserID:      userID,
		Description: parsed.TaskDescription,
		DueAt:       dueAt,
		Recurrence:  recurrence,
	}
	if err := s.ReminderService.CreateReminder(r.Context(), reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

type searchResponse struct {
	Query   string              `json:"query"`
	Results []maya.SearchResult `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		Error(w, r, maya.Errorf(maya.EINVALID, "query parameter q required"))
		return
	}
	if s.Searcher == nil {
		Error(w, r, maya.Errorf(maya.EUNAVAILABLE, "search not configured"))
		return
	}

	results, err := s.Searcher.Search(r.Context(), query)
	if err != nil {
		Error(w, r, err)
		return
	}
	if results == nil {
		results = []maya.SearchResult{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: query, Results: results})
}
