package maya

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Intent values recognized by the assistant.
const (
	IntentReminder       = "reminder"
	IntentPlayMedia      = "play_media"
	IntentSmalltalk      = "smalltalk"
	IntentCancelReminder = "cancel_reminder"
	IntentEditReminder   = "edit_reminder"
	IntentOther          = "other"
)

// Reminder status values.
const (
	ReminderPending   = "pending"
	ReminderFired     = "fired"
	ReminderCancelled = "cancelled"
)

// Recurrence frequency values. A weekly recurrence carries its weekday
// as "weekly:monday".
const (
	RecurDaily   = "daily"
	RecurWeekly  = "weekly"
	RecurMonthly = "monthly"
)

// Reminder represents a scheduled reminder.
type Reminder struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	DueAt       time.Time `json:"dueAt"`
	Recurrence  string    `json:"recurrence,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the reminder contains invalid fields.
func (r *Reminder) Validate() error {
	if r.UserID == "" {
		return Errorf(EINVALID, "reminder user ID required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return Errorf(EINVALID, "please specify what to remind you about")
	}
	if r.DueAt.IsZero() {
		return Errorf(EINVALID, "reminder due time required")
	}
	return nil
}

// NextOccurrence returns the next due time after the given one for the
// reminder's recurrence, or the zero time for one-shot reminders.
func (r *Reminder) NextOccurrence(after time.Time) time.Time {
	switch {
	case r.Recurrence == RecurDaily:
		return after.AddDate(0, 0, 1)
	case strings.HasPrefix(r.Recurrence, RecurWeekly):
		return after.AddDate(0, 0, 7)
	case r.Recurrence == RecurMonthly:
		return after.AddDate(0, 1, 0)
	}
	return time.Time{}
}

// ReminderFilter represents a filter for FindReminders.
type ReminderFilter struct {
	UserID    *string    `json:"userId"`
	Status    *string    `json:"status"`
	DueBefore *time.Time `json:"dueBefore"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ReminderUpdate represents fields that can be updated on a reminder.
type ReminderUpdate struct {
	Description *string    `json:"description"`
	DueAt       *time.Time `json:"dueAt"`
	Status      *string    `json:"status"`
}

// ReminderService represents a service for managing reminders.
type ReminderService interface {
	// CreateReminder creates a new reminder.
	CreateReminder(ctx context.Context, reminder *Reminder) error

	// FindReminderByID retrieves a reminder by ID.
	// Returns ENOTFOUND if the reminder does not exist.
	FindReminderByID(ctx context.Context, id string) (*Reminder, error)

	// FindReminders retrieves reminders matching the filter, ordered by
	// due time ascending.
	FindReminders(ctx context.Context, filter ReminderFilter) ([]*Reminder, error)

	// UpdateReminder updates an existing reminder.
	// Returns ENOTFOUND if the reminder does not exist.
	UpdateReminder(ctx context.Context, id string, upd ReminderUpdate) (*Reminder, error)
}

// ParsedReminder is the structured interpretation of a free-text
// assistant command.
type ParsedReminder struct {
	Intent          string `json:"intent"`
	TaskDescription string `json:"task_description"`
	TimeExpression  string `json:"time_expression"`
}

// IntentExtractor interprets free text into an intent plus reminder
// fields, typically backed by a language model with ParseReminderText
// as the local fallback.
type IntentExtractor interface {
	ExtractIntent(ctx context.Context, text string) (*ParsedReminder, error)
}

// leadPhrases are stripped from the front of reminder commands.
var leadPhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^remind\s+me\s+(?:to\s+)?`),
	regexp.MustCompile(`(?i)^set\s+(?:a\s+)?reminder\s+(?:to\s+)?`),
	regexp.MustCompile(`(?i)^create\s+(?:a\s+)?reminder\s+(?:to\s+)?`),
	regexp.MustCompile(`(?i)^schedule\s+(?:a\s+)?(?:task|reminder)\s+(?:to\s+)?`),
}

// Anchors separating the task description from its time expression.
// Recurrence anchors are checked first so "every monday at 7:30 am"
// stays one expression; otherwise the last anchor in the text wins, so
// "meet anna at the cafe at 6pm" splits on the second "at".
var (
	recurAnchors = []string{" every ", " daily", " weekly", " monthly"}
	timeAnchors  = []string{" at ", " in ", " on ", " by ", " after "}
)

// ParseReminderText extracts an intent, task description, and time
// expression from free text without calling a model.
func ParseReminderText(text string) *ParsedReminder {
	s := strings.TrimSpace(text)
	if s == "" {
		return &ParsedReminder{Intent: IntentOther}
	}

	low := strings.ToLower(s)
	switch {
	case strings.Contains(low, "cancel") && strings.Contains(low, "reminder"):
		return &ParsedReminder{Intent: IntentCancelReminder}
	case (strings.Contains(low, "move") || strings.Contains(low, "reschedule")) && strings.Contains(low, "reminder"):
		expr := ""
		if m := editTimeRE.FindStringSubmatch(s); m != nil {
			expr = strings.TrimSpace(m[1])
		}
		return &ParsedReminder{Intent: IntentEditReminder, TimeExpression: expr}
	case strings.HasPrefix(low, "play "):
		return &ParsedReminder{Intent: IntentPlayMedia}
	}

	isReminder := strings.Contains(low, "remind me")
	for _, re := range leadPhrases {
		if re.MatchString(s) {
			isReminder = true
			s = re.ReplaceAllString(s, "")
			break
		}
	}

	desc, timeExpr := splitOnTimeAnchor(s)
	if !isReminder {
		if timeExpr == "" {
			return &ParsedReminder{Intent: IntentSmalltalk}
		}
		// A time expression without a reminder verb still reads as one
		// ("every Monday at 7:30 am pay rent").
	}

	// Leading time phrases: "In 5 minutes remind me to play" ends up
	// with the time in front after lead stripping.
	if desc == "" && timeExpr == "" {
		desc = s
	}

	return &ParsedReminder{
		Intent:          IntentReminder,
		TaskDescription: strings.Trim(desc, ",. "),
		TimeExpression:  strings.Trim(timeExpr, ",. "),
	}
}

// splitOnTimeAnchor splits text on the last time anchor. Leading time
// expressions ("tomorrow at 8pm call mom") are detected separately.
func splitOnTimeAnchor(s string) (desc, timeExpr string) {
	low := strings.ToLower(s)

	// Leading expressions like "in 5 minutes ..." or "tomorrow at 8 ...".
	if m := leadingTimeRE.FindStringIndex(low); m != nil && m[0] == 0 {
		return strings.TrimSpace(s[m[1]:]), strings.TrimSpace(s[m[0]:m[1]])
	}

	for _, a := range recurAnchors {
		if j := strings.Index(low, a); j != -1 {
			return strings.TrimSpace(s[:j]), strings.TrimSpace(s[j:])
		}
	}

	idx := -1
	for _, a := range timeAnchors {
		if j := strings.LastIndex(low, a); j > idx {
			idx = j
		}
	}
	if idx == -1 {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx:])
}

var (
	leadingTimeRE = regexp.MustCompile(`(?i)^(?:in\s+\d+\s+(?:seconds?|minutes?|hours?|days?)|tomorrow(?:\s+at\s+[\d: ]+\s*(?:am|pm)?)?|today\s+at\s+[\d: ]+\s*(?:am|pm)?)`)
	editTimeRE    = regexp.MustCompile(`(?i)\b(?:to|at|for)\s+(.+)$`)
)

// weekdayNames maps spoken weekday names for recurrence parsing.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var (
	relativeRE  = regexp.MustCompile(`(?i)\bin\s+(\d+)\s+(second|minute|hour|day)s?\b`)
	clockRE     = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	clock24RE   = regexp.MustCompile(`(?i)\bat\s+(\d{1,2}):(\d{2})\b`)
	everyDayRE  = regexp.MustCompile(`(?i)\b(?:every\s*day|daily)\b`)
	everyWeekRE = regexp.MustCompile(`(?i)\bevery\s+(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)
	monthlyRE   = regexp.MustCompile(`(?i)\b(?:every\s+month|monthly)\b`)
)

// ParseTimeExpression resolves a natural time expression relative to
// now. It returns the first run time and a recurrence string ("" for
// one-shot reminders). Returns EINVALID for expressions it cannot
// understand.
func ParseTimeExpression(expr string, now time.Time) (time.Time, string, error) {
	s := strings.TrimSpace(strings.ToLower(expr))
	if s == "" {
		return time.Time{}, "", Errorf(EINVALID, "time expression required")
	}

	// Relative offsets: "in 5 minutes".
	if m := relativeRE.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		var d time.Duration
		switch m[2] {
		case "second":
			d = time.Duration(n) * time.Second
		case "minute":
			d = time.Duration(n) * time.Minute
		case "hour":
			d = time.Duration(n) * time.Hour
		case "day":
			d = time.Duration(n) * 24 * time.Hour
		}
		return now.Add(d), "", nil
	}

	recurrence := ""
	switch {
	case everyWeekRE.MatchString(s):
		day := everyWeekRE.FindStringSubmatch(s)[1]
		recurrence = RecurWeekly + ":" + day
	case everyDayRE.MatchString(s):
		recurrence = RecurDaily
	case monthlyRE.MatchString(s):
		recurrence = RecurMonthly
	}

	hour, minute, haveClock := parseClock(s)
	if !haveClock {
		// Default reminder hour when only a day is named.
		hour, minute = 9, 0
	}

	base := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

	switch {
	case strings.Contains(s, "tomorrow"):
		return base.AddDate(0, 0, 1), recurrence, nil

	case strings.HasPrefix(recurrence, RecurWeekly):
		day := weekdayNames[strings.TrimPrefix(recurrence, RecurWeekly+":")]
		first := base
		for first.Weekday() != day || !first.After(now) {
			first = first.AddDate(0, 0, 1)
		}
		return first, recurrence, nil

	case recurrence == RecurDaily:
		if !base.After(now) {
			base = base.AddDate(0, 0, 1)
		}
		return base, recurrence, nil

	case recurrence == RecurMonthly:
		if !base.After(now) {
			base = base.AddDate(0, 1, 0)
		}
		return base, recurrence, nil

	case haveClock || strings.Contains(s, "today"):
		if !base.After(now) {
			if strings.Contains(s, "today") {
				return time.Time{}, "", Errorf(EINVALID, "that time today has already passed")
			}
			base = base.AddDate(0, 0, 1)
		}
		return base, "", nil
	}

	return time.Time{}, "", Errorf(EINVALID, "could not understand time %q", expr)
}

// parseClock extracts an hour and minute from a time expression.
func parseClock(s string) (hour, minute int, ok bool) {
	if m := clockRE.FindStringSubmatch(s); m != nil {
		hour, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		meridiem := strings.ToLower(m[3])
		if meridiem == "pm" && hour < 12 {
			hour += 12
		}
		if meridiem == "am" && hour == 12 {
			hour = 0
		}
		if hour > 23 || minute > 59 {
			return 0, 0, false
		}
		return hour, minute, true
	}
	if m := clock24RE.FindStringSubmatch(s); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return 0, 0, false
		}
		return hour, minute, true
	}
	return 0, 0, false
}

// DefaultTimeExpression is used when a reminder command carries no time.
const DefaultTimeExpression = "tomorrow 9:00 am"

// PrettyTime renders a reminder time for user-facing confirmations.
func PrettyTime(t time.Time) string {
	return fmt.Sprintf("%s, %s", t.Format("Mon Jan 2"), t.Format("3:04 PM"))
}
