package main

import (
	"context"
	"io"

	"github.com/rathodv/maya"
	"github.com/rathodv/maya/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	DB     *sqlite.DB

	Users     maya.UserService
	Settings  maya.SettingsService
	Reminders maya.ReminderService
	OTP       maya.OTPService
	Tokens    maya.TokenService
	Cache     maya.Cache
	Searcher  maya.Searcher
	Responder maya.Responder
	Intents   maya.IntentExtractor
	Mailer    maya.Mailer

	// Config resolved from the environment.
	Addr            string
	CORSOrigins     []string
	SearchProviders []string
	AIEnabled       bool
	MailEnabled     bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve  ServeCmd  `cmd:"" help:"Run the Maya API server"`
	Search SearchCmd `cmd:"" help:"Run a web search from the command line"`
	Remind RemindCmd `cmd:"" help:"Parse a natural-language reminder"`
	Info   InfoCmd   `cmd:"" help:"Show version and configured features"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `short:"a" help:"Listen address (overrides MAYA_ADDR)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" help:"Search query"`
	Scrape bool   `short:"s" help:"Scrape article content from the top results"`
}

// RemindCmd is the "remind" subcommand.
type RemindCmd struct {
	Text string `arg:"" help:"Reminder text, e.g. 'remind me to call mom at 6pm'"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct{}
