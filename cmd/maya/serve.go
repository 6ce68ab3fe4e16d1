package main

import (
	"fmt"
	"os/signal"
	"syscall"

	mayahttp "github.com/rathodv/maya/http"
	"github.com/rathodv/maya/schedule"
)

// Run executes the serve command. It blocks until SIGINT or SIGTERM.
func (c *ServeCmd) Run(deps *Dependencies) error {
	addr := c.Addr
	if addr == "" {
		addr = deps.Addr
	}

	server := mayahttp.NewServer()
	server.Addr = addr
	server.CORSOrigins = deps.CORSOrigins
	server.Version = Version
	server.UserService = deps.Users
	server.OTPService = deps.OTP
	server.TokenService = deps.Tokens
	server.SettingsService = deps.Settings
	server.ReminderService = deps.Reminders
	server.Searcher = deps.Searcher
	server.Responder = deps.Responder
	server.IntentExtractor = deps.Intents
	server.Mailer = deps.Mailer
	server.SearchProviders = deps.SearchProviders
	server.AIEnabled = deps.AIEnabled
	server.MailEnabled = deps.MailEnabled

	if err := server.Open(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	ctx, stop := signal.NotifyContext(deps.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Reminder firing runs alongside the API for the life of the
	// process.
	scheduler := schedule.NewScheduler(deps.Reminders, deps.Users, deps.Mailer, 0)
	go scheduler.Run(ctx)

	fmt.Fprintf(deps.Stderr, "maya listening on %s\n", addr)

	<-ctx.Done()
	fmt.Fprintln(deps.Stderr, "shutting down...")
	return server.Close()
}
