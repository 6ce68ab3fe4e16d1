package main

import (
	"fmt"
	"time"

	"github.com/rathodv/maya"
)

// Run executes the remind command. It parses the text locally and
// prints the interpretation without storing anything.
func (c *RemindCmd) Run(deps *Dependencies) error {
	parsed := maya.ParseReminderText(c.Text)

	fmt.Fprintf(deps.Stdout, "intent: %s\n", parsed.Intent)
	if parsed.Intent != maya.IntentReminder {
		return nil
	}

	fmt.Fprintf(deps.Stdout, "task: %s\n", parsed.TaskDescription)

	expr := parsed.TimeExpression
	if expr == "" {
		expr = maya.DefaultTimeExpression
	}
	dueAt, recurrence, err := maya.ParseTimeExpression(expr, time.Now())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", maya.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "due: %s\n", maya.PrettyTime(dueAt))
	if recurrence != "" {
		fmt.Fprintf(deps.Stdout, "repeats: %s\n", recurrence)
	}
	return nil
}
