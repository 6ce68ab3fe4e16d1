package main

import (
	"fmt"
	"strings"
)

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "maya %s\n", Version)

	providers := "(none)"
	if len(deps.SearchProviders) > 0 {
		providers = strings.Join(deps.SearchProviders, ", ")
	}
	fmt.Fprintf(deps.Stdout, "search providers: %s\n", providers)
	fmt.Fprintf(deps.Stdout, "mail: %s\n", onOff(deps.MailEnabled))
	fmt.Fprintf(deps.Stdout, "ai: %s\n", onOff(deps.AIEnabled))
	return nil
}

func onOff(enabled bool) string {
	if enabled {
		return "configured"
	}
	return "not configured"
}
