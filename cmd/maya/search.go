package main

import (
	"fmt"

	"github.com/rathodv/maya"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if deps.Searcher == nil {
		fmt.Fprintln(deps.Stderr, "No search provider configured. Set SERPAPI_KEY or GOOGLE_API_KEY and GOOGLE_SEARCH_CX_ID.")
		return maya.Errorf(maya.EUNAVAILABLE, "no search provider configured")
	}

	var results []maya.SearchResult
	var err error
	if c.Scrape {
		results, err = deps.Searcher.SearchAndScrape(deps.Ctx, c.Query)
	} else {
		results, err = deps.Searcher.Search(deps.Ctx, c.Query)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", maya.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(deps.Stdout, "%d. %s\n   %s\n", i+1, r.Title, r.Link)
		switch {
		case r.Summary != "":
			fmt.Fprintf(deps.Stdout, "   %s\n", r.Summary)
		case r.Snippet != "":
			fmt.Fprintf(deps.Stdout, "   %s\n", r.Snippet)
		}
	}

	return nil
}
