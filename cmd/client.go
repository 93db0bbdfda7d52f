package main

import (
	"github.com/sells-group/acs-demographics/internal/acs"
	"github.com/sells-group/acs-demographics/internal/config"
	"github.com/sells-group/acs-demographics/internal/fetcher"
)

// newACSClient builds the Census client from configuration.
func newACSClient(c *config.Config) *acs.Client {
	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  c.ACS.UserAgent,
		Timeout:    c.ACS.Timeout(),
		MaxRetries: c.ACS.MaxRetries,
	})
	return acs.NewClient(f,
		acs.WithBaseURL(c.ACS.BaseURL),
		acs.WithAPIKey(c.ACS.APIKey),
	)
}
