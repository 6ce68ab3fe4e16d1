package mock

import (
	"context"

	"github.com/rathodv/maya"
)

var _ maya.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of maya.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ maya.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of maya.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*maya.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*maya.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ maya.Converter = (*Converter)(nil)

// Converter is a mock implementation of maya.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ maya.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of maya.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.WaitFn == nil {
		return nil
	}
	return d.WaitFn(ctx, domain)
}
