package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/pterm/pterm"
)

// ErrFatalStatus marks a provider response that must abort the search
// instead of ending it early.
var ErrFatalStatus = errors.New("fatal response status")

// errEndOfResults is returned by a page fetch when the provider signals
// there is nothing more to page through.
var errEndOfResults = errors.New("end of results")

// Provider searches one vacancy site.
type Provider interface {
	Name() string
	Title() string
	Search(ctx context.Context, query string) (*models.SearchResult, error)
}

// Names lists the supported provider identifiers in display order.
var Names = []string{"superjob", "hh"}

// New returns the provider registered under name.
func New(name string, cfg *config.Config, logger *pterm.Logger) (Provider, error) {
	switch strings.ToLower(name) {
	case "hh", "headhunter":
		return NewHeadHunter(cfg, logger), nil
	case "sj", "superjob":
		if err := cfg.RequireSecretKey(); err != nil {
			return nil, err
		}
		return NewSuperJob(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want one of %s)", name, strings.Join(Names, ", "))
	}
}

// StatusError is a non-200 answer from a provider API.
type StatusError struct {
	Provider string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Provider, e.Code)
}

// page is one batch of listings. total is the provider's page count when it
// reports one; more tells whether a following page exists.
type page struct {
	listings []models.Listing
	total    int
	more     bool
}

type pageFunc func(ctx context.Context, query string, index int) (*page, error)

// paginate requests pages until the provider runs out, maxPages is hit, or a
// page fails. A failed page is not retried: whatever was collected so far is
// returned as an incomplete result, and only fatal statuses and cancellation
// surface as errors.
func paginate(ctx context.Context, logger *pterm.Logger, provider, query string, maxPages int, fetch pageFunc) (*models.SearchResult, error) {
	result := &models.SearchResult{}

	for index := 0; ; index++ {
		if maxPages > 0 && index >= maxPages {
			result.StopReason = "page limit"
			logger.Debug("Page limit reached", logger.Args("provider", provider, "query", query, "pages", index))
			return result, nil
		}

		p, err := fetch(ctx, query, index)
		if err != nil {
			switch {
			case errors.Is(err, errEndOfResults):
				result.Complete = true
				result.StopReason = "end of results"
				logger.Info("Provider signalled end of results", logger.Args("provider", provider, "query", query, "page", index))
				return result, nil
			case errors.Is(err, ErrFatalStatus):
				return result, fmt.Errorf("%s page %d: %w", provider, index, err)
			case ctx.Err() != nil:
				return result, ctx.Err()
			default:
				result.StopReason = err.Error()
				logger.Warn("Page abandoned, keeping partial results", logger.Args(
					"provider", provider,
					"query", query,
					"page", index,
					"fetched", result.PagesFetched,
					"expected", result.PagesExpected,
					"error", err,
				))
				return result, nil
			}
		}

		result.PagesFetched++
		result.Listings = append(result.Listings, p.listings...)
		if p.total > 0 {
			result.PagesExpected = p.total
		}
		logger.Debug("Fetched page", logger.Args("provider", provider, "query", query, "page", index, "listings", len(p.listings)))

		if !p.more {
			result.Complete = true
			return result, nil
		}
	}
}

// discardLogger is used when a caller passes no logger.
func discardLogger() *pterm.Logger {
	return pterm.DefaultLogger.WithWriter(io.Discard)
}
