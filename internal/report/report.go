package report

import (
	"context"
	"errors"
	"io"

	"github.com/cheggaaa/pb/v3"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/salary"
	"github.com/fr4nk3nst1ner/langsalary/internal/scraper"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
	"github.com/pterm/pterm"
)

const progressTemplate = `{{string . "prefix"}} {{counters . }} {{bar . }} {{percent . }} {{string . "language"}}`

// Options controls a collection run.
type Options struct {
	Languages []string
	// Progress receives the progress bar; nil hides it.
	Progress io.Writer
	Logger   *pterm.Logger
}

// Collect searches provider for every language in order and aggregates the
// results. A language whose search fails is reported with empty statistics
// and listed as incomplete; only cancellation stops the whole run.
func Collect(ctx context.Context, provider scraper.Provider, opts Options) (models.ProviderReport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = pterm.DefaultLogger.WithWriter(io.Discard)
	}
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}

	report := models.ProviderReport{
		Provider:  provider.Name(),
		Title:     provider.Title(),
		Languages: make([]models.LanguageStats, 0, len(opts.Languages)),
	}

	bar := pb.New(len(opts.Languages)).
		SetTemplateString(progressTemplate).
		SetWriter(progress).
		Set("prefix", provider.Title())
	bar.Start()
	defer bar.Finish()

	for _, language := range opts.Languages {
		bar.Set("language", language)

		result, err := provider.Search(ctx, utils.BuildQuery(language))
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return report, err
			}
			logger.Error("Search failed", logger.Args("provider", provider.Name(), "language", language, "error", err))
			report.Languages = append(report.Languages, models.LanguageStats{Language: language})
			report.Incomplete = append(report.Incomplete, language)
			bar.Increment()
			continue
		}

		if !result.Complete {
			report.Incomplete = append(report.Incomplete, language)
			logger.Warn("Partial results", logger.Args(
				"provider", provider.Name(),
				"language", language,
				"fetched", result.PagesFetched,
				"expected", result.PagesExpected,
				"reason", result.StopReason,
			))
		}

		stats := salary.Aggregate(language, result.Listings)
		report.Languages = append(report.Languages, stats)
		logger.Debug("Language aggregated", logger.Args(
			"provider", provider.Name(),
			"language", language,
			"found", stats.VacanciesFound,
			"processed", stats.VacanciesProcessed,
		))
		bar.Increment()
	}

	return report, nil
}

// Inspect searches one language and returns its listings together with the
// salary estimate of each, nil where none could be made.
func Inspect(ctx context.Context, provider scraper.Provider, language string) (*models.SearchResult, []*float64, error) {
	result, err := provider.Search(ctx, utils.BuildQuery(language))
	if err != nil {
		return nil, nil, err
	}

	estimates := make([]*float64, len(result.Listings))
	for i, listing := range result.Listings {
		if v, ok := salary.Estimate(listing.SalaryFrom, listing.SalaryTo); ok {
			estimates[i] = &v
		}
	}
	return result, estimates, nil
}
