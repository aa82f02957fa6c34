package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/report"
	"github.com/fr4nk3nst1ner/langsalary/internal/scraper"
	"github.com/fr4nk3nst1ner/langsalary/internal/ui"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "langsalary",
		Usage: "Average salaries of programmers by language on HeadHunter and SuperJob",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file", EnvVars: []string{"LANGSALARY_CONFIG"}},
			&cli.StringSliceFlag{Name: "language", Aliases: []string{"l"}, Usage: "programming language to query (repeatable, comma separated)"},
			&cli.StringFlag{Name: "provider", Aliases: []string{"p"}, Value: "all", Usage: "provider to query: " + strings.Join(scraper.Names, ", ") + " or all"},
			&cli.IntFlag{Name: "max-pages", Usage: "stop each search after this many pages (0 = no limit)"},
			&cli.DurationFlag{Name: "timeout", Usage: "per-request timeout"},
			&cli.StringFlag{Name: "proxy", Usage: "proxy URL to use"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors and hide progress"},
			&cli.BoolFlag{Name: "silence", Aliases: []string{"nobanner"}, Usage: "silence the banner"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable colours"},
		},
		Action: runStats,
		Commands: []*cli.Command{
			{
				Name:   "vacancies",
				Usage:  "list the vacancies behind one language's statistics",
				Action: runVacancies,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "provider", Aliases: []string{"p"}, Value: "hh", Usage: "provider to query: " + strings.Join(scraper.Names, ", ")},
					&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Required: true, Usage: "programming language to query"},
				},
			},
		},
	}
}

// runStats prints the per-language salary tables for every selected provider.
func runStats(c *cli.Context) error {
	cfg, logger, err := setup(c, true)
	if err != nil {
		return err
	}

	providers, err := selectProviders(c.String("provider"), cfg, logger)
	if err != nil {
		return exitError(err)
	}

	var progress io.Writer = os.Stderr
	if c.Bool("quiet") {
		progress = nil
	}

	reports := make([]models.ProviderReport, 0, len(providers))
	for _, provider := range providers {
		logger.Info("Collecting vacancies", logger.Args("provider", provider.Name(), "languages", len(cfg.Languages)))
		r, err := report.Collect(c.Context, provider, report.Options{
			Languages: cfg.Languages,
			Progress:  progress,
			Logger:    logger,
		})
		if err != nil {
			return fmt.Errorf("collecting %s: %w", provider.Name(), err)
		}
		reports = append(reports, r)
	}

	out, err := ui.RenderSideBySide(reports, !c.Bool("no-color"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, out)
	return nil
}

// runVacancies prints the individual listings for one provider and language.
func runVacancies(c *cli.Context) error {
	cfg, logger, err := setup(c, false)
	if err != nil {
		return err
	}

	provider, err := scraper.New(c.String("provider"), cfg, logger)
	if err != nil {
		return exitError(err)
	}

	language := strings.TrimSpace(c.String("language"))
	result, estimates, err := report.Inspect(c.Context, provider, language)
	if err != nil {
		return err
	}

	out, err := ui.RenderListings(fmt.Sprintf("%s: %s", provider.Title(), language), result.Listings, estimates)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, out)
	fmt.Fprintf(c.App.Writer, "Страниц загружено: %d из %d\n", result.PagesFetched, result.PagesExpected)
	if !result.Complete {
		fmt.Fprintf(c.App.Writer, "Поиск остановлен досрочно: %s\n", result.StopReason)
	}
	return nil
}

// setup prints the banner and builds the logger and configuration shared by all commands.
func setup(c *cli.Context, languageFlag bool) (*config.Config, *pterm.Logger, error) {
	if c.Bool("no-color") {
		pterm.DisableColor()
	}
	ui.PrintBanner(c.Bool("silence") || c.Bool("quiet"))

	logger := ui.NewLogger(os.Stderr, c.Bool("debug"), c.Bool("quiet"))

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, exitError(err)
	}
	if err := applyFlags(c, cfg, languageFlag); err != nil {
		return nil, nil, exitError(err)
	}
	return cfg, logger, nil
}

// applyFlags overrides file and environment settings with explicit flags.
// Global flags are read through the context lineage, so subcommands see them
// too; languageFlag is false where --language names a single language.
func applyFlags(c *cli.Context, cfg *config.Config, languageFlag bool) error {
	if languageFlag && c.IsSet("language") {
		cfg.Languages = utils.SplitList(c.StringSlice("language"))
	}
	cfg.Languages = utils.NormalizeLanguages(cfg.Languages)

	if c.IsSet("max-pages") {
		cfg.MaxPages = c.Int("max-pages")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("proxy") {
		cfg.ProxyURL = c.String("proxy")
	}
	return cfg.Validate()
}

// selectProviders builds the requested providers before any request is made,
// so a missing SuperJob key fails the run up front.
func selectProviders(name string, cfg *config.Config, logger *pterm.Logger) ([]scraper.Provider, error) {
	names := []string{name}
	if strings.EqualFold(name, "all") || name == "" {
		names = scraper.Names
	}

	providers := make([]scraper.Provider, 0, len(names))
	for _, n := range names {
		p, err := scraper.New(n, cfg, logger)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}

func exitError(err error) error {
	if errors.Is(err, config.ErrMissingSecretKey) {
		return cli.Exit(fmt.Sprintf("%v: export the SuperJob application key before running", err), 1)
	}
	return cli.Exit(err.Error(), 1)
}
