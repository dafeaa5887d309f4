package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"quotes-scraper/config"
	"quotes-scraper/fetcher"
	"quotes-scraper/filter"
	"quotes-scraper/logger"
	"quotes-scraper/parser"
	"quotes-scraper/scraper"
	"quotes-scraper/writer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, eris.ToString(err, true))
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "quotes-scraper [output.csv]",
		Short: "Scrape every quote page and write the quotes to CSV",
		Long: "Walks https://quotes.toscrape.com/page/1/, /page/2/, ... until a page has no quotes,\n" +
			"then writes text, author and tags of every quote to a CSV file (default quotes.csv).",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return eris.Wrap(err, "load config")
			}
			if len(args) == 1 {
				cfg.Output.Path = args[0]
			}

			log, err := logger.New(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return eris.Wrap(err, "init logger")
			}

			return run(cmd.Context(), cfg, log)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "Path to configuration file")
	return cmd
}

// run scrapes all pages and writes the CSV once at the end
func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	f, err := fetcher.New(cfg.Fetcher)
	if err != nil {
		return err
	}
	w, err := writer.FromConfig(cfg.Output)
	if err != nil {
		return err
	}

	s := scraper.New(
		f,
		parser.FromConfig(cfg.Parser, log),
		filter.NewFilter(cfg.Filters),
		scraper.OptionsFromConfig(cfg),
		log,
	)

	log.WithFields(logrus.Fields{
		"base_url": cfg.BaseURL,
		"output":   cfg.Output.Path,
		"engine":   cfg.Fetcher.Engine,
	}).Info("Starting scrape")

	sum, err := s.ScrapeAll(ctx)
	if err != nil {
		return eris.Wrap(err, "scrape")
	}

	if err := w.WriteQuotes(cfg.Output.Path, sum.Quotes); err != nil {
		return eris.Wrap(err, "write csv")
	}

	log.WithFields(logrus.Fields{
		"run_id": sum.RunID,
		"quotes": len(sum.Quotes),
		"output": cfg.Output.Path,
	}).Info("Wrote quotes")
	return nil
}
