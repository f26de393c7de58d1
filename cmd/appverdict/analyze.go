package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/NeuralTrust/AppVerdict/pkg/app/judgment"
	"github.com/NeuralTrust/AppVerdict/pkg/config"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/app"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/storage"
	"github.com/sirupsen/logrus"
)

var errScraperDisabled = errors.New("scraper.base_url is not configured; use --skip-scraping to analyze an existing input file")

type analyzeCommand struct {
	opts   *options
	cfg    *config.Config
	logger *logrus.Logger
	store  storage.Store
	in     io.Reader
	out    io.Writer
}

func (c *analyzeCommand) run(ctx context.Context) int {
	comps, err := buildComponents(c.cfg, c.logger, c.progress)
	if err != nil {
		c.logger.WithError(err).Error("failed to initialize pipeline")
		_, _ = fmt.Fprintf(c.out, "\nError: %v\n", err)
		return exitError
	}
	defer comps.Close()

	if err := judgment.Verify(ctx, comps.provider, c.cfg.Judgment); err != nil {
		c.logger.WithError(err).Error("judgment provider is not usable")
		_, _ = fmt.Fprintf(c.out, "\nError: %v\n", err)
		return exitError
	}

	records, code, ok := c.loadRecords(ctx, comps)
	if !ok {
		return code
	}
	if interrupted(ctx, c.out) {
		return exitOK
	}

	run := comps.orchestrator.AnalyzeRun(ctx, records)
	if interrupted(ctx, c.out) {
		return exitOK
	}
	if err := c.store.Save(c.cfg.Paths.Output, run.Reports); err != nil {
		c.logger.WithError(err).Error("failed to save analysis results")
		_, _ = fmt.Fprintf(c.out, "\nError: %v\n", err)
		return exitError
	}
	c.logger.WithFields(logrus.Fields{
		"run_id": run.ID.String(),
		"path":   c.cfg.Paths.Output,
	}).Info("analysis complete")

	if c.cfg.Paths.Labels != "" {
		report, err := evaluateReports(c.store, c.logger, c.cfg, run.Reports)
		if err != nil {
			c.logger.WithError(err).Warn("evaluation skipped")
		} else {
			printMetrics(c.out, report, c.cfg.Paths.Metrics)
		}
	}

	printSummary(c.out, run.Reports, c.cfg.Paths.Output)
	return exitOK
}

// loadRecords either reuses the input document or scrapes a fresh one and
// saves it as the new input document.
func (c *analyzeCommand) loadRecords(ctx context.Context, comps *components) ([]app.RawAppRecord, int, bool) {
	if c.opts.skipScraping {
		c.logger.Info("skipping scraping, using existing input data")
		records, err := c.store.LoadRecords(c.cfg.Paths.Input)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.logger.WithField("path", c.cfg.Paths.Input).Error("input file not found, cannot skip scraping")
			} else {
				c.logger.WithError(err).Error("failed to load input data")
			}
			_, _ = fmt.Fprintf(c.out, "\nError: %v\n", err)
			return nil, exitError, false
		}
		return records, exitOK, true
	}

	if comps.scraper == nil {
		_, _ = fmt.Fprintf(c.out, "\nError: %v\n", errScraperDisabled)
		return nil, exitError, false
	}
	query, topN := resolveQuery(c.opts, c.in, c.out)
	c.logger.WithFields(logrus.Fields{"query": query, "top_n": topN}).Info("running scraping and analysis workflow")

	records, err := comps.scraper.Search(ctx, query, topN)
	if err != nil {
		if interrupted(ctx, c.out) {
			return nil, exitOK, false
		}
		c.logger.WithError(err).Error("scraping failed")
		_, _ = fmt.Fprintf(c.out, "\nError: %v\n", err)
		_, _ = fmt.Fprintln(c.out, "If you're searching for apps, try a different query or check spelling.")
		return nil, exitError, false
	}
	if len(records) == 0 {
		_, _ = fmt.Fprintln(c.out, "\nNo apps were found for your search query.")
		_, _ = fmt.Fprintln(c.out, "Please try again with a different search term or check your spelling.")
		return nil, exitError, false
	}
	if err := c.store.Save(c.cfg.Paths.Input, records); err != nil {
		c.logger.WithError(err).Error("failed to save scraped apps")
		_, _ = fmt.Fprintf(c.out, "\nError: %v\n", err)
		return nil, exitError, false
	}
	return records, exitOK, true
}

func (c *analyzeCommand) progress(current, total int) {
	c.logger.WithFields(logrus.Fields{"current": current, "total": total}).Debug("batch progress")
	_, _ = fmt.Fprintf(c.out, "Analyzed %d/%d apps\n", current, total)
}

func interrupted(ctx context.Context, out io.Writer) bool {
	if !errors.Is(ctx.Err(), context.Canceled) {
		return false
	}
	_, _ = fmt.Fprintln(out, "\nProcess interrupted by user. Exiting gracefully...")
	return true
}
