package batch

import (
	"context"
	"sync"
	"time"

	"github.com/NeuralTrust/AppVerdict/pkg/app/features"
	"github.com/NeuralTrust/AppVerdict/pkg/app/judgment"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/app"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/prometheus"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 1

// ProgressFunc is called after each record with the number of records done
// so far and the batch size. Calls are serialized and current only grows.
type ProgressFunc func(current, total int)

//go:generate mockery --name=Orchestrator --dir=. --output=./mocks --filename=orchestrator_mock.go --case=underscore --with-expecter

type Orchestrator interface {
	Analyze(ctx context.Context, record app.RawAppRecord) verdict.Report
	AnalyzeMany(ctx context.Context, records []app.RawAppRecord) []verdict.Report
	AnalyzeRun(ctx context.Context, records []app.RawAppRecord) Run
}

// Run is the result of one batch: the id every published record was tagged
// with and the reports in input order.
type Run struct {
	ID      uuid.UUID        `json:"run_id"`
	Reports []verdict.Report `json:"reports"`
	Summary verdict.Summary  `json:"summary"`
}

type Option func(*orchestrator)

func WithConcurrency(n int) Option {
	return func(o *orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

func WithProgress(fn ProgressFunc) Option {
	return func(o *orchestrator) {
		o.progress = fn
	}
}

func WithSinks(sinks ...verdict.Sink) Option {
	return func(o *orchestrator) {
		for _, s := range sinks {
			if s != nil {
				o.sinks = append(o.sinks, s)
			}
		}
	}
}

type orchestrator struct {
	logger      *logrus.Logger
	extractor   features.Extractor
	judge       judgment.Client
	concurrency int
	progress    ProgressFunc
	sinks       []verdict.Sink
}

func NewOrchestrator(
	logger *logrus.Logger,
	extractor features.Extractor,
	judge judgment.Client,
	opts ...Option,
) Orchestrator {
	o := &orchestrator{
		logger:      logger,
		extractor:   extractor,
		judge:       judge,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *orchestrator) Analyze(ctx context.Context, record app.RawAppRecord) verdict.Report {
	report, fallback := o.analyzeOne(ctx, record)
	o.publish(ctx, verdict.Record{
		RunID:     uuid.New(),
		Report:    report,
		Fallback:  fallback,
		CreatedAt: time.Now().UTC(),
	})
	return report
}

// AnalyzeMany returns one report per record in input order. A failure on one
// record never affects the others.
func (o *orchestrator) AnalyzeMany(ctx context.Context, records []app.RawAppRecord) []verdict.Report {
	return o.AnalyzeRun(ctx, records).Reports
}

func (o *orchestrator) AnalyzeRun(ctx context.Context, records []app.RawAppRecord) Run {
	runID := uuid.New()
	if len(records) == 0 {
		o.logger.Warn("no apps to analyze")
		return Run{ID: runID, Reports: []verdict.Report{}}
	}

	total := len(records)
	log := o.logger.WithFields(logrus.Fields{
		"run_id":      runID.String(),
		"total":       total,
		"concurrency": o.concurrency,
	})
	log.Info("starting batch analysis")

	results := make([]verdict.Report, total)
	var (
		mu   sync.Mutex
		done int
	)

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i := range records {
		i := i
		g.Go(func() error {
			prometheus.BatchInFlight.Inc()
			defer prometheus.BatchInFlight.Dec()

			report, fallback := o.analyzeOne(ctx, records[i])
			results[i] = report
			o.publish(ctx, verdict.Record{
				RunID:     runID,
				Index:     i,
				Report:    report,
				Fallback:  fallback,
				CreatedAt: time.Now().UTC(),
			})

			mu.Lock()
			done++
			current := done
			if o.progress != nil {
				o.progress(current, total)
			}
			mu.Unlock()

			log.WithFields(logrus.Fields{
				"app_id":  report.AppID,
				"verdict": report.Type,
			}).Infof("analyzed app %d/%d", current, total)
			return nil
		})
	}
	_ = g.Wait()

	summary := verdict.Summarize(results)
	log.WithFields(logrus.Fields{
		"fraud":     summary.Fraud,
		"suspected": summary.Suspected,
		"genuine":   summary.Genuine,
	}).Info("batch analysis finished")
	return Run{ID: runID, Reports: results, Summary: summary}
}

// analyzeOne is the per-record failure boundary.
func (o *orchestrator) analyzeOne(ctx context.Context, record app.RawAppRecord) (report verdict.Report, fallback verdict.FallbackCode) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.WithFields(logrus.Fields{
				"app_id": record.ID(),
				"panic":  r,
			}).Error("analysis panicked")
			fallback = verdict.FallbackAnalysisError
			report = verdict.NewReport(verdict.FallbackVerdict(fallback), record.ID(), record.DisplayTitle())
		}
	}()

	bundle := o.extractor.Extract(ctx, record)
	outcome := o.judge.Judge(ctx, bundle)
	return verdict.NewReport(outcome.Verdict(), record.ID(), record.DisplayTitle()), outcome.FallbackCode()
}

func (o *orchestrator) publish(ctx context.Context, rec verdict.Record) {
	for _, sink := range o.sinks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					o.logger.WithField("panic", r).Error("verdict sink panicked")
				}
			}()
			if err := sink.Publish(ctx, rec); err != nil {
				o.logger.WithError(err).WithField("app_id", rec.Report.AppID).Warn("failed to publish verdict")
			}
		}()
	}
}
