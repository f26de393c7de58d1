package telemetry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NeuralTrust/AppVerdict/pkg/domain/telemetry"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	DefaultQueueSize = 1000
	publishTimeout   = 10 * time.Second
)

// Worker fans records out to exporters off the batch path. It is itself a
// verdict.Sink, so the orchestrator never waits on a slow broker.
type Worker interface {
	verdict.Sink
	StartWorkers(n int)
	Shutdown()
}

type worker struct {
	logger    *logrus.Logger
	exporters []telemetry.Exporter
	taskChan  chan verdict.Record
	wg        sync.WaitGroup
	closed    atomic.Bool
	mu        sync.RWMutex
}

func NewWorker(logger *logrus.Logger, exporters []telemetry.Exporter, queueSize int) Worker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &worker{
		logger:    logger,
		exporters: exporters,
		taskChan:  make(chan verdict.Record, queueSize),
	}
}

// Publish enqueues the record. A full queue drops it with a warning.
func (w *worker) Publish(_ context.Context, rec verdict.Record) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed.Load() {
		return nil
	}
	select {
	case w.taskChan <- rec:
	default:
		w.logger.WithFields(logrus.Fields{
			"run_id": rec.RunID.String(),
			"app_id": rec.Report.AppID,
		}).Warn("export queue is full, dropping record")
		prometheus.ExportsTotal.WithLabelValues("queue", "dropped").Inc()
	}
	return nil
}

func (w *worker) StartWorkers(n int) {
	if n <= 0 {
		n = 1
	}
	w.logger.WithField("workers", n).Debug("starting export workers")
	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for rec := range w.taskChan {
				w.export(rec)
			}
		}()
	}
}

// Shutdown stops accepting records, drains the queue and closes every
// exporter.
func (w *worker) Shutdown() {
	w.mu.Lock()
	if w.closed.Swap(true) {
		w.mu.Unlock()
		return
	}
	close(w.taskChan)
	w.mu.Unlock()

	w.wg.Wait()
	for _, exp := range w.exporters {
		exp.Close()
	}
	w.logger.Info("export workers stopped")
}

func (w *worker) export(rec verdict.Record) {
	var failed []string
	for _, exp := range w.exporters {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err := exp.Publish(ctx, rec)
		cancel()
		if err != nil {
			w.logger.WithFields(logrus.Fields{
				"exporter": exp.Name(),
				"run_id":   rec.RunID.String(),
				"app_id":   rec.Report.AppID,
			}).WithError(err).Error("exporter failed")
			prometheus.ExportsTotal.WithLabelValues(exp.Name(), "error").Inc()
			failed = append(failed, exp.Name())
			continue
		}
		prometheus.ExportsTotal.WithLabelValues(exp.Name(), "ok").Inc()
	}
	if len(failed) > 0 {
		w.logger.WithField("failed_exporters", failed).
			Warnf("%d exporters failed to handle record", len(failed))
	}
}
