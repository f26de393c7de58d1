package telemetry

import (
	"fmt"

	"github.com/NeuralTrust/AppVerdict/pkg/domain/telemetry"
	"github.com/sirupsen/logrus"
)

type ExporterLocator struct {
	exporters map[string]telemetry.Exporter
}

func NewExporterLocator(opts ...ExporterLocatorOption) *ExporterLocator {
	el := &ExporterLocator{
		exporters: make(map[string]telemetry.Exporter),
	}
	for _, opt := range opts {
		opt(el)
	}
	return el
}

func (p *ExporterLocator) GetExporter(cfg telemetry.ExporterConfig) (telemetry.Exporter, error) {
	base, ok := p.exporters[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("unknown exporter: %s", cfg.Name)
	}
	if err := base.ValidateConfig(cfg.Settings); err != nil {
		return nil, err
	}
	return base.WithSettings(cfg.Settings)
}

func (p *ExporterLocator) ValidateExporter(cfg telemetry.ExporterConfig) error {
	base, ok := p.exporters[cfg.Name]
	if !ok {
		return fmt.Errorf("unknown exporter: %s", cfg.Name)
	}
	return base.ValidateConfig(cfg.Settings)
}

// Build returns a live exporter for every config entry. Entries that fail to
// build are logged and skipped so one bad exporter cannot block a run.
func (p *ExporterLocator) Build(logger *logrus.Logger, configs []telemetry.ExporterConfig) []telemetry.Exporter {
	out := make([]telemetry.Exporter, 0, len(configs))
	for _, cfg := range configs {
		exporter, err := p.GetExporter(cfg)
		if err != nil {
			logger.WithError(err).WithField("exporter", cfg.Name).Error("failed to build exporter")
			continue
		}
		out = append(out, exporter)
	}
	return out
}
