package telemetry

import "github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"

// Exporter is a verdict sink that is configured from a free-form settings
// map. The registered instance is a template; WithSettings returns the live
// exporter.
type Exporter interface {
	verdict.Sink
	Name() string
	ValidateConfig(settings map[string]any) error
	WithSettings(settings map[string]any) (Exporter, error)
	Close()
}

type ExporterConfig struct {
	Name     string         `mapstructure:"name" json:"name"`
	Settings map[string]any `mapstructure:"settings" json:"settings"`
}
