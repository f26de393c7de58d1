package verdict

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is a report as handed to sinks: tagged with the batch run, the
// record's input position and how the verdict was reached.
type Record struct {
	RunID     uuid.UUID    `json:"run_id"`
	Index     int          `json:"index"`
	Report    Report       `json:"report"`
	Fallback  FallbackCode `json:"fallback,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

//go:generate mockery --name=Sink --dir=. --output=./mocks --filename=sink_mock.go --case=underscore --with-expecter

// Sink receives every analysed record. Failures never alter the verdict.
type Sink interface {
	Publish(ctx context.Context, record Record) error
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter

// Repository persists records and reads back the reports of one run in input
// order.
type Repository interface {
	Sink
	ListByRun(ctx context.Context, runID uuid.UUID) ([]Record, error)
}
