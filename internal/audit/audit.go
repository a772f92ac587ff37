package audit

import (
	"context"
	"log"

	"github.com/nickmwangemi/Flight-Management-API/internal/kafka"
)

// Recorder writes fleet change events to the operations log. It is the
// sink behind the audit worker.
type Recorder struct {
	logger *log.Logger
}

func NewRecorder(logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{logger: logger}
}

func (r *Recorder) Record(ctx context.Context, event kafka.FleetEvent) error {
	r.logger.Printf("audit: %s %d %s at %s", event.Entity, event.EntityID, event.Type, event.OccurredAt.Format("2006-01-02T15:04:05Z07:00"))
	return nil
}
