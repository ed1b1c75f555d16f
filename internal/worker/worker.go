package worker

import (
	"context"
)

// Worker - фоновый потребитель, управляемый WorkerManager.
// Start блокируется до остановки; Stop должен быть идемпотентным.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
