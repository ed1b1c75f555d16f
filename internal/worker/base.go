package worker

import (
	"sync"

	"go.uber.org/zap"
)

// BaseWorker - общее состояние фоновых потребителей: канал остановки,
// consumer group и защита от повторного Stop
type BaseWorker struct {
	name          string
	consumerGroup string
	logger        *zap.Logger

	mu       sync.Mutex
	stopped  bool
	stopChan chan struct{}
}

// NewBaseWorker создаёт базовое состояние воркера
func NewBaseWorker(name, consumerGroup string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:          name,
		consumerGroup: consumerGroup,
		logger:        logger.With(zap.String("worker", name)),
		stopChan:      make(chan struct{}),
	}
}

// Name возвращает имя воркера
func (w *BaseWorker) Name() string {
	return w.name
}

// ConsumerGroup возвращает имя consumer group в Redis Stream
func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

// Logger возвращает логгер с проставленным именем воркера
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

// StopChan возвращает канал, закрываемый при остановке
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// Stop сигнализирует воркеру остановиться. Повторные вызовы безопасны.
func (w *BaseWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.logger.Info("Stopping worker")
	close(w.stopChan)
	w.stopped = true

	return nil
}

// IsStopped сообщает, был ли воркер остановлен
func (w *BaseWorker) IsStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}
