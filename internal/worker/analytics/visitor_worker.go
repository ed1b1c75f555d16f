package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/domain/repository"
	"github.com/lpg-station-service/internal/pkg/utils"
	"github.com/lpg-station-service/internal/worker"
)

// VisitorWorker потребляет события посещений из Redis Stream и сохраняет
// их в PostgreSQL. Разбор User-Agent выполняется здесь, а не в middleware,
// чтобы не тратить время в пути запроса.
type VisitorWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	visitorRepo  repository.VisitorRepository
	stream       string
	consumerName string
}

// NewVisitorWorker создает новый VisitorWorker
func NewVisitorWorker(
	streamRepo repository.StreamRepository,
	visitorRepo repository.VisitorRepository,
	stream string,
	consumerGroup string,
	logger *zap.Logger,
) *VisitorWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &VisitorWorker{
		BaseWorker:   worker.NewBaseWorker("visitor-analytics", consumerGroup, logger),
		streamRepo:   streamRepo,
		visitorRepo:  visitorRepo,
		stream:       stream,
		consumerName: consumerName,
	}
}

// Start запускает воркер
func (w *VisitorWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting VisitorWorker",
		zap.String("stream", w.stream),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.stream, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	messages, err := w.streamRepo.ConsumeStream(ctx, w.stream, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to start stream consumer: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage обрабатывает одно событие. Битые сообщения подтверждаются,
// чтобы не застревали в pending; сбой БД оставляет сообщение на повтор.
func (w *VisitorWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	event, err := w.parseMessage(msg)
	if err != nil {
		logger.Warn("Failed to parse visitor event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		_ = w.streamRepo.AckMessage(ctx, w.stream, w.ConsumerGroup(), msg.ID)
		return
	}

	ua := utils.ParseUserAgent(event.UserAgent)
	visitor := &domain.Visitor{
		IPAddress:      event.IPAddress,
		URL:            event.URL,
		Method:         event.Method,
		UserAgent:      event.UserAgent,
		DeviceType:     ua.DeviceType,
		Browser:        ua.Browser,
		OS:             ua.OS,
		UserID:         event.UserID,
		ResponseCode:   event.ResponseCode,
		ResponseTimeMs: event.ResponseTimeMs,
		CreatedAt:      event.OccurredAt,
	}

	if err := w.visitorRepo.Create(ctx, visitor); err != nil {
		logger.Error("Failed to store visitor record",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		// Без ACK: сообщение останется в pending и будет переобработано
		return
	}

	if err := w.streamRepo.AckMessage(ctx, w.stream, w.ConsumerGroup(), msg.ID); err != nil {
		logger.Error("Failed to ack visitor message",
			zap.String("message_id", msg.ID),
			zap.Error(err))
	}
}

// parseMessage парсит сообщение из стрима в VisitorEvent
func (w *VisitorWorker) parseMessage(msg domain.StreamMessage) (*domain.VisitorEvent, error) {
	var event domain.VisitorEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}
