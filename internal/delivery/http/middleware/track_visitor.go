package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/domain/repository"
)

const publishTimeout = 2 * time.Second

// TrackVisitor - middleware учёта посещений. Публикует событие в Redis Stream
// после ответа, в отдельной горутине: сбой публикации никогда не влияет
// на основной запрос.
func TrackVisitor(streamRepo repository.StreamRepository, stream string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		event := domain.VisitorEvent{
			IPAddress:      c.IP(),
			URL:            c.OriginalURL(),
			Method:         c.Method(),
			UserAgent:      c.Get(fiber.HeaderUserAgent),
			ResponseCode:   c.Response().StatusCode(),
			ResponseTimeMs: int(time.Since(start).Milliseconds()),
			OccurredAt:     time.Now(),
		}
		if user := CurrentUser(c); user != nil {
			userID := user.ID
			event.UserID = &userID
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()

			if err := streamRepo.PublishToStream(ctx, stream, event); err != nil {
				logger.Warn("Failed to publish visitor event",
					zap.String("url", event.URL),
					zap.Error(err))
			}
		}()

		return err
	}
}
