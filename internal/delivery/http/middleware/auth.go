package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lpg-station-service/internal/domain"
	"github.com/lpg-station-service/internal/pkg/errors"
	"github.com/lpg-station-service/internal/pkg/utils"
)

// userContextKey - ключ для пользователя в Locals
const userContextKey = "current_user"

// Authenticator валидирует токен и возвращает актуального пользователя
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth - middleware аутентификации по Bearer-токену.
// Кладёт пользователя в Locals для последующих обработчиков.
func Auth(authenticator Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		user, err := authenticator.Authenticate(c.Context(), token)
		if err != nil {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		c.Locals(userContextKey, user)
		return c.Next()
	}
}

// RequireAdmin пропускает только администраторов. Должен стоять после Auth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.SendError(c, errors.ErrUnauthorized)
		}
		if !user.IsAdmin() {
			return utils.SendError(c, errors.ErrForbidden)
		}
		return c.Next()
	}
}

// CurrentUser возвращает аутентифицированного пользователя из Locals или nil
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(userContextKey).(*domain.User)
	return user
}

func extractBearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
