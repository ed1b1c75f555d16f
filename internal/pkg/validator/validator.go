package validator

import (
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lpg-station-service/internal/pkg/errors"
)

var validate = validator.New()

// Validate проверяет структуру по тегам validate. Ошибки валидации
// сворачиваются в AppError с деталями по полям, чтобы обработчики
// отдавали клиенту 400, а не 500.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.ErrInvalidRequest
	}

	details := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		details[strings.ToLower(fe.Field())] = fe.Tag()
	}

	return errors.ErrInvalidRequest.WithDetails(details)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
