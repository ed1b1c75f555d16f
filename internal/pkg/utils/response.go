package utils

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lpg-station-service/internal/pkg/errors"
)

type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total            int `json:"total,omitempty"`
	Page             int `json:"page,omitempty"`
	PerPage          int `json:"per_page,omitempty"`
	RadiusKm         int `json:"radius_km,omitempty"`
	AvailableCount   int `json:"available_count"`
	UnavailableCount int `json:"unavailable_count"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendMessage(c *fiber.Ctx, status int, message string, data interface{}, meta *Meta) error {
	return c.Status(status).JSON(SuccessResponse{
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Unknown error - return 500
	return c.Status(500).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}
