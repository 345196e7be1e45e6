package presenters

import (
	"Expiry-Reminder/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}

// StatusFor maps service errors onto HTTP status codes.
func StatusFor(err error) int {
	var ingestErr *domain.IngestionError
	switch {
	case errors.As(err, &ingestErr):
		if ingestErr.Stage == domain.StageDecode || ingestErr.Stage == domain.StageOCR {
			return fiber.StatusUnprocessableEntity
		}
		return fiber.StatusInternalServerError
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrReceiptNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedAccess):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrParseUUID),
		errors.Is(err, domain.ErrInvalidExpiryDate),
		errors.Is(err, domain.ErrInvalidItemName):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
