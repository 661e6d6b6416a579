package presenters

import (
	"errors"
	"foodgram/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes err with the status of its kind. status is only used
// for errors that carry no kind; a 5xx hides the underlying error text.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var derr *domain.Error
	if errors.As(err, &derr) {
		status = derr.Kind.HTTPStatus()
	}

	res := Response{
		Status:  false,
		Message: message,
	}

	switch {
	case derr != nil && len(derr.Fields) > 0:
		res.Error = derr.Fields
	case status >= fiber.StatusInternalServerError:
		log.Errorf("%s: %v", message, err)
		res.Error = "internal server error"
	case err != nil:
		res.Error = err.Error()
	}

	return c.Status(status).JSON(res)
}
