package handlers

import (
	"foodgram/domain"
	"foodgram/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func paramID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, domain.ErrParseUUID
	}
	return id, nil
}

// currentUserID is only valid behind AuthMiddleware.
func currentUserID(c *fiber.Ctx) uuid.UUID {
	return middleware.Viewer(c).UserID
}

func pagination(c *fiber.Ctx) domain.Pagination {
	return domain.Pagination{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
}
