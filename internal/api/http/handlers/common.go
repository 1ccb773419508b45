package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/emsdev/ems-service/internal/api/dto"
	"github.com/emsdev/ems-service/internal/auth"
	"github.com/emsdev/ems-service/internal/listing"
	"github.com/emsdev/ems-service/internal/service"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

// Query keys that drive the pipeline itself. Everything else is a filter.
var reservedQueryKeys = map[string]struct{}{
	"search":    {},
	"q":         {},
	"page":      {},
	"page_size": {},
	"pageSize":  {},
}

func actorFrom(c *fiber.Ctx) (service.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return service.Actor{}, apperrors.NewUnauthorized("authentication required")
	}
	return service.Actor{
		UserID:    principal.User.ID,
		CompanyID: principal.User.CompanyID,
		Role:      principal.User.Role,
	}, nil
}

// parseListQuery reads search, page, page_size and any remaining keys as filters.
// Unparseable numbers fall back to zero and are normalized downstream.
func parseListQuery(c *fiber.Ctx) listing.Query {
	q := listing.Query{Filters: map[string]string{}}
	q.Search = c.Query("search", c.Query("q"))
	q.Page, _ = strconv.Atoi(c.Query("page"))
	q.PageSize, _ = strconv.Atoi(c.Query("page_size", c.Query("pageSize")))
	for key, value := range c.Queries() {
		if _, reserved := reservedQueryKeys[key]; reserved {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			q.Filters[key] = value
		}
	}
	return q
}

// pathID reads a uuid route param. A malformed id cannot name a row, so it is NOT_FOUND.
func pathID(c *fiber.Ctx, name, resource string) (string, error) {
	id := c.Params(name)
	if err := uuid.Validate(id); err != nil {
		return "", apperrors.NewNotFound(resource, map[string]any{name: id})
	}
	return id, nil
}

// bind parses the JSON body into req and runs its validate tags.
func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Validate(req)
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}
