package audit

import (
	"errors"

	"truckfin-backend/internal/auth"
	"truckfin-backend/internal/models"
	"truckfin-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"createdAt"`
	EntityType  string             `json:"entityType"`
	EntityID    uint               `json:"entityId"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	IsUndone    bool               `json:"isUndone"`
	UndoneAt    *string            `json:"undoneAt"`
}

func toResponse(log models.AuditLog) AuditLogResponse {
	var undoneAt *string
	if log.UndoneAt != nil {
		formatted := log.UndoneAt.Format("2006-01-02 15:04:05")
		undoneAt = &formatted
	}
	return AuditLogResponse{
		ID:          log.ID,
		CreatedAt:   log.CreatedAt.Format("2006-01-02 15:04:05"),
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      log.Action,
		Description: log.Description,
		IsUndone:    log.IsUndone,
		UndoneAt:    undoneAt,
	}
}

// GET /api/users/:userId/audit-logs?entityType=expense&entityId=1&limit=50
func ListAuditLogsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", defaultListLimit)
		if limit <= 0 || limit > maxListLimit {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be between 1 and 500")
		}
		entityID := c.QueryInt("entityId", 0)
		if entityID < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid entityId")
		}

		logs, err := svc.List(c.UserContext(), auth.UserID(c), store.AuditFilter{
			EntityType: c.Query("entityType"),
			EntityID:   uint(entityID),
			Limit:      limit,
		})
		if err != nil {
			return err
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, log := range logs {
			resp = append(resp, toResponse(log))
		}
		return c.JSON(resp)
	}
}

// POST /api/audit-logs/:id/undo
func UndoAuditLogHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logID, err := c.ParamsInt("id")
		if err != nil || logID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid log id")
		}

		undo, err := svc.Undo(c.UserContext(), auth.UserID(c), uint(logID))
		switch {
		case errors.Is(err, store.ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Audit log not found")
		case errors.Is(err, ErrAlreadyUndone), errors.Is(err, ErrNotUndoable):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			return err
		}

		return c.JSON(fiber.Map{
			"message": "Change undone",
			"undo":    toResponse(*undo),
		})
	}
}
