package report

import (
	"fmt"
	"log/slog"
	"time"

	"truckfin-backend/internal/auth"
	"truckfin-backend/internal/state"

	"github.com/gofiber/fiber/v2"
)

// GET /api/users/:userId/export.xlsx
func ExportHandler(svc *state.Service, now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.UserID(c)
		snap, err := svc.Snapshot(c.UserContext(), userID)
		if err != nil {
			return err
		}

		at := now()
		buf, err := BuildWorkbook(snap, at)
		if err != nil {
			slog.Error("export workbook", "user_id", userID, "error", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build export")
		}

		c.Set(fiber.HeaderContentType, ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="truckfin-%s.xlsx"`, at.Format(time.DateOnly)))
		return c.Send(buf.Bytes())
	}
}
