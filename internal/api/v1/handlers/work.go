package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// ListWorks mengembalikan work milik worker setelah status overdue diperbarui.
func (h *Handler) ListWorks(c *fiber.Ctx) error {
	id, err := workerID(c)
	if err != nil {
		return unauthorized(c, err)
	}

	items, err := h.deps.Engine.ListForWorker(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Error fetching works")
	}

	message := "Works fetched successfully"
	if len(items) == 0 {
		message = "No tasks assigned yet"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"success": true,
		"status":  fiber.StatusOK,
		"works":   items,
	})
}
