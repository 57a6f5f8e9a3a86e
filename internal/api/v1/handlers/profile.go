package handlers

import (
	"wtms/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	id, err := workerID(c)
	if err != nil {
		return unauthorized(c, err)
	}

	worker, err := h.deps.Identity.GetProfile(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Error fetching profile")
	}
	return c.JSON(fiber.Map{
		"message": "Profile fetched successfully",
		"success": true,
		"status":  fiber.StatusOK,
		"worker":  worker,
	})
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	id, err := workerID(c)
	if err != nil {
		return unauthorized(c, err)
	}

	var req service.ProfileInput
	if msg, err := bind(c, &req); err != nil {
		return badRequest(c, msg, err)
	}

	worker, err := h.deps.Identity.UpdateProfile(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err, "Error updating profile")
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"success": true,
		"status":  fiber.StatusOK,
		"worker":  worker,
	})
}
