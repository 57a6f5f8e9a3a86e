package handlers

import (
	"bytes"
	"errors"
	"fmt"

	"wtms/internal/models"
	"wtms/internal/report"

	"github.com/gofiber/fiber/v2"
)

type SubmitRequest struct {
	SubmissionText string `json:"submission_text" validate:"required"`
	IsEditing      bool   `json:"is_editing"`
}

// SubmitWork membuat submission pertama atau mengedit yang sudah ada.
func (h *Handler) SubmitWork(c *fiber.Ctx) error {
	id, err := workerID(c)
	if err != nil {
		return unauthorized(c, err)
	}
	workID, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid work id", errors.New("work id must be a positive integer"))
	}

	var req SubmitRequest
	if msg, err := bind(c, &req); err != nil {
		return badRequest(c, msg, err)
	}

	sub, err := h.deps.Submissions.SubmitOrEdit(c.UserContext(), workID, id, req.SubmissionText, req.IsEditing)
	if err != nil {
		return respondError(c, err, "Failed to submit work")
	}

	status, message := fiber.StatusCreated, "Work submitted successfully"
	if req.IsEditing {
		status, message = fiber.StatusOK, "Submission updated successfully"
	}
	return c.Status(status).JSON(fiber.Map{
		"message":    message,
		"success":    true,
		"status":     status,
		"submission": sub,
	})
}

func (h *Handler) ListSubmissions(c *fiber.Ctx) error {
	id, err := workerID(c)
	if err != nil {
		return unauthorized(c, err)
	}

	items, err := h.deps.Submissions.GetSubmissionsForWorker(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch submissions")
	}
	return c.JSON(fiber.Map{
		"message":     "Submissions fetched successfully",
		"success":     true,
		"status":      fiber.StatusOK,
		"submissions": items,
	})
}

type EditSubmissionRequest struct {
	UpdatedText string `json:"updated_text" validate:"required"`
}

func (h *Handler) EditSubmission(c *fiber.Ctx) error {
	id, err := workerID(c)
	if err != nil {
		return unauthorized(c, err)
	}
	submissionID, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid submission id", errors.New("submission id must be a positive integer"))
	}

	var req EditSubmissionRequest
	if msg, err := bind(c, &req); err != nil {
		return badRequest(c, msg, err)
	}

	sub, err := h.deps.Submissions.EditSubmission(c.UserContext(), id, submissionID, req.UpdatedText)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return respondError(c, err, "Submission not found")
		}
		return respondError(c, err, "Failed to update submission")
	}
	return c.JSON(fiber.Map{
		"message":    "Submission updated successfully",
		"success":    true,
		"status":     fiber.StatusOK,
		"submission": sub,
	})
}

// ExportSubmissions mengirim feed submission sebagai file xlsx.
func (h *Handler) ExportSubmissions(c *fiber.Ctx) error {
	id, err := workerID(c)
	if err != nil {
		return unauthorized(c, err)
	}

	items, err := h.deps.Submissions.GetSubmissionsForWorker(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch submissions")
	}

	var buf bytes.Buffer
	if err := report.WriteSubmissions(&buf, items, h.loc); err != nil {
		return respondError(c, err, "Failed to build export")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="submissions-%d.xlsx"`, id))
	return c.Send(buf.Bytes())
}
