package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"vidnote/client/utils"
)

// SaveNotesRequest is the payload for persisting the user's notes for a
// video. The blob replaces the stored notes in full; an empty string clears
// them.
type SaveNotesRequest struct {
	UserNotes string `json:"user_notes"`
}

// SaveNotes godoc
// @Summary Save notes for a video
// @Description Persists a full-replacement notes blob. On failure local state is unchanged and an error status is returned so the editor can keep its unsaved-changes indicator accurate.
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param notes body SaveNotesRequest true "Notes blob"
// @Success 200 {object} map[string]interface{} "Notes saved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 502 {object} map[string]interface{} "Save failed, edits remain unsaved"
// @Router /videos/{id}/notes [put]
func (h *ApplicationHandler) SaveNotes(c *fiber.Ctx) error {
	id := c.Params("id")

	payload := new(SaveNotesRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	if err := h.Store.SaveNotes(c.Context(), id, payload.UserNotes); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadGateway, "Failed to save notes, your edits are unsaved")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Notes saved successfully", fiber.Map{"id": id})
}

// GetNotes godoc
// @Summary Fetch persisted notes for a video
// @Description Read-only fetch of the notes blob and its last-edited timestamp from the video service.
// @Tags notes
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} map[string]interface{} "Notes retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Notes not available"
// @Router /videos/{id}/notes [get]
func (h *ApplicationHandler) GetNotes(c *fiber.Ctx) error {
	id := c.Params("id")

	record, ok := h.Store.GetNotes(c.Context(), id)
	if !ok {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Notes not available")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Notes retrieved successfully", record)
}
