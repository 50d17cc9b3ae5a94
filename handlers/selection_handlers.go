package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"vidnote/client/utils"
)

// SetSelectionRequest is the payload for focusing the views on one video.
type SetSelectionRequest struct {
	VideoID string `json:"video_id" validate:"required"`
}

// GetSelection godoc
// @Summary Fetch the current selection
// @Description Returns the video the views are currently focused on, if any.
// @Tags selection
// @Produce json
// @Success 200 {object} map[string]interface{} "Current selection"
// @Failure 404 {object} map[string]interface{} "No video selected"
// @Router /selection [get]
func (h *ApplicationHandler) GetSelection(c *fiber.Ctx) error {
	video, ok := h.Store.Current()
	if !ok {
		return utils.RespondWithError(c, fiber.StatusNotFound, "No video selected")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Current selection", video)
}

// SetSelection godoc
// @Summary Set the current selection
// @Description Focuses the views on the loaded video with the given id.
// @Tags selection
// @Accept json
// @Produce json
// @Param selection body SetSelectionRequest true "Video to select"
// @Success 200 {object} map[string]interface{} "Selection updated"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 404 {object} map[string]interface{} "Video not loaded"
// @Router /selection [put]
func (h *ApplicationHandler) SetSelection(c *fiber.Ctx) error {
	payload := new(SetSelectionRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Validation failed: %s", utils.FormatValidationErrors(err)))
	}

	if !h.Store.SetCurrentByID(payload.VideoID) {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Video not loaded")
	}
	video, _ := h.Store.Current()
	return utils.RespondWithJSON(c, fiber.StatusOK, "Selection updated", video)
}

// ClearSelection godoc
// @Summary Clear the current selection
// @Tags selection
// @Produce json
// @Success 200 {object} map[string]interface{} "Selection cleared"
// @Router /selection [delete]
func (h *ApplicationHandler) ClearSelection(c *fiber.Ctx) error {
	h.Store.ClearCurrent()
	return utils.RespondWithJSON(c, fiber.StatusOK, "Selection cleared", nil)
}
