package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"vidnote/client/models"
	"vidnote/client/utils"
)

// SaveTranscriptRequest is the payload for replacing a video's transcript
// segments. Segment ids are assigned when absent.
type SaveTranscriptRequest struct {
	Segments []models.TranscriptSegment `json:"segments"`
}

// GetTranscript godoc
// @Summary Fetch the locally cached transcript for a video
// @Description Pure lookup over the transcript collection; no network access.
// @Tags transcripts
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} map[string]interface{} "Transcript retrieved successfully"
// @Failure 404 {object} map[string]interface{} "No transcript for this video"
// @Router /videos/{id}/transcript [get]
func (h *ApplicationHandler) GetTranscript(c *fiber.Ctx) error {
	id := c.Params("id")

	transcript, ok := h.Store.GetTranscriptByVideoID(id)
	if !ok {
		return utils.RespondWithError(c, fiber.StatusNotFound, "No transcript for this video")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Transcript retrieved successfully", transcript)
}

// SaveTranscript godoc
// @Summary Save a video's transcript segments
// @Description Upserts the transcript keyed by video id. The last-edited timestamp is stamped on every write, whether or not the segments changed, and the collection is mirrored to the persistent cache.
// @Tags transcripts
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param transcript body SaveTranscriptRequest true "Transcript segments"
// @Success 200 {object} map[string]interface{} "Transcript saved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request body or segment times"
// @Router /videos/{id}/transcript [put]
func (h *ApplicationHandler) SaveTranscript(c *fiber.Ctx) error {
	id := c.Params("id")

	payload := new(SaveTranscriptRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	for i, segment := range payload.Segments {
		if segment.StartTime < 0 || segment.EndTime < segment.StartTime {
			return utils.RespondWithError(c, fiber.StatusBadRequest,
				fmt.Sprintf("Segment %d has invalid times: start %.3f, end %.3f", i, segment.StartTime, segment.EndTime))
		}
	}

	saved := h.Store.SaveTranscript(models.VideoTranscript{
		VideoID:  id,
		Segments: payload.Segments,
	})
	return utils.RespondWithJSON(c, fiber.StatusOK, "Transcript saved successfully", saved)
}
