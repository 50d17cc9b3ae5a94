package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"vidnote/client/internal/remoteapi"
	"vidnote/client/internal/store"
	"vidnote/client/utils"
)

var validate = validator.New()

// AddVideoRequest is the payload for submitting a new video URL.
type AddVideoRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// UpdateTagsRequest is the payload for replacing a video's tag set.
type UpdateTagsRequest struct {
	Tags []string `json:"tags"`
}

// ListVideos godoc
// @Summary List videos
// @Description Returns the loaded video collection, optionally narrowed by a search query and a tag. With refresh=true the collection is reloaded from the video service first.
// @Tags videos
// @Produce json
// @Param search query string false "Case-insensitive substring over title, author, and summary"
// @Param tag query string false "Exact tag to filter by"
// @Param refresh query bool false "Reload the collection from the video service first"
// @Success 200 {object} map[string]interface{} "Videos retrieved successfully"
// @Router /videos [get]
func (h *ApplicationHandler) ListVideos(c *fiber.Ctx) error {
	if c.QueryBool("refresh") {
		if err := h.Store.FetchAll(c.Context()); err != nil {
			// Stale collection stays available; report it but keep serving.
			h.Logger.WithError(err).Warn("Collection refresh failed, serving loaded data")
		}
	}

	videos := h.Store.Search(c.Query("search"))
	if tag := strings.TrimSpace(c.Query("tag")); tag != "" {
		filtered := videos[:0]
		for _, v := range videos {
			if v.HasTag(tag) {
				filtered = append(filtered, v)
			}
		}
		videos = filtered
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, "Videos retrieved successfully", fiber.Map{
		"videos":  videos,
		"loading": h.Store.Loading(),
	})
}

// AddVideo godoc
// @Summary Submit a video URL for ingestion
// @Description Asks the video service to ingest the URL and generate metadata and a summary. Re-submitting a known URL resolves to the existing video instead of creating a duplicate.
// @Tags videos
// @Accept json
// @Produce json
// @Param video body AddVideoRequest true "Video URL to ingest"
// @Success 201 {object} map[string]interface{} "Video ingested"
// @Failure 400 {object} map[string]interface{} "Malformed or missing URL"
// @Failure 422 {object} map[string]interface{} "Video service rejected the URL"
// @Failure 502 {object} map[string]interface{} "Video service unreachable"
// @Router /videos [post]
func (h *ApplicationHandler) AddVideo(c *fiber.Ctx) error {
	payload := new(AddVideoRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Validation failed: %s", utils.FormatValidationErrors(err)))
	}

	result, err := h.Store.Add(c.Context(), payload.URL)
	if err != nil {
		var domainErr *remoteapi.DomainError
		if errors.As(err, &domainErr) {
			return utils.RespondWithError(c, fiber.StatusUnprocessableEntity, domainErr.Message)
		}
		return utils.RespondWithError(c, fiber.StatusBadGateway, "Could not reach the video service")
	}

	message := "Video ingested successfully"
	if !result.Resolved {
		message = "Video ingested but not yet visible in the collection"
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, message, result)
}

// GetVideo godoc
// @Summary Fetch one video
// @Description Returns the video with its summary, transcript, and notes. A loaded entry that already carries a summary is served without a remote call.
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} map[string]interface{} "Video retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Video not found"
// @Router /videos/{id} [get]
func (h *ApplicationHandler) GetVideo(c *fiber.Ctx) error {
	id := c.Params("id")

	video, err := h.Store.FetchByID(c.Context(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.Logger.WithField("video_id", id).WithError(err).Error("Unexpected error fetching video")
		}
		return utils.RespondWithError(c, fiber.StatusNotFound, "Video not found")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Video retrieved successfully", video)
}

// DeleteVideo godoc
// @Summary Delete a video
// @Description Removes the video from the video service and the loaded collection. The current selection is cleared if it pointed at the deleted video.
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} map[string]interface{} "Video deleted successfully"
// @Failure 502 {object} map[string]interface{} "Deletion failed"
// @Router /videos/{id} [delete]
func (h *ApplicationHandler) DeleteVideo(c *fiber.Ctx) error {
	id := c.Params("id")

	if !h.Store.Delete(c.Context(), id) {
		return utils.RespondWithError(c, fiber.StatusBadGateway, "Failed to delete video")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Video deleted successfully", fiber.Map{"id": id})
}

// UpdateVideoTags godoc
// @Summary Replace a video's tags
// @Description Full replacement of the video's tag set. Local state changes only after the video service confirms the write.
// @Tags videos
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param tags body UpdateTagsRequest true "New tag set"
// @Success 200 {object} map[string]interface{} "Tags updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 502 {object} map[string]interface{} "Update failed"
// @Router /videos/{id}/tags [post]
func (h *ApplicationHandler) UpdateVideoTags(c *fiber.Ctx) error {
	id := c.Params("id")

	payload := new(UpdateTagsRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	if !h.Store.UpdateTags(c.Context(), id, payload.Tags) {
		return utils.RespondWithError(c, fiber.StatusBadGateway, "Failed to update tags")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Tags updated successfully", fiber.Map{
		"id":   id,
		"tags": payload.Tags,
	})
}

// ListTags godoc
// @Summary List all known tags
// @Description Returns the sorted set of every tag across the loaded collection.
// @Tags videos
// @Produce json
// @Success 200 {object} map[string]interface{} "Tags retrieved successfully"
// @Router /tags [get]
func (h *ApplicationHandler) ListTags(c *fiber.Ctx) error {
	return utils.RespondWithJSON(c, fiber.StatusOK, "Tags retrieved successfully", fiber.Map{
		"tags": h.Store.Tags(),
	})
}
