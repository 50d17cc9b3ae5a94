// Package remoteapi is the HTTP client for the remote video service. It owns
// the wire representation of videos and notes and converts it into the
// client-side model, applying defaults for fields the service may omit.
package remoteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"vidnote/client/models"
)

// ErrNotFound is returned when the service reports that the requested
// resource does not exist.
var ErrNotFound = errors.New("record not found")

// DomainError is a rejection from the service itself: it was reachable but
// declined the request (malformed URL, unavailable video, and so on). The
// message is the service's own error text when it provided one.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// SummaryResult is the service's response to an ingest request.
type SummaryResult struct {
	VideoID string `json:"video_id"`
	Notes   string `json:"notes,omitempty"`
}

// Client talks to the remote video service. It performs at most one attempt
// per call; retrying is a caller concern.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *logrus.Logger
}

// New returns a client rooted at baseURL. Every request is bounded by
// timeout in addition to whatever deadline the caller's context carries.
func New(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// HTTPClient exposes the underlying http.Client so tests can swap its
// transport.
func (c *Client) HTTPClient() *http.Client {
	return c.httpc
}

// videoPayload is the service's wire shape for a video.
type videoPayload struct {
	ID         string   `json:"id"`
	VideoID    string   `json:"video_id"`
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Uploader   string   `json:"uploader"`
	Thumbnail  string   `json:"thumbnail"`
	Tags       []string `json:"tags"`
	CreatedAt  string   `json:"created_at"`
	Duration   int      `json:"duration"`
	Summary    string   `json:"summary"`
	Transcript string   `json:"transcript"`
	UserNotes  string   `json:"user_notes"`
	LastEdited string   `json:"last_edited"`
}

// toVideo maps the wire shape onto the client model, defaulting the fields
// the service is allowed to omit.
func (p videoPayload) toVideo() models.Video {
	title := p.Title
	if title == "" {
		title = "Unknown Title"
	}
	uploader := p.Uploader
	if uploader == "" {
		uploader = "Unknown"
	}
	thumbnail := p.Thumbnail
	if thumbnail == "" {
		thumbnail = fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", p.VideoID)
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return models.Video{
		ID:           p.ID,
		VideoID:      p.VideoID,
		URL:          p.URL,
		Title:        title,
		Author:       uploader,
		ThumbnailURL: thumbnail,
		Tags:         tags,
		DateAdded:    p.CreatedAt,
		Duration:     p.Duration,
		Uploader:     uploader,
		Summary:      p.Summary,
		Transcript:   p.Transcript,
		UserNotes:    p.UserNotes,
		LastEdited:   p.LastEdited,
	}
}

// ListVideos fetches the full video collection.
func (c *Client) ListVideos(ctx context.Context) ([]models.Video, error) {
	var payload struct {
		Videos []videoPayload `json:"videos"`
	}
	if err := c.getJSON(ctx, "/videos", &payload); err != nil {
		return nil, err
	}

	videos := make([]models.Video, 0, len(payload.Videos))
	for _, p := range payload.Videos {
		videos = append(videos, p.toVideo())
	}
	return videos, nil
}

// GetVideo fetches a single video with its derived content (summary,
// transcript, notes).
func (c *Client) GetVideo(ctx context.Context, id string) (models.Video, error) {
	var payload videoPayload
	if err := c.getJSON(ctx, "/video/"+url.PathEscape(id), &payload); err != nil {
		return models.Video{}, err
	}
	return payload.toVideo(), nil
}

// Summarize asks the service to ingest the video at rawURL and generate its
// summary. A rejection (bad URL, unavailable video) comes back as a
// *DomainError carrying the service's message.
func (c *Client) Summarize(ctx context.Context, rawURL string) (SummaryResult, error) {
	c.log.WithField("url", rawURL).Debug("Requesting ingest from video service")
	endpoint := c.baseURL + "/summary?url=" + url.QueryEscape(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return SummaryResult{}, fmt.Errorf("build summary request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return SummaryResult{}, fmt.Errorf("summarize %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return SummaryResult{}, fmt.Errorf("read summary response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		message := "failed to process video"
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			message = errBody.Error
		}
		return SummaryResult{}, &DomainError{Message: message}
	}

	var result SummaryResult
	if err := json.Unmarshal(body, &result); err != nil {
		return SummaryResult{}, fmt.Errorf("decode summary response: %w", err)
	}
	return result, nil
}

// DeleteVideo removes a video from the service.
func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/video/"+url.PathEscape(id), nil)
}

// UpdateTags replaces a video's tag set.
func (c *Client) UpdateTags(ctx context.Context, id string, tags []string) error {
	body := struct {
		Tags []string `json:"tags"`
	}{Tags: tags}
	return c.send(ctx, http.MethodPost, "/video/"+url.PathEscape(id)+"/tags", body)
}

// SaveNotes persists a full-replacement notes blob for a video.
func (c *Client) SaveNotes(ctx context.Context, id, userNotes string) error {
	body := struct {
		UserNotes string `json:"user_notes"`
	}{UserNotes: userNotes}
	return c.send(ctx, http.MethodPut, "/video/"+url.PathEscape(id)+"/notes", body)
}

// GetNotes fetches the persisted notes blob for a video.
func (c *Client) GetNotes(ctx context.Context, id string) (models.NotesRecord, error) {
	var record models.NotesRecord
	if err := c.getJSON(ctx, "/video/"+url.PathEscape(id)+"/notes", &record); err != nil {
		return models.NotesRecord{}, err
	}
	return record, nil
}

// getJSON issues a GET and decodes a 2xx JSON body into out. A 404 maps to
// ErrNotFound.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response for %s: %w", path, err)
	}
	return nil
}

// send issues a request with an optional JSON body and discards the response
// body, succeeding on any 2xx status.
func (c *Client) send(ctx context.Context, method, path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request for %s: %w", path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	return nil
}
