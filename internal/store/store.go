// Package store is the client-side source of truth for video and note
// state. It mediates every read and write between the view handlers, the
// remote video service, and the durable transcript cache.
//
// Read operations absorb remote failures into absent results so the views
// stay available on stale data; Add and SaveNotes propagate their errors
// because the user must learn that those actions failed. Every absorbed
// failure is logged with the operation name and cause.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"vidnote/client/internal/remoteapi"
	"vidnote/client/models"
)

// ErrNotFound is returned by FetchByID when the video cannot be produced,
// whether because the service does not know it or because the service could
// not be reached. The underlying cause is preserved in the log.
var ErrNotFound = errors.New("video not found")

// RemoteService is the slice of the remote video service the store depends
// on. The concrete implementation lives in internal/remoteapi.
type RemoteService interface {
	ListVideos(ctx context.Context) ([]models.Video, error)
	GetVideo(ctx context.Context, id string) (models.Video, error)
	Summarize(ctx context.Context, rawURL string) (remoteapi.SummaryResult, error)
	DeleteVideo(ctx context.Context, id string) error
	UpdateTags(ctx context.Context, id string, tags []string) error
	SaveNotes(ctx context.Context, id, userNotes string) error
	GetNotes(ctx context.Context, id string) (models.NotesRecord, error)
}

// TranscriptPersister mirrors the transcript collection to durable local
// storage. internal/transcache implements it.
type TranscriptPersister interface {
	Load() []models.VideoTranscript
	Save(transcripts []models.VideoTranscript) error
	Close() error
}

// AddResult reports the outcome of an ingest request. Resolved is false when
// the service accepted the URL but the refreshed collection does not yet
// contain the new entry; VideoID then carries the identifier the service
// returned so the caller can retry resolution later.
type AddResult struct {
	VideoID  string       `json:"video_id"`
	Resolved bool         `json:"resolved"`
	Video    models.Video `json:"video,omitempty"`
}

// Store holds the in-memory video collection, the current selection, and
// the transcript collection. A single instance is constructed at startup
// and closed at shutdown; there is no ambient singleton.
type Store struct {
	mu          sync.RWMutex
	videos      []models.Video
	current     *models.Video
	loading     int
	transcripts *gocache.Cache
	remote      RemoteService
	cache       TranscriptPersister
	log         *logrus.Logger
}

// New builds a store backed by the given remote service and transcript
// persister, seeding the transcript collection from the persisted copy.
func New(remote RemoteService, cache TranscriptPersister, log *logrus.Logger) *Store {
	transcripts := gocache.New(gocache.NoExpiration, 0)
	for _, t := range cache.Load() {
		transcripts.Set(t.VideoID, t, gocache.NoExpiration)
	}

	return &Store{
		transcripts: transcripts,
		remote:      remote,
		cache:       cache,
		log:         log,
	}
}

// Close flushes the transcript collection to the persistent cache and
// releases it.
func (s *Store) Close() error {
	if err := s.cache.Save(s.Transcripts()); err != nil {
		s.log.WithField("operation", "store.close").WithError(err).Warn("Could not flush transcript cache")
	}
	return s.cache.Close()
}

// FetchAll reloads the full collection from the remote service, replacing
// the in-memory copy wholesale. On failure the existing collection is left
// untouched so the views keep rendering stale-but-available data.
func (s *Store) FetchAll(ctx context.Context) error {
	s.beginLoading()
	defer s.endLoading()

	videos, err := s.remote.ListVideos(ctx)
	if err != nil {
		s.log.WithField("operation", "store.fetch_all").WithError(err).Error("Failed to fetch video collection")
		return fmt.Errorf("fetch videos: %w", err)
	}

	s.mu.Lock()
	s.videos = videos
	s.mu.Unlock()
	return nil
}

// FetchByID returns the video with the given id. An in-memory entry that
// already carries a summary is returned without a network call; otherwise
// the video is fetched remotely and upserted into the collection. Any
// failure, absence and transport alike, surfaces as ErrNotFound with the
// cause wrapped in.
func (s *Store) FetchByID(ctx context.Context, id string) (models.Video, error) {
	s.mu.RLock()
	for _, v := range s.videos {
		if v.ID == id && v.Summary != "" {
			s.mu.RUnlock()
			return v, nil
		}
	}
	s.mu.RUnlock()

	video, err := s.remote.GetVideo(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"operation": "store.fetch_by_id",
			"video_id":  id,
		}).WithError(err).Error("Failed to fetch video")
		if errors.Is(err, remoteapi.ErrNotFound) {
			return models.Video{}, ErrNotFound
		}
		return models.Video{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	s.mu.Lock()
	s.upsertLocked(video)
	s.mu.Unlock()
	return video, nil
}

// Add submits a URL for ingestion. If a video with the same URL is already
// loaded, that entry is selected and returned without a network call, so
// re-adding a URL never creates a duplicate. Otherwise the service ingests
// the URL, the collection is refreshed, and the new entry is resolved by
// service id first and platform video id second. A rejection from the
// service comes back as a *remoteapi.DomainError.
func (s *Store) Add(ctx context.Context, rawURL string) (AddResult, error) {
	rawURL = strings.TrimSpace(rawURL)

	s.mu.Lock()
	for _, v := range s.videos {
		if v.URL == rawURL {
			copied := v
			s.current = &copied
			s.mu.Unlock()
			return AddResult{VideoID: v.ID, Resolved: true, Video: v}, nil
		}
	}
	s.mu.Unlock()

	s.beginLoading()
	defer s.endLoading()

	result, err := s.remote.Summarize(ctx, rawURL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"operation": "store.add",
			"url":       rawURL,
		}).WithError(err).Error("Failed to ingest video")
		return AddResult{}, err
	}

	// The refresh is awaited before resolving the new entry. If it fails the
	// stale collection may still contain the video from an earlier run.
	if err := s.FetchAll(ctx); err != nil {
		s.log.WithFields(logrus.Fields{
			"operation": "store.add",
			"video_id":  result.VideoID,
		}).WithError(err).Warn("Collection refresh after ingest failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.videos {
		if v.ID == result.VideoID {
			copied := v
			s.current = &copied
			return AddResult{VideoID: v.ID, Resolved: true, Video: v}, nil
		}
	}
	for _, v := range s.videos {
		if v.VideoID != "" && v.VideoID == result.VideoID {
			copied := v
			s.current = &copied
			return AddResult{VideoID: v.ID, Resolved: true, Video: v}, nil
		}
	}

	// Ingested but not yet visible in the refreshed collection.
	return AddResult{VideoID: result.VideoID, Resolved: false}, nil
}

// SaveNotes persists a full-replacement notes blob. In-memory state,
// including the current selection, is updated only after the service
// confirms the write; on failure nothing changes locally and the error
// propagates so the editor can keep its unsaved-changes flag accurate.
func (s *Store) SaveNotes(ctx context.Context, videoID, userNotes string) error {
	if err := s.remote.SaveNotes(ctx, videoID, userNotes); err != nil {
		s.log.WithFields(logrus.Fields{
			"operation": "store.save_notes",
			"video_id":  videoID,
		}).WithError(err).Error("Failed to save notes")
		return fmt.Errorf("save notes for %s: %w", videoID, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.videos {
		if s.videos[i].ID == videoID {
			s.videos[i].UserNotes = userNotes
			s.videos[i].LastEdited = now
		}
	}
	if s.current != nil && s.current.ID == videoID {
		s.current.UserNotes = userNotes
		s.current.LastEdited = now
	}
	return nil
}

// GetNotes fetches the persisted notes for a video. Absence and failure
// both yield ok == false; the cause is logged.
func (s *Store) GetNotes(ctx context.Context, videoID string) (models.NotesRecord, bool) {
	record, err := s.remote.GetNotes(ctx, videoID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"operation": "store.get_notes",
			"video_id":  videoID,
		}).WithError(err).Error("Failed to fetch notes")
		return models.NotesRecord{}, false
	}
	return record, true
}

// Delete removes a video via the remote service. On success the entry
// leaves the collection and a matching selection is cleared; on failure the
// collection is untouched and false is returned.
func (s *Store) Delete(ctx context.Context, id string) bool {
	if err := s.remote.DeleteVideo(ctx, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"operation": "store.delete",
			"video_id":  id,
		}).WithError(err).Error("Failed to delete video")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.videos[:0]
	for _, v := range s.videos {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	s.videos = kept
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	return true
}

// UpdateTags replaces a video's tag set, updating local state only after
// the service confirms the write.
func (s *Store) UpdateTags(ctx context.Context, id string, tags []string) bool {
	if tags == nil {
		tags = []string{}
	}
	if err := s.remote.UpdateTags(ctx, id, tags); err != nil {
		s.log.WithFields(logrus.Fields{
			"operation": "store.update_tags",
			"video_id":  id,
		}).WithError(err).Error("Failed to update tags")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.videos {
		if s.videos[i].ID == id {
			s.videos[i].Tags = tags
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current.Tags = tags
	}
	return true
}

// Search filters the loaded collection by a case-insensitive substring
// match over title, author, and summary. A blank query returns the full
// collection.
func (s *Store) Search(query string) []models.Video {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Videos()
	}
	needle := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]models.Video, 0, len(s.videos))
	for _, v := range s.videos {
		if strings.Contains(strings.ToLower(v.Title), needle) ||
			strings.Contains(strings.ToLower(v.Author), needle) ||
			strings.Contains(strings.ToLower(v.Summary), needle) {
			matched = append(matched, v)
		}
	}
	return matched
}

// FilterByTag returns the videos whose tag set contains tag exactly. A
// blank tag returns the full collection.
func (s *Store) FilterByTag(tag string) []models.Video {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return s.Videos()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]models.Video, 0, len(s.videos))
	for _, v := range s.videos {
		if v.HasTag(tag) {
			matched = append(matched, v)
		}
	}
	return matched
}

// Videos returns a snapshot of the loaded collection.
func (s *Store) Videos() []models.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]models.Video, len(s.videos))
	copy(snapshot, s.videos)
	return snapshot
}

// GetByID is a pure lookup over the loaded collection.
func (s *Store) GetByID(id string) (models.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.videos {
		if v.ID == id {
			return v, true
		}
	}
	return models.Video{}, false
}

// Tags returns the sorted set of every tag in the loaded collection.
func (s *Store) Tags() []string {
	s.mu.RLock()
	seen := make(map[string]struct{})
	for _, v := range s.videos {
		for _, t := range v.Tags {
			seen[t] = struct{}{}
		}
	}
	s.mu.RUnlock()

	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Current returns the current selection, if any.
func (s *Store) Current() (models.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Video{}, false
	}
	return *s.current, true
}

// SetCurrentByID selects the loaded video with the given id.
func (s *Store) SetCurrentByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.videos {
		if v.ID == id {
			copied := v
			s.current = &copied
			return true
		}
	}
	return false
}

// ClearCurrent drops the current selection.
func (s *Store) ClearCurrent() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Loading reports whether a collection load or ingest is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

func (s *Store) beginLoading() {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()
}

func (s *Store) endLoading() {
	s.mu.Lock()
	s.loading--
	s.mu.Unlock()
}

func (s *Store) upsertLocked(video models.Video) {
	for i := range s.videos {
		if s.videos[i].ID == video.ID {
			s.videos[i] = video
			return
		}
	}
	s.videos = append(s.videos, video)
}

// SaveTranscript upserts a transcript into the collection keyed by its
// video id, stamping LastEdited with the current time whether or not the
// content changed, and mirrors the collection to the persistent cache.
// Segments without an id are assigned one. A persist failure is logged, not
// returned; the in-memory collection is already updated.
func (s *Store) SaveTranscript(transcript models.VideoTranscript) models.VideoTranscript {
	for i := range transcript.Segments {
		if transcript.Segments[i].ID == "" {
			transcript.Segments[i].ID = uuid.NewString()
		}
	}
	transcript.LastEdited = time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	s.transcripts.Set(transcript.VideoID, transcript, gocache.NoExpiration)
	snapshot := s.transcriptsLocked()
	s.mu.Unlock()

	if err := s.cache.Save(snapshot); err != nil {
		s.log.WithFields(logrus.Fields{
			"operation": "store.save_transcript",
			"video_id":  transcript.VideoID,
		}).WithError(err).Warn("Could not persist transcript cache")
	}
	return transcript
}

// GetTranscriptByVideoID is a pure lookup over the transcript collection.
func (s *Store) GetTranscriptByVideoID(videoID string) (models.VideoTranscript, bool) {
	value, found := s.transcripts.Get(videoID)
	if !found {
		return models.VideoTranscript{}, false
	}
	return value.(models.VideoTranscript), true
}

// Transcripts returns a snapshot of the transcript collection.
func (s *Store) Transcripts() []models.VideoTranscript {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transcriptsLocked()
}

func (s *Store) transcriptsLocked() []models.VideoTranscript {
	items := s.transcripts.Items()
	snapshot := make([]models.VideoTranscript, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, item.Object.(models.VideoTranscript))
	}
	return snapshot
}
