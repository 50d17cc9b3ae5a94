package store

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidnote/client/internal/remoteapi"
	"vidnote/client/models"
)

const testBaseURL = "https://vidnote.test"

// memPersister keeps the mirrored transcript collection in memory so tests
// can observe every flush without touching the filesystem.
type memPersister struct {
	mu     sync.Mutex
	seed   []models.VideoTranscript
	saves  int
	latest []models.VideoTranscript
}

func (m *memPersister) Load() []models.VideoTranscript { return m.seed }

func (m *memPersister) Save(transcripts []models.VideoTranscript) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.latest = transcripts
	return nil
}

func (m *memPersister) Close() error { return nil }

func newTestStore(t *testing.T) (*Store, *memPersister) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	remote := remoteapi.New(testBaseURL, 5*time.Second, log)
	httpmock.ActivateNonDefault(remote.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)

	persister := &memPersister{}
	s := New(remote, persister, log)
	return s, persister
}

func registerVideoList(t *testing.T, body string) {
	t.Helper()
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/videos",
		httpmock.NewStringResponder(http.StatusOK, body))
}

const twoVideoList = `{
	"videos": [
		{"id": "v1", "video_id": "abc123", "url": "https://youtu.be/abc123",
		 "title": "Go Concurrency Patterns", "uploader": "gopher", "tags": ["go", "edu"]},
		{"id": "v2", "video_id": "def456", "url": "https://youtu.be/def456",
		 "title": "Baking Bread", "uploader": "baker", "tags": ["cooking"]}
	]
}`

func TestFetchAll_ReplacesCollection(t *testing.T) {
	s, _ := newTestStore(t)
	registerVideoList(t, twoVideoList)

	require.NoError(t, s.FetchAll(context.Background()))
	assert.Len(t, s.Videos(), 2)

	httpmock.Reset()
	registerVideoList(t, `{"videos": [{"id": "v3", "video_id": "x", "url": "https://youtu.be/x"}]}`)

	require.NoError(t, s.FetchAll(context.Background()))
	videos := s.Videos()
	require.Len(t, videos, 1)
	assert.Equal(t, "v3", videos[0].ID)
}

func TestFetchAll_FailureKeepsStaleCollection(t *testing.T) {
	s, _ := newTestStore(t)
	registerVideoList(t, twoVideoList)
	require.NoError(t, s.FetchAll(context.Background()))

	httpmock.Reset()
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/videos",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	err := s.FetchAll(context.Background())
	require.Error(t, err)
	assert.Len(t, s.Videos(), 2, "stale collection must stay available")
}

func TestFetchByID_CacheHitShortCircuit(t *testing.T) {
	s, _ := newTestStore(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/video/v1",
		httpmock.NewStringResponder(http.StatusOK, `{
			"id": "v1", "video_id": "abc123", "url": "https://youtu.be/abc123",
			"title": "Go Concurrency Patterns", "summary": "channels and pipelines"
		}`))

	first, err := s.FetchByID(context.Background(), "v1")
	require.NoError(t, err)
	require.Equal(t, "channels and pipelines", first.Summary)
	require.Equal(t, 1, httpmock.GetTotalCallCount())

	// The entry now carries a summary, so a second fetch must not touch the
	// network. Any request would hit the 500 responder and fail the call.
	httpmock.Reset()
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/video/v1",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	second, err := s.FetchByID(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestFetchByID_UpsertsIntoCollection(t *testing.T) {
	s, _ := newTestStore(t)
	registerVideoList(t, twoVideoList)
	require.NoError(t, s.FetchAll(context.Background()))

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/video/v1",
		httpmock.NewStringResponder(http.StatusOK, `{
			"id": "v1", "video_id": "abc123", "url": "https://youtu.be/abc123",
			"title": "Go Concurrency Patterns", "summary": "channels and pipelines"
		}`))

	_, err := s.FetchByID(context.Background(), "v1")
	require.NoError(t, err)

	assert.Len(t, s.Videos(), 2, "upsert must replace, not append")
	upserted, ok := s.GetByID("v1")
	require.True(t, ok)
	assert.Equal(t, "channels and pipelines", upserted.Summary)
}

func TestFetchByID_NotFound(t *testing.T) {
	s, _ := newTestStore(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/video/missing",
		httpmock.NewStringResponder(http.StatusNotFound, ""))

	_, err := s.FetchByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchByID_TransportFailureAlsoNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/video/v1",
		httpmock.NewErrorResponder(errors.New("connection refused")))

	_, err := s.FetchByID(context.Background(), "v1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused", "cause stays observable")
}

func TestAdd_ResolvesAfterAwaitedRefresh(t *testing.T) {
	s, _ := newTestStore(t)

	httpmock.RegisterResponder(http.MethodGet, `=~^https://vidnote\.test/summary`,
		httpmock.NewStringResponder(http.StatusOK, `{"video_id": "v1"}`))
	registerVideoList(t, twoVideoList)

	result, err := s.Add(context.Background(), "https://youtu.be/abc123")
	require.NoError(t, err)
	assert.True(t, result.Resolved)
	assert.Equal(t, "v1", result.VideoID)
	assert.Equal(t, "Go Concurrency Patterns", result.Video.Title)

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "v1", current.ID)
}

func TestAdd_ResolvesByPlatformID(t *testing.T) {
	s, _ := newTestStore(t)

	// The service answers the ingest with the platform id, not its own.
	httpmock.RegisterResponder(http.MethodGet, `=~^https://vidnote\.test/summary`,
		httpmock.NewStringResponder(http.StatusOK, `{"video_id": "abc123"}`))
	registerVideoList(t, twoVideoList)

	result, err := s.Add(context.Background(), "https://youtu.be/abc123")
	require.NoError(t, err)
	assert.True(t, result.Resolved)
	assert.Equal(t, "v1", result.VideoID, "resolution falls back to the platform id and reports the store id")
}

func TestAdd_IdempotentForKnownURL(t *testing.T) {
	s, _ := newTestStore(t)
	registerVideoList(t, twoVideoList)
	require.NoError(t, s.FetchAll(context.Background()))

	before := httpmock.GetTotalCallCount()
	result, err := s.Add(context.Background(), "https://youtu.be/abc123")
	require.NoError(t, err)

	assert.True(t, result.Resolved)
	assert.Equal(t, "v1", result.VideoID)
	assert.Len(t, s.Videos(), 2, "re-adding a known URL never creates a duplicate")
	assert.Equal(t, before, httpmock.GetTotalCallCount(), "no network call for a known URL")

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "v1", current.ID)
}

func TestAdd_DomainRejection(t *testing.T) {
	s, _ := newTestStore(t)

	httpmock.RegisterResponder(http.MethodGet, `=~^https://vidnote\.test/summary`,
		httpmock.NewStringResponder(http.StatusBadRequest, `{"error": "invalid YouTube URL"}`))

	_, err := s.Add(context.Background(), "https://example.com/not-a-video")
	require.Error(t, err)

	var domainErr *remoteapi.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "invalid YouTube URL", domainErr.Message)
	assert.Empty(t, s.Videos())
}

func TestAdd_IngestedButNotYetVisible(t *testing.T) {
	s, _ := newTestStore(t)

	httpmock.RegisterResponder(http.MethodGet, `=~^https://vidnote\.test/summary`,
		httpmock.NewStringResponder(http.StatusOK, `{"video_id": "v9"}`))
	registerVideoList(t, `{"videos": []}`)

	result, err := s.Add(context.Background(), "https://youtu.be/zzz999")
	require.NoError(t, err)
	assert.False(t, result.Resolved)
	assert.Equal(t, "v9", result.VideoID)

	_, ok := s.Current()
	assert.False(t, ok, "an unresolved ingest must not select anything")
}

func TestSaveNotes_UpdatesCollectionAndSelection(t *testing.T) {
	s, _ := newTestStore(t)
	registerVideoList(t, twoVideoList)
	require.NoError(t, s.FetchAll(context.Background()))
	require.True(t, s.SetCurrentByID("v1"))

	httpmock.RegisterResponder(http.MethodPut, testBaseURL+"/video/v1/notes",
		httpmock.NewStringResponder(http.StatusOK, "{}"))

	require.NoError(t, s.SaveNotes(context.Background(), "v1", "great pipeline example at 12:30"))

	video, ok := s.GetByID("v1")
	require.True(t, ok)
	assert.Equal(t, "great pipeline example at 12:30", video.UserNotes)
	assert.NotEmpty(t, video.LastEdited)

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "great pipeline example at 12:30", current.UserNotes)
}

func TestSaveNotes_FailureLeavesStateUntouched(t *testing.T) {
	s, _ := newTestStore(t)
	registerVideoList(t, twoVideoList)
	require.NoError(t, s.FetchAll(context.Background()))

	before, ok := s.GetByID("v1")
	require.True(t, ok)

	httpmock.RegisterResponder(http.MethodPut, testBaseURL+"/video/v1/notes",
		httpmock.NewErrorResponder(errors.New("connection reset")))

	err := s.SaveNotes(context.Background(), "v1", "these edits must not stick")
	require.Error(t, err, "the caller needs to keep its unsaved-changes flag accurate")

	after, ok := s.GetByID("v1")
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestGetNotes_AbsentOnFailure(t *testing.T) {
	s, _ := newTestStore(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/video/v1/notes",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	_, ok := s.GetNotes(context.Background(), "v1")
	assert.False(t, ok)
}

func TestDelete_RemovesEntryAndClearsSelection(t *testing.T) {
	s, _ := newTestStore(t)
	registerVideoList(t, twoVideoList)
	require.NoError(t, s.FetchAll(context.Background()))
	require.True(t, s.SetCurrentByID("v1"))

	httpmock.RegisterResponder(http.MethodDelete, testBaseURL+"/video/v1",
		httpmock.NewStringResponder(http.StatusOK, ""))

	require.True(t, s.Delete(context.Background(), "v1"))

	_, ok := s.GetByID("v1")
	assert.False(t, ok)
	assert.Len(t, s.Videos(), 1)

	_, ok = s.Current()
	assert.False(t, ok, "deleting the selected video clears the selection")
}

func TestDelete_FailureKeepsCollection(t *testing.T) {
	s, _ := newTestStore(t)
	registerVideoList(t, twoVideoList)
	require.NoError(t, s.FetchAll(context.Background()))

	httpmock.RegisterResponder(http.MethodDelete, testBaseURL+"/video/v1",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	assert.False(t, s.Delete(context.Background(), "v1"))
	assert.Len(t, s.Videos(), 2)
}

func TestUpdateTags_ConfirmedBeforeApply(t *testing.T) {
	s, _ := newTestStore(t)
	registerVideoList(t, twoVideoList)
	require.NoError(t, s.FetchAll(context.Background()))

	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/video/v1/tags",
		httpmock.NewStringResponder(http.StatusOK, "{}"))

	require.True(t, s.UpdateTags(context.Background(), "v1", []string{"concurrency"}))
	video, _ := s.GetByID("v1")
	assert.Equal(t, []string{"concurrency"}, video.Tags)

	httpmock.Reset()
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/video/v1/tags",
		httpmock.NewStringResponder(http.StatusBadGateway, ""))

	assert.False(t, s.UpdateTags(context.Background(), "v1", []string{"dropped"}))
	video, _ = s.GetByID("v1")
	assert.Equal(t, []string{"concurrency"}, video.Tags)
}

func TestSearch(t *testing.T) {
	s, _ := newTestStore(t)
	registerVideoList(t, twoVideoList)
	require.NoError(t, s.FetchAll(context.Background()))

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"blank_returns_all", "", []string{"v1", "v2"}},
		{"whitespace_returns_all", "   ", []string{"v1", "v2"}},
		{"title_match_case_insensitive", "CONCURRENCY", []string{"v1"}},
		{"author_match", "baker", []string{"v2"}},
		{"no_match", "quantum", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Search(tt.query)
			ids := make([]string, 0, len(got))
			for _, v := range got {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSearch_MatchesSummary(t *testing.T) {
	s, _ := newTestStore(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/video/v1",
		httpmock.NewStringResponder(http.StatusOK, `{
			"id": "v1", "video_id": "abc123", "url": "https://youtu.be/abc123",
			"title": "Untitled", "summary": "fan-in and fan-out explained"
		}`))
	_, err := s.FetchByID(context.Background(), "v1")
	require.NoError(t, err)

	got := s.Search("fan-out")
	require.Len(t, got, 1)
	assert.Equal(t, "v1", got[0].ID)
}

func TestFilterByTag(t *testing.T) {
	s, _ := newTestStore(t)
	registerVideoList(t, `{
		"videos": [
			{"id": "v1", "url": "u1", "tags": ["edu", "go"]},
			{"id": "v2", "url": "u2", "tags": ["education"]},
			{"id": "v3", "url": "u3"}
		]
	}`)
	require.NoError(t, s.FetchAll(context.Background()))

	got := s.FilterByTag("edu")
	require.Len(t, got, 1, "tag filtering is exact-match, not substring")
	assert.Equal(t, "v1", got[0].ID)

	assert.Len(t, s.FilterByTag(""), 3)
	assert.Empty(t, s.FilterByTag("missing"))
}

func TestTags_SortedUniqueSet(t *testing.T) {
	s, _ := newTestStore(t)
	registerVideoList(t, `{
		"videos": [
			{"id": "v1", "url": "u1", "tags": ["go", "edu"]},
			{"id": "v2", "url": "u2", "tags": ["edu", "cooking"]}
		]
	}`)
	require.NoError(t, s.FetchAll(context.Background()))

	assert.Equal(t, []string{"cooking", "edu", "go"}, s.Tags())
}

func TestSaveTranscript_UpsertStability(t *testing.T) {
	s, persister := newTestStore(t)

	first := s.SaveTranscript(models.VideoTranscript{
		VideoID: "v1",
		Segments: []models.TranscriptSegment{
			{StartTime: 0, EndTime: 4.5, Text: "welcome back"},
		},
	})
	require.Len(t, first.Segments, 1)
	assert.NotEmpty(t, first.Segments[0].ID, "segments without ids get one assigned")
	assert.NotEmpty(t, first.LastEdited)

	second := s.SaveTranscript(models.VideoTranscript{
		VideoID: "v1",
		Segments: []models.TranscriptSegment{
			{ID: "seg-1", StartTime: 0, EndTime: 4.5, Text: "welcome back", IsHighlighted: true},
		},
	})

	transcripts := s.Transcripts()
	require.Len(t, transcripts, 1, "upsert by video id leaves exactly one entry")
	assert.True(t, transcripts[0].Segments[0].IsHighlighted)

	firstEdited, err := time.Parse(time.RFC3339, first.LastEdited)
	require.NoError(t, err)
	secondEdited, err := time.Parse(time.RFC3339, second.LastEdited)
	require.NoError(t, err)
	assert.False(t, secondEdited.Before(firstEdited), "last_edited is stamped on every write")

	assert.Equal(t, 2, persister.saves, "every transcript mutation rewrites the persistent cache")
	require.Len(t, persister.latest, 1)
	assert.Equal(t, "v1", persister.latest[0].VideoID)
}

func TestNew_SeedsTranscriptsFromPersistedCache(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	remote := remoteapi.New(testBaseURL, time.Second, log)

	persister := &memPersister{seed: []models.VideoTranscript{
		{VideoID: "v1", LastEdited: "2026-08-30T10:00:00Z"},
	}}
	s := New(remote, persister, log)

	transcript, ok := s.GetTranscriptByVideoID("v1")
	require.True(t, ok)
	assert.Equal(t, "2026-08-30T10:00:00Z", transcript.LastEdited)
}

// End-to-end flow: add, implicit refresh, lookup, delete.
func TestLifecycleScenario(t *testing.T) {
	s, _ := newTestStore(t)

	httpmock.RegisterResponder(http.MethodGet, `=~^https://vidnote\.test/summary`,
		httpmock.NewStringResponder(http.StatusOK, `{"video_id": "v1"}`))
	registerVideoList(t, `{
		"videos": [{"id": "v1", "video_id": "abc123", "url": "https://youtu.be/abc123"}]
	}`)

	result, err := s.Add(context.Background(), "https://youtu.be/abc123")
	require.NoError(t, err)
	require.True(t, result.Resolved)
	require.Equal(t, "v1", result.VideoID)
	require.Len(t, s.Videos(), 1)

	video, ok := s.GetByID("v1")
	require.True(t, ok)
	assert.Equal(t, "https://youtu.be/abc123", video.URL)

	httpmock.RegisterResponder(http.MethodDelete, testBaseURL+"/video/v1",
		httpmock.NewStringResponder(http.StatusOK, ""))
	require.True(t, s.Delete(context.Background(), "v1"))

	_, ok = s.GetByID("v1")
	assert.False(t, ok)
	assert.Empty(t, s.Videos())
}

func TestLoading_TracksInFlightWork(t *testing.T) {
	s, _ := newTestStore(t)

	release := make(chan struct{})
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/videos",
		func(req *http.Request) (*http.Response, error) {
			<-release
			return httpmock.NewStringResponse(http.StatusOK, `{"videos": []}`), nil
		})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.FetchAll(context.Background())
	}()

	require.Eventually(t, s.Loading, time.Second, 5*time.Millisecond)
	close(release)
	<-done
	assert.False(t, s.Loading())
}
