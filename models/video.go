package models

// Video represents one ingested video as seen by the client.
//
// ID is the identifier assigned by the video service; VideoID is the source
// platform's own identifier (e.g. the YouTube watch id) and may be empty for
// platforms that do not expose one.
type Video struct {
	ID           string   `json:"id"`
	VideoID      string   `json:"video_id,omitempty"`
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Tags         []string `json:"tags"`
	DateAdded    string   `json:"date_added"`
	Duration     int      `json:"duration"` // seconds
	Uploader     string   `json:"uploader"`
	Summary      string   `json:"summary,omitempty"`
	Transcript   string   `json:"transcript,omitempty"`
	UserNotes    string   `json:"user_notes,omitempty"`
	LastEdited   string   `json:"last_edited,omitempty"`
}

// HasTag reports whether the video's tag set contains tag exactly.
func (v Video) HasTag(tag string) bool {
	for _, t := range v.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NotesRecord is the persisted notes blob for a video together with the
// timestamp of its last mutation.
type NotesRecord struct {
	UserNotes  string `json:"user_notes"`
	LastEdited string `json:"last_edited"`
}
