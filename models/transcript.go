package models

// TranscriptSegment represents a single time-anchored line of a transcript.
// IsHighlighted marks a segment the user promoted to a note, as opposed to a
// raw transcript line.
type TranscriptSegment struct {
	ID            string  `json:"id"`
	StartTime     float64 `json:"start_time"`
	EndTime       float64 `json:"end_time"`
	Text          string  `json:"text"`
	IsHighlighted bool    `json:"is_highlighted"`
}

// VideoTranscript is the per-video transcript container. Exactly one exists
// per video; writes are upserts keyed by VideoID.
type VideoTranscript struct {
	VideoID    string              `json:"video_id"`
	Segments   []TranscriptSegment `json:"segments"`
	LastEdited string              `json:"last_edited"`
}
