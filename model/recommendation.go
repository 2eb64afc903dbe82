package model

// Suggestion is one raw title proposed by the generator, before catalog
// enrichment.
type Suggestion struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Reason string `json:"reason"`
}

// Recommendation is a persisted suggestion attributed to a user. Rows are
// immutable; all rows written in one workflow run share one created_ts, and
// that shared timestamp is what groups them into a batch.
type Recommendation struct {
	ID           int    `json:"id"`
	UserID       int32  `json:"user_id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Reason       string `json:"reason"`
	ImageURL     string `json:"image_url"`
	ExternalLink string `json:"external_link"`
	CreatedTs    int64  `json:"created_ts"`
}

type FindRecommendation struct {
	UserID *int32 `json:"user_id"`
	// LatestBatch limits results to rows sharing the user's newest created_ts.
	LatestBatch bool `json:"latest_batch"`

	// The maximum number of recommendations to return.
	Limit *int
}
