package model //import "github.com/acuna/shelfwise/model"

// Book is a canonical catalog record, shared across all users. One row per
// identifier; re-resolving the same title returns the existing row.
type Book struct {
	ID int `json:"id"`
	// ISBN holds the extracted identifier, or a generated fallback when the
	// external source carries none.
	ISBN          string `json:"isbn"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"published_date"`
	Description   string `json:"description"`
	PageCount     int    `json:"page_count"`
	Category      string `json:"category"`
	ImageURL      string `json:"image_url"`
	ExternalLink  string `json:"external_link"`
	CreatedTs     int64  `json:"created_ts"`
}

type FindBook struct {
	ID    *int    `json:"id"`
	ISBN  *string `json:"isbn"`
	Title *string `json:"title"`
	// Author narrows a title search, substring match like Title.
	Author *string `json:"author"`

	// The maximum number of books to return.
	Limit *int
}

// Shelf entry status values. The column is an open string, these are the
// values the clients send.
const (
	StatusPending  = "PENDING"
	StatusReading  = "READING"
	StatusFinished = "FINISHED"
)

// ShelfEntry tracks one catalog book for one user. At most one entry per
// (user, book) pair.
type ShelfEntry struct {
	ID          int     `json:"id"`
	UserID      int32   `json:"user_id"`
	BookID      int     `json:"book_id"`
	Status      string  `json:"status"`
	CurrentPage int     `json:"current_page"`
	Rating      float64 `json:"rating"`
	Notes       string  `json:"notes"`
	Tags        string  `json:"tags"`
	AddedTs     int64   `json:"added_ts"`
}

// ShelfBook is a shelf entry joined with its catalog record, the shape the
// shelf listing and the recommendation prompt consume.
type ShelfBook struct {
	ShelfEntry
	Book *Book `json:"book"`
}

// Progress reports how far through the book the entry is, in percent.
// Unknown or zero page count reads as zero progress.
func (s *ShelfBook) Progress() float64 {
	if s.Book == nil || s.Book.PageCount <= 0 {
		return 0.0
	}
	return float64(s.CurrentPage) / float64(s.Book.PageCount) * 100
}

// ShelfEntryUpdate is a sparse patch. Only non-nil fields are applied.
type ShelfEntryUpdate struct {
	Status      *string  `json:"status"`
	CurrentPage *int     `json:"current_page"`
	Rating      *float64 `json:"rating"`
	Notes       *string  `json:"notes"`
	Tags        *string  `json:"tags"`
}

// Apply merges the patch into the entry, field by field.
func (u *ShelfEntryUpdate) Apply(entry *ShelfEntry) {
	if v := u.Status; v != nil {
		entry.Status = *v
	}
	if v := u.CurrentPage; v != nil {
		entry.CurrentPage = *v
	}
	if v := u.Rating; v != nil {
		entry.Rating = *v
	}
	if v := u.Notes; v != nil {
		entry.Notes = *v
	}
	if v := u.Tags; v != nil {
		entry.Tags = *v
	}
}

type FindShelfEntry struct {
	ID     *int   `json:"id"`
	UserID *int32 `json:"user_id"`
	BookID *int   `json:"book_id"`
}
