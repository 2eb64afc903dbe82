package store

import (
	"strings"

	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/model"
	"go.uber.org/zap"
)

func (s *Store) GetShelfEntry(find *model.FindShelfEntry) (*model.ShelfEntry, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "book_id = ?"), append(args, *v)
	}

	query := `
		SELECT
			id,
			user_id,
			book_id,
			status,
			current_page,
			rating,
			notes,
			tags,
			added_ts
		FROM shelf_entry
		WHERE ` + strings.Join(where, " AND ")

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query shelf entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.ShelfEntry, 0)
	for rows.Next() {
		var entry model.ShelfEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.BookID,
			&entry.Status,
			&entry.CurrentPage,
			&entry.Rating,
			&entry.Notes,
			&entry.Tags,
			&entry.AddedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// CreateShelfEntry adds a book to a user's shelf. A second insert for the
// same (user, book) pair trips the unique constraint and reads as a
// duplicate, never a silent merge.
func (s *Store) CreateShelfEntry(create *model.ShelfEntry) (*model.ShelfEntry, error) {
	stmt := `
		INSERT INTO shelf_entry (
			user_id,
			book_id,
			status,
			current_page,
			rating,
			notes,
			tags
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, user_id, book_id, status, current_page, rating, notes, tags, added_ts
	`
	args := []any{create.UserID, create.BookID, create.Status, create.CurrentPage, create.Rating, create.Notes, create.Tags}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var entry model.ShelfEntry
	if err := tx.QueryRow(stmt, args...).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.BookID,
		&entry.Status,
		&entry.CurrentPage,
		&entry.Rating,
		&entry.Notes,
		&entry.Tags,
		&entry.AddedTs,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrDuplicateShelfEntry
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &entry, nil
}

// UpdateShelfEntry patches only the supplied fields of a user's entry.
func (s *Store) UpdateShelfEntry(userID int32, bookID int, update *model.ShelfEntryUpdate) (*model.ShelfEntry, error) {
	set, args := []string{}, []any{}

	if v := update.Status; v != nil {
		set, args = append(set, "status = ?"), append(args, *v)
	}
	if v := update.CurrentPage; v != nil {
		set, args = append(set, "current_page = ?"), append(args, *v)
	}
	if v := update.Rating; v != nil {
		set, args = append(set, "rating = ?"), append(args, *v)
	}
	if v := update.Notes; v != nil {
		set, args = append(set, "notes = ?"), append(args, *v)
	}
	if v := update.Tags; v != nil {
		set, args = append(set, "tags = ?"), append(args, *v)
	}

	if len(set) == 0 {
		// Nothing supplied, return the entry as-is.
		entry, err := s.GetShelfEntry(&model.FindShelfEntry{UserID: &userID, BookID: &bookID})
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return nil, model.ErrShelfEntryNotFound
		}
		return entry, nil
	}

	stmt := `
		UPDATE shelf_entry
		SET ` + strings.Join(set, ", ") + `
		WHERE user_id = ? AND book_id = ?
		RETURNING id, user_id, book_id, status, current_page, rating, notes, tags, added_ts
	`
	args = append(args, userID, bookID)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var entry model.ShelfEntry
	if err := tx.QueryRow(stmt, args...).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.BookID,
		&entry.Status,
		&entry.CurrentPage,
		&entry.Rating,
		&entry.Notes,
		&entry.Tags,
		&entry.AddedTs,
	); err != nil {
		if isNoRows(err) {
			return nil, model.ErrShelfEntryNotFound
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (s *Store) DeleteShelfEntry(userID int32, bookID int) error {
	stmt := `DELETE FROM shelf_entry WHERE user_id = ? AND book_id = ?`

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(stmt, userID, bookID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrShelfEntryNotFound
	}

	return tx.Commit()
}

// ListShelfBooks returns a user's shelf joined with the catalog records.
func (s *Store) ListShelfBooks(userID int32) ([]*model.ShelfBook, error) {
	query := `
		SELECT
			se.id,
			se.user_id,
			se.book_id,
			se.status,
			se.current_page,
			se.rating,
			se.notes,
			se.tags,
			se.added_ts,
			b.id,
			b.isbn,
			b.title,
			b.author,
			b.publisher,
			b.published_date,
			b.description,
			b.page_count,
			b.category,
			b.image_url,
			b.external_link,
			b.created_ts
		FROM shelf_entry se
		JOIN book b ON b.id = se.book_id
		WHERE se.user_id = ?
		ORDER BY se.added_ts DESC
	`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		log.Error("Failed to query shelf books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.ShelfBook, 0)
	for rows.Next() {
		var sb model.ShelfBook
		var book model.Book
		if err := rows.Scan(
			&sb.ID,
			&sb.UserID,
			&sb.BookID,
			&sb.Status,
			&sb.CurrentPage,
			&sb.Rating,
			&sb.Notes,
			&sb.Tags,
			&sb.AddedTs,
			&book.ID,
			&book.ISBN,
			&book.Title,
			&book.Author,
			&book.Publisher,
			&book.PublishedDate,
			&book.Description,
			&book.PageCount,
			&book.Category,
			&book.ImageURL,
			&book.ExternalLink,
			&book.CreatedTs,
		); err != nil {
			return nil, err
		}
		sb.Book = &book
		list = append(list, &sb)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
