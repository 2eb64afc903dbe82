package store

import (
	"fmt"
	"strings"

	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/model"
	"github.com/acuna/shelfwise/util"
	"go.uber.org/zap"
)

func (s *Store) GetBook(find *model.FindBook) (*model.Book, error) {
	if find.ID != nil {
		if cache, ok := s.BookCache.Load(*find.ID); ok {
			return cache.(*model.Book), nil
		}
	}

	list, err := s.ListBooks(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	book := list[0]
	s.BookCache.Store(book.ID, book)
	return book, nil
}

// SearchBooks does a case-insensitive substring match on the title,
// optionally narrowed by author. Used by reconciliation before hitting the
// external catalog.
func (s *Store) SearchBooks(title, author string, limit int) ([]*model.Book, error) {
	find := &model.FindBook{Title: &title}
	if a := strings.TrimSpace(author); a != "" {
		find.Author = &a
	}
	if limit > 0 {
		find.Limit = &limit
	}
	return s.ListBooks(find)
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.ISBN; v != nil {
		where, args = append(where, "isbn = ?"), append(args, *v)
	}
	// LIKE is case-insensitive for ASCII in sqlite, which is what the
	// substring title search relies on.
	if v := find.Title; v != nil {
		where, args = append(where, "title LIKE ?"), append(args, "%"+strings.TrimSpace(*v)+"%")
	}
	if v := find.Author; v != nil {
		where, args = append(where, "author LIKE ?"), append(args, "%"+strings.TrimSpace(*v)+"%")
	}

	query := `
		SELECT
			id,
			isbn,
			title,
			author,
			publisher,
			published_date,
			description,
			page_count,
			category,
			image_url,
			external_link,
			created_ts
		FROM book
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY title`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(
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
			log.Error("Failed to scan book", zap.Error(err))
			return nil, err
		}
		list = append(list, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// UpsertBook inserts a catalog record keyed on its identifier. Two callers
// racing on the same title hit the same isbn row, the conflict resolves to
// the existing record and both get it back. Records without an extracted
// identifier get a generated fallback, so they never collide.
func (s *Store) UpsertBook(create *model.Book) (*model.Book, error) {
	if create.ISBN == "" {
		create.ISBN = fmt.Sprintf("gen-%s", util.GenUUID())
	}

	stmt := `
		INSERT INTO book (
			isbn,
			title,
			author,
			publisher,
			published_date,
			description,
			page_count,
			category,
			image_url,
			external_link
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(isbn) DO UPDATE
		SET
			isbn=EXCLUDED.isbn
		RETURNING id, isbn, title, author, publisher, published_date, description, page_count, category, image_url, external_link, created_ts
	`
	args := []any{
		create.ISBN,
		create.Title,
		create.Author,
		create.Publisher,
		create.PublishedDate,
		create.Description,
		create.PageCount,
		create.Category,
		create.ImageURL,
		create.ExternalLink,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var book model.Book
	if err := tx.QueryRow(stmt, args...).Scan(
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

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.BookCache.Store(book.ID, &book)
	return &book, nil
}
