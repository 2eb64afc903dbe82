package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/model"
	"go.uber.org/zap"
)

// CreateRecommendationBatch persists a generation run in one transaction.
// Every row gets the same created_ts, which is what groups the batch later.
// Any insert failure rolls the whole batch back.
func (s *Store) CreateRecommendationBatch(userID int32, creates []*model.Recommendation) ([]*model.Recommendation, error) {
	if len(creates) == 0 {
		return []*model.Recommendation{}, nil
	}

	createdTs := time.Now().Unix()

	stmt := `
		INSERT INTO recommendation (
			user_id,
			title,
			author,
			reason,
			image_url,
			external_link,
			created_ts
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, user_id, title, author, reason, image_url, external_link, created_ts
	`

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	list := make([]*model.Recommendation, 0, len(creates))
	for _, create := range creates {
		args := []any{userID, create.Title, create.Author, create.Reason, create.ImageURL, create.ExternalLink, createdTs}

		var rec model.Recommendation
		if err := tx.QueryRow(stmt, args...).Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Title,
			&rec.Author,
			&rec.Reason,
			&rec.ImageURL,
			&rec.ExternalLink,
			&rec.CreatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, &rec)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return list, nil
}

// ListRecommendations returns a user's recommendation history, newest batch
// first. With LatestBatch set it returns only the rows sharing the user's
// most recent created_ts.
func (s *Store) ListRecommendations(find *model.FindRecommendation) ([]*model.Recommendation, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = ?"), append(args, *v)
	}
	if find.LatestBatch {
		if find.UserID == nil {
			return nil, fmt.Errorf("latest batch requires a user filter")
		}
		where = append(where, "created_ts = (SELECT MAX(created_ts) FROM recommendation WHERE user_id = ?)")
		args = append(args, *find.UserID)
	}

	query := `
		SELECT
			id,
			user_id,
			title,
			author,
			reason,
			image_url,
			external_link,
			created_ts
		FROM recommendation
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC, id ASC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query recommendations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Recommendation, 0)
	for rows.Next() {
		var rec model.Recommendation
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Title,
			&rec.Author,
			&rec.Reason,
			&rec.ImageURL,
			&rec.ExternalLink,
			&rec.CreatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
