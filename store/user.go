package store

import (
	"fmt"
	"strings"

	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/model"
	"go.uber.org/zap"
)

func (s *Store) GetUser(find *model.FindUser) (*model.User, error) {
	if find.ID != nil {
		if cache, ok := s.UserCache.Load(*find.ID); ok {
			return cache.(*model.User), nil
		}
	}

	list, err := s.ListUsers(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	user := list[0]
	s.UserCache.Store(user.ID, user)
	return user, nil
}

func (s *Store) ListUsers(find *model.FindUser) ([]*model.User, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Username; v != nil {
		where, args = append(where, "username = ?"), append(args, *v)
	}
	if v := find.Role; v != nil {
		where, args = append(where, "role = ?"), append(args, *v)
	}
	if v := find.Email; v != nil {
		where, args = append(where, "email = ?"), append(args, *v)
	}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "row_status = ?"), append(args, *v)
	}

	// Here will return password_hash, so need to be careful.
	// Use response.UserResponse before sending a user to the client.
	query := `
		SELECT
			id,
			username,
			role,
			email,
			nickname,
			password_hash,
			created_ts,
			updated_ts,
			last_login_ts,
			row_status
		FROM user
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Debug("Error querying users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		// The ordering of scan targets should be consistent with the query
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Role,
			&user.Email,
			&user.Nickname,
			&user.PasswordHash,
			&user.CreatedTs,
			&user.UpdatedTs,
			&user.LastLoginTs,
			&user.RowStatus,
		); err != nil {
			return nil, err
		}
		list = append(list, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) CreateUser(create *model.User) (*model.User, error) {
	fields := []string{"`username`", "`email`", "`nickname`", "`password_hash`", "`role`"}
	placeholder := []string{"?", "?", "?", "?", "?"}
	args := []any{create.Username, create.Email, create.Nickname, create.PasswordHash, create.Role}
	stmt := "INSERT INTO user (" + strings.Join(fields, ", ") + ") VALUES (" + strings.Join(placeholder, ", ") + ") RETURNING id, row_status, created_ts, updated_ts, last_login_ts, username, role, email, nickname"

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var user model.User
	if err := tx.QueryRow(stmt, args...).Scan(
		&user.ID,
		&user.RowStatus,
		&user.CreatedTs,
		&user.UpdatedTs,
		&user.LastLoginTs,
		&user.Username,
		&user.Role,
		&user.Email,
		&user.Nickname,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	user.PasswordHash = create.PasswordHash
	return &user, nil
}

func (s *Store) SetLastLogin(userID int32) error {
	stmt := `UPDATE user SET last_login_ts = strftime('%s', 'now') WHERE id = ?`
	if _, err := s.db.Exec(stmt, userID); err != nil {
		log.Warn("Unable to update last login date", zap.Int32("user_id", userID), zap.Error(err))
	}
	return nil
}

// DeleteUser removes the account. Shelf entries and recommendations go with
// it through the cascading foreign keys.
func (s *Store) DeleteUser(userID int32) error {
	stmt := `DELETE FROM user WHERE id = ?`

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(stmt, userID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.UserCache.Delete(userID)
	return nil
}
