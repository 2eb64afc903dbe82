package store

import (
	"database/sql"
	"encoding/json"

	"github.com/acuna/shelfwise/model"
	"github.com/acuna/shelfwise/util"
	"github.com/pkg/errors"
)

func (s *Store) GetSystemSetting(name model.SystemSettingName) (*model.SystemSetting, error) {
	query := `SELECT name, value, description FROM system_setting WHERE name = ?`

	var setting model.SystemSetting
	if err := s.db.QueryRow(query, name.String()).Scan(
		&setting.Name,
		&setting.Value,
		&setting.Description,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// GetOrUpsetSystemSecuritySetting returns the persisted security settings,
// generating and storing a fresh signing secret on first run.
func (s *Store) GetOrUpsetSystemSecuritySetting() (*model.SecuritySetting, error) {
	setting, err := s.GetSystemSetting(model.SystemSettingSecurityName)
	if err != nil {
		return nil, err
	}
	if setting != nil {
		var security model.SecuritySetting
		if err := json.Unmarshal([]byte(setting.Value), &security); err != nil {
			return nil, errors.Wrap(err, "failed to decode security setting")
		}
		return &security, nil
	}

	secret, err := util.RandomString(32)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate jwt secret")
	}
	security := &model.SecuritySetting{JWTSecret: secret}

	stmt := `
		INSERT INTO system_setting (
			name,
			value,
			description
		)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE
		SET
			value=EXCLUDED.value
	`
	if _, err := s.db.Exec(stmt, model.SystemSettingSecurityName.String(), security.ToJSON(), "security settings"); err != nil {
		return nil, err
	}

	return security, nil
}
