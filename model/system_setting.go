package model

import "encoding/json"

type SystemSettingName string

const (
	// SystemSettingSecurityName is the key of the security settings row.
	SystemSettingSecurityName SystemSettingName = "security"
)

func (n SystemSettingName) String() string {
	return string(n)
}

type SystemSetting struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// SecuritySetting lives JSON-encoded in the system_setting table, so the
// signing secret survives restarts.
type SecuritySetting struct {
	JWTSecret string `json:"jwt_secret"`
}

func (s *SecuritySetting) ToJSON() string {
	b, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(b)
}
