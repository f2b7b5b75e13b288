package models

const (
	MinSessionsPerDay     = 1
	MaxSessionsPerDay     = 10
	DefaultSessionsPerDay = 5
)

// Settings holds centre-wide configuration edited by admins.
type Settings struct {
	SessionsPerDay int `json:"sessionsPerDay"`
}

// DefaultSettings returns the settings used before any admin edit.
func DefaultSettings() Settings {
	return Settings{SessionsPerDay: DefaultSessionsPerDay}
}

// UpdateSettingsRequest replaces the editable settings fields.
type UpdateSettingsRequest struct {
	SessionsPerDay int `json:"sessionsPerDay" validate:"required,min=1,max=10"`
}
