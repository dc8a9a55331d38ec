package models

// Settings holds the family-wide behavior switches. Single instance,
// mutated only by managers.
type Settings struct {
	// RequireApproval gates task completion: when true a completed task
	// waits for a manager, when false it finalizes immediately.
	RequireApproval bool

	// EnableGamification gates the star award on task approval.
	EnableGamification bool

	// EnableNotifications is advisory for the UI layer; it does not gate
	// any state transition in the engines.
	EnableNotifications bool
}

// DefaultSettings returns the switches a fresh family starts with
func DefaultSettings() Settings {
	return Settings{
		RequireApproval:     true,
		EnableGamification:  true,
		EnableNotifications: true,
	}
}

// SettingsPatch is a partial settings update; nil fields are left unchanged
type SettingsPatch struct {
	RequireApproval     *bool
	EnableGamification  *bool
	EnableNotifications *bool
}

// Apply returns a copy of s with the non-nil patch fields applied
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.RequireApproval != nil {
		s.RequireApproval = *p.RequireApproval
	}
	if p.EnableGamification != nil {
		s.EnableGamification = *p.EnableGamification
	}
	if p.EnableNotifications != nil {
		s.EnableNotifications = *p.EnableNotifications
	}
	return s
}
