package models

type AppSettings struct {
	Theme               string `json:"theme" validate:"oneof=system light dark"`
	CalendarSyncEnabled bool   `json:"calendarSyncEnabled"`
	CalendarID          string `json:"calendarId,omitempty"`
	HapticsEnabled      bool   `json:"hapticsEnabled"`
}

func DefaultAppSettings() AppSettings {
	return AppSettings{Theme: "system", HapticsEnabled: true}
}
