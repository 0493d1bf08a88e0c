package models

type ReminderCategory string

const (
	ReminderWeeklyPlanning   ReminderCategory = "weeklyPlanning"
	ReminderDailyPlanning    ReminderCategory = "dailyPlanning"
	ReminderWeeklyCompass    ReminderCategory = "weeklyCompass"
	ReminderWeeklyReflection ReminderCategory = "weeklyReflection"
)

// ReminderCategories lists every category the scheduler knows about.
var ReminderCategories = []ReminderCategory{
	ReminderWeeklyPlanning,
	ReminderDailyPlanning,
	ReminderWeeklyCompass,
	ReminderWeeklyReflection,
}

// Weekly reports whether reminders of this category repeat on a single weekday.
func (c ReminderCategory) Weekly() bool {
	return c != ReminderDailyPlanning
}

// ReminderSetting configures one reminder. DayOfWeek (0 = Sunday) is only
// meaningful for weekly categories.
type ReminderSetting struct {
	Enabled   bool   `json:"enabled"`
	DayOfWeek *int   `json:"dayOfWeek,omitempty" validate:"omitempty,min=0,max=6"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
}

type NotificationSettings struct {
	WeeklyPlanning   ReminderSetting `json:"weeklyPlanning"`
	DailyPlanning    ReminderSetting `json:"dailyPlanning"`
	WeeklyCompass    ReminderSetting `json:"weeklyCompass"`
	WeeklyReflection ReminderSetting `json:"weeklyReflection"`
}

func (s NotificationSettings) For(c ReminderCategory) ReminderSetting {
	switch c {
	case ReminderWeeklyPlanning:
		return s.WeeklyPlanning
	case ReminderDailyPlanning:
		return s.DailyPlanning
	case ReminderWeeklyCompass:
		return s.WeeklyCompass
	case ReminderWeeklyReflection:
		return s.WeeklyReflection
	}
	return ReminderSetting{}
}

func weekday(d int) *int { return &d }

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		WeeklyPlanning:   ReminderSetting{Enabled: true, DayOfWeek: weekday(0), Time: "18:00"},
		DailyPlanning:    ReminderSetting{Enabled: true, Time: "07:30"},
		WeeklyCompass:    ReminderSetting{Enabled: false, DayOfWeek: weekday(3), Time: "12:00"},
		WeeklyReflection: ReminderSetting{Enabled: true, DayOfWeek: weekday(6), Time: "19:00"},
	}
}
