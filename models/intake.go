package models

import "time"

// Scope selects which aggregation table a date-keyed record lives in.
const (
	ScopeDaily  = "daily"
	ScopeWeekly = "weekly"
)

// Nutrients holds the six tracked nutrient columns shared by both intake tables.
// Values are always >= 0 in storage; removals are clamped at zero.
type Nutrients struct {
	Calories float64 `gorm:"not null;default:0" json:"calories"`
	Protein  float64 `gorm:"not null;default:0" json:"protein"`
	Carbs    float64 `gorm:"not null;default:0" json:"carbs"`
	Fats     float64 `gorm:"not null;default:0" json:"fats"`
	Fiber    float64 `gorm:"not null;default:0" json:"fiber"`
	Water    float64 `gorm:"not null;default:0" json:"water"`
}

// DailyIntake is one row per (user_id, date) in daily_intakes.
// The composite unique index is the upsert conflict target.
type DailyIntake struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_daily_user_date" json:"user_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_daily_user_date" json:"date"`
	Nutrients
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WeeklyIntake mirrors DailyIntake in weekly_intakes. Index names differ
// because Postgres index names are schema-global.
type WeeklyIntake struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_weekly_user_date" json:"user_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_weekly_user_date" json:"date"`
	Nutrients
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IntakeRecord scans rows from either intake table; the service picks the
// table by scope at query time. Not migrated as its own table.
type IntakeRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"user_id"`
	Date      time.Time `json:"date"`
	Nutrients
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
