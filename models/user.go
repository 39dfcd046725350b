package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName         string    `json:"full_name"`
	Birthday         time.Time `json:"birthday"`
	Height           float64   `json:"height"` // cm
	Weight           float64   `json:"weight"` // kg
	HealthConditions string    `json:"health_conditions"`
	FitnessGoals     string    `json:"fitness_goals"`
}
