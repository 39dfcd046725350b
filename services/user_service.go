package services

import (
	"errors"
	"time"

	"nutritrack/config"
	"nutritrack/models"
	"nutritrack/utils"

	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

type ProfileInput struct {
	FullName         string  `json:"full_name"`
	Birthday         string  `json:"birthday"` // YYYY-MM-DD
	Height           float64 `json:"height"`
	Weight           float64 `json:"weight"`
	HealthConditions string  `json:"health_conditions"`
	FitnessGoals     string  `json:"fitness_goals"`
}

func CreateUser(email, fullName string) (*models.User, error) {
	var existing models.User
	err := config.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{Email: email, FullName: fullName}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserProfile returns the profile view of a user, with age and BMI derived
// from the stored birthday/height/weight.
func GetUserProfile(id uint) (map[string]interface{}, error) {
	user, err := GetUserByID(id)
	if err != nil {
		return nil, err
	}

	age := 0
	birthday := ""
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
		birthday = user.Birthday.Format("2006-01-02")
	}

	profile := map[string]interface{}{
		"id":                user.ID,
		"email":             user.Email,
		"full_name":         user.FullName,
		"birthday":          birthday,
		"age":               age,
		"height":            user.Height,
		"weight":            user.Weight,
		"health_conditions": user.HealthConditions,
		"fitness_goals":     user.FitnessGoals,
	}

	if bmi, err := utils.CalculateBMI(user.Height, user.Weight); err == nil {
		profile["bmi"] = bmi
		profile["bmi_category"] = utils.BMICategory(bmi)
	}

	return profile, nil
}

// UpdateUserProfile applies the non-empty fields of input to the user.
func UpdateUserProfile(id uint, input ProfileInput) error {
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		return err
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Birthday != "" {
		if birthday, err := time.Parse("2006-01-02", input.Birthday); err == nil {
			user.Birthday = birthday
		}
	}
	if input.Height > 0 {
		user.Height = input.Height
	}
	if input.Weight > 0 {
		user.Weight = input.Weight
	}
	if input.HealthConditions != "" {
		user.HealthConditions = input.HealthConditions
	}
	if input.FitnessGoals != "" {
		user.FitnessGoals = input.FitnessGoals
	}

	return config.DB.Save(&user).Error
}
