package config

import (
	"fmt"
	"os"

	"nutritrack/models"
	"nutritrack/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		utils.Log.Warn("no .env file found, using process environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		utils.Log.WithError(err).Fatal("failed to connect to database")
	}
	DB = db

	err = DB.AutoMigrate(
		&models.User{},
		&models.DailyIntake{},
		&models.WeeklyIntake{},
	)
	if err != nil {
		utils.Log.WithError(err).Fatal("automigrate failed")
	}
}
