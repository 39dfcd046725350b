package main

import (
	"os"

	"nutritrack/config"
	"nutritrack/routes"
	"nutritrack/utils"
)

func main() {
	utils.InitLogger()
	config.InitDB()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		utils.Log.WithError(err).Fatal("server exited")
	}
}
