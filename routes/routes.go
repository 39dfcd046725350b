package routes

import (
	"nutritrack/controllers"
	"nutritrack/middlewares"
	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())

	hub := services.NewIntakeHub()
	ic := controllers.NewIntakeController(hub)
	rc := controllers.NewRealtimeController(hub)

	intake := r.Group("/intake")
	{
		intake.POST("/add/:userId", ic.AddIntake)
		intake.PUT("/edit/:userId", ic.EditIntake)
		intake.POST("/remove/:userId", ic.RemoveIntake)
		intake.GET("/:userId", ic.GetIntake)
		intake.GET("/:userId/history", ic.GetIntakeHistory)
		intake.DELETE("/:userId", ic.DeleteIntake)
	}

	users := r.Group("/users")
	{
		users.POST("", controllers.CreateUser)
		users.GET("/:id", controllers.GetUser)
		users.GET("/:id/profile", controllers.GetProfile)
		users.PUT("/:id/profile", controllers.UpdateProfile)
	}

	r.GET("/ws/intake/:userId", rc.IntakeWS)

	return r
}
