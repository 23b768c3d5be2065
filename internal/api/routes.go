package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/fitness-tracker/internal/catalog"
	"fittrack/fitness-tracker/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	workoutService service.WorkoutService,
	planService service.PlanService,
	profileService service.ProfileService,
	catalogClient *catalog.Client,
) {
	authHandler := NewAuthHandler(authService)
	workoutHandler := NewWorkoutHandler(workoutService)
	planHandler := NewPlanHandler(planService)
	profileHandler := NewProfileHandler(profileService)
	catalogHandler := NewCatalogHandler(catalogClient)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/reset-token", authHandler.ResetToken)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			uid, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": uid})
		})

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("", workoutHandler.GetWorkouts)
			workoutGroup.PUT("/assignment", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:workoutId", workoutHandler.DeleteWorkout)
		}

		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("", planHandler.GetPlans)
			// Registered before /:planId so gin does not treat "active" as an id.
			planGroup.GET("/active", planHandler.GetActivePlan)
			planGroup.GET("/active/today", planHandler.GetToday)
			planGroup.POST("/:planId/activate", planHandler.ActivatePlan)
			planGroup.DELETE("/:planId", planHandler.DeletePlan)
		}

		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.UpdateProfile)
			profileGroup.POST("/avatar-url", profileHandler.AvatarUploadURL)
		}

		catalogGroup := protected.Group("/catalog")
		{
			catalogGroup.GET("/exercises", catalogHandler.ListExercises)
			catalogGroup.GET("/exercises/autocomplete", catalogHandler.Autocomplete)
			catalogGroup.GET("/exercises/:exerciseId", catalogHandler.GetExercise)
			catalogGroup.GET("/bodyparts", catalogHandler.ListBodyParts)
		}
	}
}
