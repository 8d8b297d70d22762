package app

import (
	"jeeprep_backend/docs"
	"jeeprep_backend/internal/config"
	"jeeprep_backend/internal/middleware"
	"jeeprep_backend/internal/model"
	"jeeprep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerUserRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/login/provider", c.auth.LoginWithProvider)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)

	rg.GET("/dashboard", c.dashboard.GetDashboard)
	rg.GET("/leaderboard", c.leaderboard.GetLeaderboard)

	practice := rg.Group("/practice")
	{
		practice.GET("/questions", c.practice.GetQuestions)
		practice.POST("/attempts", c.practice.SubmitAttempt)
		practice.POST("/questions/:id/powerup", c.practice.UsePowerUp)
	}

	assistant := rg.Group("/assistant")
	{
		assistant.POST("/hint", c.assistant.Hint)
		assistant.POST("/explanation", c.assistant.DeeperExplanation)
		assistant.POST("/study-focus", c.assistant.StudyFocus)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/questions", c.admin.ListQuestions)
		admin.POST("/questions", c.admin.CreateQuestion)
		admin.POST("/questions/generate", c.admin.GenerateQuestion)
	}
}
