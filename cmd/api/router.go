package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookreview-backend/internal/shared/auth"
	"bookreview-backend/internal/shared/middleware"
	"bookreview-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	requireAuth := middleware.RequireAuth(c.JWTManager)
	requireAdmin := middleware.RequireRoles(auth.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c, requireAuth)
		setupUserRoutes(v1, c, requireAuth, requireAdmin)
		setupAuthorRoutes(v1, c, requireAuth, requireAdmin)
		setupGenreRoutes(v1, c, requireAuth, requireAdmin)
		setupBookRoutes(v1, c, requireAuth, requireAdmin)
		setupReviewRoutes(v1, c, requireAuth)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container, requireAuth gin.HandlerFunc) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", c.UserHandler.Register)
		authGroup.POST("/login", c.UserHandler.Login)
		authGroup.GET("/me", requireAuth, c.UserHandler.GetProfile)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container, requireAuth, requireAdmin gin.HandlerFunc) {
	users := v1.Group("/users")
	{
		users.GET("/:id/reviews", c.ReviewHandler.ListByUser)

		admin := users.Group("", requireAuth, requireAdmin)
		{
			admin.GET("", c.UserHandler.ListUsers)
			admin.GET("/:id", c.UserHandler.GetUser)
			admin.PUT("/:id", c.UserHandler.UpdateUser)
			admin.DELETE("/:id", c.UserHandler.DeleteUser)
		}
	}
}

func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container, requireAuth, requireAdmin gin.HandlerFunc) {
	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.GetByID)

		admin := authors.Group("", requireAuth, requireAdmin)
		{
			admin.POST("", c.AuthorHandler.Create)
			admin.PUT("/:id", c.AuthorHandler.Update)
			admin.DELETE("/:id", c.AuthorHandler.Delete)
		}
	}
}

func setupGenreRoutes(v1 *gin.RouterGroup, c *container.Container, requireAuth, requireAdmin gin.HandlerFunc) {
	genres := v1.Group("/genres")
	{
		genres.GET("", c.GenreHandler.List)
		genres.GET("/:id", c.GenreHandler.GetByID)

		admin := genres.Group("", requireAuth, requireAdmin)
		{
			admin.POST("", c.GenreHandler.Create)
			admin.PUT("/:id", c.GenreHandler.Update)
			admin.DELETE("/:id", c.GenreHandler.Delete)
		}
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container, requireAuth, requireAdmin gin.HandlerFunc) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.Search)
		books.GET("/:id", c.BookHandler.GetByID)
		books.GET("/:id/reviews", c.ReviewHandler.ListByBook)
		books.POST("/:id/reviews", requireAuth, c.ReviewHandler.Create)
		books.GET("/:id/reviews/me", requireAuth, c.ReviewHandler.GetMine)

		admin := books.Group("", requireAuth, requireAdmin)
		{
			admin.POST("", c.BookHandler.Create)
			admin.PUT("/:id", c.BookHandler.Update)
			admin.DELETE("/:id", c.BookHandler.Delete)
		}
	}
}

func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container, requireAuth gin.HandlerFunc) {
	reviews := v1.Group("/reviews")
	{
		reviews.GET("/:id", c.ReviewHandler.GetByID)
		reviews.PUT("/:id", requireAuth, c.ReviewHandler.Update)
		reviews.DELETE("/:id", requireAuth, c.ReviewHandler.Delete)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error"
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = "error"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
