package router

import (
	"cargolink/internal/handlers"
	"cargolink/internal/middleware"
	"cargolink/internal/models"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	userHandler := handlers.NewUserHandler()
	postHandler := handlers.NewPostHandler()
	transitHandler := handlers.NewTransitHandler()
	proposalHandler := handlers.NewProposalHandler()
	notificationHandler := handlers.NewNotificationHandler()
	shippingHandler := handlers.NewShippingHandler()
	containerHandler := handlers.NewContainerHandler()
	helpHandler := handlers.NewHelpHandler()
	imageHandler := handlers.NewImageHandler()

	// Public routes
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.GET("/posts", postHandler.ListAll)
	r.GET("/posts/:pid", postHandler.Detail)
	r.GET("/transits", transitHandler.ListAll)
	r.GET("/transits/:id", transitHandler.Detail)
	r.GET("/u/:id", userHandler.Profile)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", authHandler.Me)
		authorized.POST("/me", userHandler.UpdateProfile)

		authorized.GET("/my/posts", postHandler.ListMine)
		authorized.POST("/posts", postHandler.Create)
		authorized.POST("/posts/:pid", postHandler.Update)
		authorized.DELETE("/posts/:pid", postHandler.Delete)

		authorized.GET("/my/transits", transitHandler.ListMine)
		authorized.POST("/transits", transitHandler.Create)
		authorized.POST("/transits/:id", transitHandler.Update)
		authorized.DELETE("/transits/:id", transitHandler.Delete)

		authorized.POST("/proposals", proposalHandler.Create)
		authorized.POST("/proposals/:id/accept", proposalHandler.Accept)
		authorized.POST("/proposals/:id/refuse", proposalHandler.Refuse)
		authorized.GET("/proposals/sent", proposalHandler.ListSent)
		authorized.GET("/proposals/received", proposalHandler.ListReceived)
		authorized.GET("/proposals/active/:kind/:subject_id", proposalHandler.Active)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.GET("/notifications/feed", notificationHandler.Feed)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)

		authorized.POST("/shipping-offers", shippingHandler.Create)
		authorized.GET("/shipping-offers", shippingHandler.List)

		authorized.POST("/help", helpHandler.Create)
		authorized.POST("/images", imageHandler.Upload)
	}

	// Container routes, Mediator only
	containers := r.Group("/containers")
	containers.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleMediator))
	{
		containers.GET("", containerHandler.List)
		containers.POST("", containerHandler.Create)
		containers.POST("/:id/items", containerHandler.AddItem)
		containers.DELETE("/:id/items/:item_id", containerHandler.RemoveItem)
		containers.POST("/:id/ready", containerHandler.MarkReady)
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/help", helpHandler.ListAll)
		admin.POST("/help/:id/resolve", helpHandler.Resolve)
		admin.DELETE("/help/:id", helpHandler.Delete)
	}
}
