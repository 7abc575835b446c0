package router

import (
	"time"

	"herald/config"
	"herald/internal/handler"
	"herald/internal/middleware"
	"herald/internal/repository"
	"herald/internal/sender"
	"herald/internal/service"
	"herald/pkg/cloudinary"
	"herald/pkg/mailer"
	"herald/pkg/smsgateway"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers onto a gin engine and
// returns it together with the dispatch queue so main can drain it on
// shutdown.
func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) (*gin.Engine, *service.DispatchQueue) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)

	// Channel senders
	senders := []sender.Sender{
		sender.NewInApp(),
		sender.NewEmail(mailer.New(cfg.SMTP)),
		sender.NewSMS(smsgateway.New(cfg.SMS), cfg.SMS.DefaultCountryCode),
	}

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	targeting := service.NewTargetingService(userRepo)
	queue := service.NewDispatchQueue(cfg.Dispatch.Workers, cfg.Dispatch.QueueSize)
	dispatch := service.NewDispatchService(notifRepo, userRepo, targeting, queue, senders, cfg.Dispatch.SendTimeout)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	notifHandler := handler.NewNotificationHandler(notifRepo)
	prefHandler := handler.NewPreferenceHandler(prefRepo)
	adminHandler := handler.NewAdminHandler(notifRepo, userRepo, dispatch)
	uploadHandler := handler.NewUploadHandler(cloud)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/notifications", notifHandler.List)
			me.GET("/notifications/popups", notifHandler.Popups)
			me.GET("/notifications/screen", notifHandler.Screen)
			me.PUT("/notifications/read-all", notifHandler.MarkAllRead)
			me.PUT("/notifications/:id/read", notifHandler.MarkRead)
			me.DELETE("/notifications/:id", notifHandler.Delete)
			me.GET("/preferences", prefHandler.Get)
			me.PUT("/preferences", prefHandler.Update)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.POST("/notifications", adminHandler.Send)
			admin.GET("/notifications", adminHandler.List)
			admin.GET("/notifications/stats", adminHandler.Stats)
			admin.DELETE("/notifications/:id", adminHandler.Delete)
			admin.POST("/notifications/image", uploadHandler.UploadImage)
			admin.GET("/users", adminHandler.ListUsers)
		}
	}

	return r, queue
}
