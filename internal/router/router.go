package router

import (
	"time"

	"social-service/internal/config"
	"social-service/internal/database"
	"social-service/internal/handler"
	"social-service/internal/middleware"
	"social-service/internal/repository"
	"social-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Router struct {
	engine              *gin.Engine
	userHandler         *handler.UserHandler
	friendHandler       *handler.FriendHandler
	notificationHandler *handler.NotificationHandler
	markerHandler       *handler.MarkerHandler
	authMW              *middleware.AuthMiddleware
	rateLimitMW         *middleware.RateLimitMiddleware
}

func NewRouter(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	minioClient *database.MinIOClient,
	emitter service.EventEmitter,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogAPI())

	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db, redisClient)
	notificationRepo := repository.NewNotificationRepository(db)
	markerRepo := repository.NewMarkerRepository(db)
	geoRepo := repository.NewGeoRepository(db)

	userService := service.NewUserService(userRepo, minioClient, cfg.JWT.Secret, cfg.JWT.ExpirationTime)
	geoService := service.NewGeoService(userRepo, geoRepo)
	friendService := service.NewFriendService(userRepo, friendRepo, emitter)
	notificationService := service.NewNotificationService(userRepo, notificationRepo)
	markerService := service.NewMarkerService(userRepo, markerRepo)

	return &Router{
		engine:              engine,
		userHandler:         handler.NewUserHandler(userService, geoService),
		friendHandler:       handler.NewFriendHandler(friendService),
		notificationHandler: handler.NewNotificationHandler(notificationService),
		markerHandler:       handler.NewMarkerHandler(markerService),
		authMW:              middleware.NewAuthMiddleware(cfg.JWT.Secret),
		rateLimitMW:         middleware.NewRateLimitMiddleware(redisClient),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api")

	protected := api.Group("/")
	protected.Use(r.authMW.RequireAuth())
	protected.Use(r.rateLimitMW.RateLimit(100, time.Minute))

	r.userHandler.RegisterRoutes(api, protected)
	r.friendHandler.RegisterRoutes(protected)
	r.notificationHandler.RegisterRoutes(protected)
	r.markerHandler.RegisterRoutes(protected)
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
