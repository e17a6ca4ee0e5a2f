package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BjornOnGit/adec-web/internal/config"
	"github.com/BjornOnGit/adec-web/internal/handler"
	"github.com/BjornOnGit/adec-web/internal/middleware"
	"github.com/BjornOnGit/adec-web/internal/migration"
	"github.com/BjornOnGit/adec-web/internal/repository"
	"github.com/BjornOnGit/adec-web/internal/routes"
	"github.com/BjornOnGit/adec-web/internal/service"
	"github.com/BjornOnGit/adec-web/internal/ws"
	pkgcache "github.com/BjornOnGit/adec-web/pkg/cache"
	"github.com/BjornOnGit/adec-web/pkg/jwt"
	pkglogger "github.com/BjornOnGit/adec-web/pkg/logger"
	pkgredis "github.com/BjornOnGit/adec-web/pkg/redis"
	pkgstorage "github.com/BjornOnGit/adec-web/pkg/storage"
)

// @title           ADEC Web API
// @version         1.0
// @description     Membership organization backend: public site and members portal
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.Init(env)
	log := pkglogger.Get()

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	log.Info().Str("host", cfg.Database.Host).Msg("connected to MySQL")

	if err := migration.Run(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	redisClient, err := pkgredis.NewClient(pkgredis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		redisClient = nil
	} else {
		log.Info().Str("host", cfg.Redis.Host).Msg("connected to Redis")
	}

	var cacheService pkgcache.Service
	if redisClient != nil {
		cacheService = pkgcache.NewService(redisClient)
	}

	var s3Client *pkgstorage.S3Client
	if cfg.Storage.Enabled {
		s3Client, err = pkgstorage.NewS3Client(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init object storage")
		}
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("object storage ready")
	} else {
		log.Warn().Msg("object storage disabled, uploads will fail")
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshIn)

	hub := ws.NewHub(redisClient)
	go hub.Run()

	// Repositories
	memberRepo := repository.NewMemberRepository(db)
	convRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)
	eventRepo := repository.NewEventRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	marketingRepo := repository.NewMarketingRepository(db)
	prefsRepo := repository.NewPreferencesRepository(db)

	// Services
	authService := service.NewAuthService(memberRepo, jwtManager)
	directoryService := service.NewDirectoryService(memberRepo, cacheService)
	settingsService := service.NewSettingsService(memberRepo, prefsRepo, s3Client, cacheService)
	conversationService := service.NewConversationService(convRepo, msgRepo, memberRepo, prefsRepo, ws.NewPusher(hub))
	eventService := service.NewEventService(eventRepo)
	documentService := service.NewDocumentService(docRepo, s3Client)
	blogService := service.NewBlogService(blogRepo, memberRepo, cacheService)
	marketingService := service.NewMarketingService(marketingRepo, cacheService)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	messageHandler := handler.NewMessageHandler(conversationService)
	eventHandler := handler.NewEventHandler(eventService)
	documentHandler := handler.NewDocumentHandler(documentService)
	blogHandler := handler.NewBlogHandler(blogService)
	marketingHandler := handler.NewMarketingHandler(marketingService)
	wsHandler := handler.NewWSHandler(hub, cfg.CORS.AllowOrigins)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())
	if redisClient != nil && !cfg.IsDevelopment() {
		router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "adec-web",
			"time":    time.Now().Unix(),
		})
	})
	// The UI serves doc.json from the docs package generated by `swag init`.
	// Without that generation step the page loads but reports a missing spec.
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Setup(router,
		authHandler,
		directoryHandler,
		settingsHandler,
		messageHandler,
		eventHandler,
		documentHandler,
		blogHandler,
		marketingHandler,
		wsHandler,
		jwtManager,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
