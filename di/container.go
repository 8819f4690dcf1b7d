package di

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"terre-server/api"
	"terre-server/api/snapshot"
	"terre-server/config"
	"terre-server/dao/redis"
	"terre-server/db"
	"terre-server/resources"
	"terre-server/server"
	"terre-server/server/handlers"
	services "terre-server/service"
	"terre-server/service/concierge"
)

// Container holds all application dependencies.
type Container struct {
	Config                 *config.Config
	RedisClient            db.RedisClient
	RedisBusinessDao       *redis.RedisBusinessDAO
	SnapshotAPI            snapshot.SnapshotAPI
	BusinessProvider       *services.BusinessProvider
	BusinessService        *services.BusinessService
	Generator              concierge.Generator
	SessionService         *services.SessionService
	StatusRefresherService *services.StatusRefresherService
	BusinessHandler        *handlers.BusinessHandler
	SessionHandler         *handlers.SessionHandler
	ConciergeHandler       *handlers.ConciergeHandler
	MuxRouter              *mux.Router
	Router                 *server.Router
	TerreHttpServer        *server.TerreHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(cfg *config.Config) *Container {
	log.Infof("[Container] Initializing container - env: %s", cfg.Env)
	ctx := context.Background()

	redisClient := newRedisClient(ctx, cfg)

	// Initialize Redis Business DAO
	redisBusinessDao := redis.NewRedisBusinessDAO(redisClient)

	// Snapshot source: a local file when configured, the remote endpoint otherwise
	var snapshotApi snapshot.SnapshotAPI
	if cfg.SnapshotFile != "" {
		log.Infof("[Container] Using snapshot file %s", cfg.SnapshotFile)
		snapshotApi = snapshot.NewSnapshotApiClientMock(cfg.SnapshotFile)
	} else {
		log.Infof("[Container] Using snapshot endpoint %s%s", cfg.SnapshotBaseURL, cfg.SnapshotPath)
		if cfg.SnapshotPath == "/"+config.PUBLISHED_SNAPSHOT_FILE {
			log.Infof("[Container] Without %s under %s the endpoint serves the bundled dataset",
				config.PUBLISHED_SNAPSHOT_FILE, cfg.PublicDir())
		}
		httpClient := api.NewHTTPClient(cfg.SnapshotBaseURL, time.Duration(cfg.SnapshotTimeoutSeconds)*time.Second)
		snapshotApi = snapshot.NewSnapshotApiClient(httpClient, cfg.SnapshotPath)
	}

	businessProvider := services.NewBusinessProvider(snapshotApi, resources.FallbackBusinesses)

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warnf("[Container] Unknown timezone %q, using local time: %v", cfg.Timezone, err)
		location = time.Local
	}
	businessService := services.NewBusinessService(businessProvider, redisBusinessDao, location)

	generator := newGenerator(ctx, cfg)

	sessionService := services.NewSessionService(
		businessService,
		generator,
		time.Duration(cfg.SessionIdleMinutes)*time.Minute)

	statusRefresherService := services.NewStatusRefresherService(businessService, sessionService)

	// Initialize handlers
	publicDir := cfg.PublicDir()
	businessHandler := handlers.NewBusinessHandler(businessService, resources.FallbackBusinesses, publicDir)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	conciergeHandler := handlers.NewConciergeHandler(sessionService)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(businessHandler, sessionHandler, conciergeHandler, muxRouter, publicDir)

	terreHttpServer := server.NewTerreHttpServer(router, muxRouter, cfg.AppPort)
	terreHttpServer.OnStop(statusRefresherService.Stop)
	if closer, ok := generator.(interface{ Close() error }); ok {
		terreHttpServer.OnStop(func() {
			if err := closer.Close(); err != nil {
				log.Warnf("[Container] Closing Gemini client: %v", err)
			}
		})
	}

	return &Container{
		Config:                 cfg,
		RedisClient:            redisClient,
		RedisBusinessDao:       redisBusinessDao,
		SnapshotAPI:            snapshotApi,
		BusinessProvider:       businessProvider,
		BusinessService:        businessService,
		Generator:              generator,
		SessionService:         sessionService,
		StatusRefresherService: statusRefresherService,
		BusinessHandler:        businessHandler,
		SessionHandler:         sessionHandler,
		ConciergeHandler:       conciergeHandler,
		MuxRouter:              muxRouter,
		Router:                 router,
		TerreHttpServer:        terreHttpServer,
	}
}

// newRedisClient connects to Redis. Outside production an unreachable
// server is replaced by the in-memory index.
func newRedisClient(ctx context.Context, cfg *config.Config) db.RedisClient {
	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	redisClient := db.NewGeoRedisClient(ctx, redisInternalClient)
	if err := redisClient.Ping(); err != nil {
		if cfg.IsProduction() {
			panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
		}
		log.Warnf("[Container] Redis unreachable at %s, using in-memory geo index: %v", cfg.RedisAddr, err)
		_ = redisInternalClient.Close()
		return db.NewMockRedisClient(ctx)
	}
	return redisClient
}

func newGenerator(ctx context.Context, cfg *config.Config) concierge.Generator {
	if cfg.GeminiAPIKey == "" {
		log.Warnf("[Container] GEMINI_API_KEY not set, the concierge will only apologize")
		return concierge.UnconfiguredGenerator{}
	}

	generator, err := concierge.NewGeminiGenerator(ctx, concierge.GeminiSettings{
		APIKey:            cfg.GeminiAPIKey,
		Model:             cfg.GeminiModel,
		Temperature:       cfg.GeminiTemperature,
		MaxOutputTokens:   cfg.GeminiMaxOutputTokens,
		RequestsPerMinute: cfg.GeminiRequestsPerMinute,
	})
	if err != nil {
		log.Errorf("[Container] Gemini client unavailable: %v", err)
		return concierge.UnconfiguredGenerator{}
	}
	log.Infof("[Container] Using Gemini model %s", cfg.GeminiModel)
	return generator
}
