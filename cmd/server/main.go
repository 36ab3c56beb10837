package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"calldesk/internal/auth"
	"calldesk/internal/config"
	cronrunner "calldesk/internal/cron"
	"calldesk/internal/db"
	"calldesk/internal/handler"
	"calldesk/internal/lock"
	applog "calldesk/internal/logger"
	"calldesk/internal/repository"
	gormrepository "calldesk/internal/repository/gorm"
	"calldesk/internal/repository/memory"
	"calldesk/internal/service"
	"calldesk/internal/tradingday"
	"calldesk/internal/visibility"

	_ "calldesk/docs"
)

func main() {
	if err := config.LoadDotEnv(os.Getenv("CD_DOTENV")); err != nil {
		panic(err)
	}

	cfgPath := os.Getenv("CD_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("CD_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := applog.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatal("auth.jwt_secret is required")
	}

	checks := map[string]handler.Pinger{}

	var repo repository.Repository
	if strings.TrimSpace(cfg.DB.DSN) == "" {
		logger.Warn("db.dsn is empty, using in-memory store")
		repo = memory.New()
	} else {
		dbConn, err := db.Open(cfg.DB)
		if err != nil {
			logger.Fatal("db open failed", zap.Error(err))
		}
		defer func() {
			_ = db.Close(dbConn)
		}()
		if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
			logger.Fatal("db timezone failed", zap.Error(err))
		}
		if err := db.AutoMigrate(dbConn); err != nil {
			logger.Fatal("db migrate failed", zap.Error(err))
		}
		repo = gormrepository.New(dbConn.Gorm)
		checks["db"] = dbConn
	}

	var locker lock.Locker = lock.Noop{}
	if strings.TrimSpace(cfg.Redis.Addr) != "" {
		redisLocker := lock.NewRedisLocker(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.KeyPrefix, cfg.Redis.LockTTL, cfg.Redis.LockWait)
		defer redisLocker.Close()
		locker = redisLocker
		checks["redis"] = redisLocker
	}

	calendar := &tradingday.Calendar{}
	table := visibility.NewTable(cfg.Visibility.DefaultLimit, cfg.Visibility.TierLimits)
	jwtCfg := auth.JWT{Secret: []byte(cfg.Auth.JWTSecret), Issuer: cfg.Auth.Issuer}
	pagination := handler.Pagination{DefaultLimit: cfg.Pagination.DefaultLimit, MaxLimit: cfg.Pagination.MaxLimit}

	callService := &service.CallService{
		Repo:       repo,
		Locker:     locker,
		Calendar:   calendar,
		Visibility: &table,
		Logger:     logger,
	}
	userService := &service.UserService{
		Repo:       repo,
		Visibility: &table,
		Logger:     logger,
	}

	if cfg.App.Env == "dev" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())
	if cfg.Log.AccessLog {
		engine.Use(applog.AccessLog(logger))
	}

	adminChain := []gin.HandlerFunc{auth.RequireRole(jwtCfg, auth.RoleAdmin), auth.AuditWrites(logger)}
	subscriberChain := []gin.HandlerFunc{auth.RequireRole(jwtCfg, auth.RoleSubscriber), auth.RequireSubscription(userService)}

	healthHandler := &handler.HealthHandler{Checks: checks}
	healthHandler.Register(engine)
	adminCalls := &handler.AdminCallHandler{Service: callService, Pagination: pagination, Middleware: adminChain}
	adminCalls.Register(engine)
	adminUsers := &handler.AdminUserHandler{Service: userService, Pagination: pagination, Middleware: adminChain}
	adminUsers.Register(engine)
	calls := &handler.CallHandler{Service: callService, Pagination: pagination, Middleware: subscriberChain}
	calls.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx, tradingday.Location())
	if cfg.Cron.Enabled && cfg.Expiry.Enabled {
		sweep := &service.ExpirySweepService{
			Repo:      repo,
			Calendar:  calendar,
			TradeType: cfg.Expiry.TradeType,
			Logger:    logger,
		}
		_, err = cronRunner.Add("expiry_sweep", cfg.Cron.ExpirySweep, func(ctx context.Context) error {
			_, err := sweep.Run(ctx)
			return err
		})
		if err != nil {
			logger.Fatal("cron expiry sweep schedule invalid", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server started", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
