package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkpulse-go/internal/handler"
	"linkpulse-go/internal/i18n"
	"linkpulse-go/internal/ipinfo"
	"linkpulse-go/internal/middleware"
	"linkpulse-go/internal/repository"
	"linkpulse-go/internal/service"
	"linkpulse-go/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func initConfig() {
	wd, _ := os.Getwd()
	log.Printf("Loading config from: %s/config.yaml", wd)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
}

func startServer(r *gin.Engine) {
	addr := viper.GetString("server.addr")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// 启动服务器
	go func() {
		logging.Logger.Info("Server is running on " + addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := repository.RedisPool.Close(); err != nil {
		logging.Logger.Warn("Redis pool close failed", zap.Error(err))
	}

	logging.Logger.Info("Server exiting")
}

func main() {

	initConfig()
	// 初始化日志系统
	logging.InitLoggerFromConfig()

	logging.Logger.Info("Application started")

	repository.InitDB(logging.Logger, logging.AtomicLevel)
	repository.InitRedis()

	// 初始化 i18n（加载 TOML 文件）
	bundle, err := i18n.InitI18n([]string{
		"./i18n/en.toml",
		"./i18n/zh.toml",
	}, "en")
	if err != nil {
		panic(err)
	}

	// 组装依赖
	linkRepo := repository.NewLinkRepository(repository.DB)
	analyticsRepo := repository.NewAnalyticsRepository(repository.DB)
	linkCache := repository.NewRedisLinkCache(repository.RedisPool, logging.Logger)
	counterStore := repository.NewRedisCounterStore(repository.RedisPool, logging.Logger)

	geoCache := ipinfo.NewMemoryCache(30 * time.Minute)
	geoClient := ipinfo.NewClient(viper.GetString("ipinfo.base_url"), geoCache, logging.Logger)

	linkService := service.NewLinkService(linkRepo, linkCache, logging.Logger)
	resolverService := service.NewResolverService(linkRepo, linkCache, logging.Logger)
	attributorService := service.NewAttributorService(linkRepo, analyticsRepo, counterStore, geoClient, logging.Logger)
	statsService := service.NewStatsService(repository.DB, linkRepo, analyticsRepo, counterStore, logging.Logger)

	linkHandler := handler.NewLinkHandler(linkService)
	statsHandler := handler.NewStatsHandler(statsService)
	redirectHandler := handler.NewRedirectHandler(resolverService, attributorService)

	r := gin.New()
	r.Use(gin.Recovery())

	// 注册全局错误中间件
	r.Use(middleware.GlobalErrorMiddleware())
	r.Use(middleware.ZapGinLogger(logging.Logger))
	r.Use(middleware.CorsMiddleware())
	// 使用 i18n 中间件
	r.Use(middleware.I18nMiddleware(bundle))

	api := r.Group("/api")
	{
		api.POST("/links", linkHandler.CreateLink)
		api.GET("/links", linkHandler.ListLinks)
		api.PUT("/links/status/:id", linkHandler.UpdateLinkStatus)
		api.PUT("/links/:id", linkHandler.UpdateLink)
		api.GET("/links/:id/stats", statsHandler.GetLinkStats)
		api.GET("/links/:id/daily", statsHandler.GetDailyStats)
	}

	// 兜底的短码跳转（避免与 /api 路由冲突）
	r.Use(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next() // 只处理 GET 请求
			return
		}
		redirectHandler.Redirect(c)
	})

	c := cron.New()

	// 添加定时任务：每十分钟执行一次
	_, addErr := c.AddFunc("*/10 * * * *", func() {
		if err := statsService.FlushDailyStats(); err != nil {
			logging.Logger.Error("Failed to flush daily stats via cron job", zap.Error(err))
		}
	})

	if addErr != nil {
		logging.Logger.Fatal("Failed to schedule cron job", zap.Error(addErr))
	}

	c.Start()

	startServer(r)
}
