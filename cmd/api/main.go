//	@title			Restaurant Picker API
//	@version		1.0
//	@description	Search stored restaurants and pick a few from a candidate list.
//	@BasePath		/

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"restaurant-picker-api/docs"
	"restaurant-picker-api/internal/config"
	"restaurant-picker-api/internal/handler"
	"restaurant-picker-api/internal/logger"
	"restaurant-picker-api/internal/middleware"
	"restaurant-picker-api/internal/picker"
	"restaurant-picker-api/internal/repository"
	"restaurant-picker-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	base := logger.Setup(config.LogLevel, config.LogFormat, os.Stderr)

	if config.Environment != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := repository.Open(context.Background(), config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Str("driver", config.DBDriver).Msg("cannot open store")
	}
	defer store.Close()

	// RATE_LIMIT_RPS=0 turns limiting off
	var limiter *middleware.RateLimiter
	if config.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst)
		defer limiter.Stop()
	}

	r := newRouter(store, base, limiter, config.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:    config.ServerAddress,
		Handler: r,
	}

	go func() {
		log.Info().
			Str("address", config.ServerAddress).
			Str("driver", config.DBDriver).
			Str("environment", config.Environment).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// newRouter wires the layers together and registers every route.
func newRouter(store repository.Store, base zerolog.Logger, limiter *middleware.RateLimiter, corsOrigins []string) *gin.Engine {
	searchService := service.NewSearchService(store)
	restaurantService := service.NewRestaurantService(store)
	pickService := service.NewPickService(picker.New(nil))

	searchHandler := handler.NewSearchHandler(searchService)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService)
	pickHandler := handler.NewPickHandler(pickService)
	healthHandler := handler.NewHealthHandler(store)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(base),
		middleware.AccessLog(),
		middleware.Metrics(),
		middleware.CORS(corsOrigins),
	)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	restaurants := r.Group("/restaurants")
	if limiter != nil {
		restaurants.Use(limiter.Middleware())
	}
	{
		restaurants.GET("", restaurantHandler.List)
		restaurants.GET("/search", searchHandler.Search)
		restaurants.GET("/nearby", searchHandler.Nearby)
		restaurants.GET("/stats/cuisines", restaurantHandler.Cuisines)
		restaurants.GET("/stats/cities", restaurantHandler.Cities)
		restaurants.GET("/stats/count", restaurantHandler.Count)
		restaurants.GET("/:id", restaurantHandler.Get)
		restaurants.POST("/pick", pickHandler.Pick)
	}

	return r
}
