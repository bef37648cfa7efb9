package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/cedrogeo/pce-sync-backend/internal/handlers"
	"github.com/cedrogeo/pce-sync-backend/internal/observability"
)

type RouterConfig struct {
	AllowOrigins      []string
	Tracing           bool
	Metrics           *observability.Metrics
	SyncHandler       *handlers.SyncHandler
	EnsaioHandler     *handlers.EnsaioHandler
	LeituraHandler    *handlers.LeituraHandler
	CalibracaoHandler *handlers.CalibracaoHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	if cfg.Tracing {
		router.Use(otelgin.Middleware(observability.ServiceName))
	}
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	router.GET("/health", handlers.HealthCheck)
	router.GET("/healthcheck", handlers.HealthCheck)

	// Field collector push. The legacy clients still call /upload and the
	// /sync prefix, so all four spellings stay routed.
	router.POST("/push", cfg.SyncHandler.Push)
	router.POST("/upload", cfg.SyncHandler.Push)
	router.POST("/sync/push", cfg.SyncHandler.Push)
	router.POST("/sync/upload", cfg.SyncHandler.Push)

	// Office views
	router.GET("/ensaios", cfg.EnsaioHandler.List)
	router.GET("/ensaios/:uuid", cfg.EnsaioHandler.Get)
	router.PATCH("/ensaios/:uuid", cfg.EnsaioHandler.Patch)
	router.DELETE("/ensaios/:uuid", cfg.EnsaioHandler.Delete)
	router.POST("/ensaios/duplicar", cfg.EnsaioHandler.Duplicate)

	// Leituras
	router.GET("/leituras", cfg.LeituraHandler.List)
	router.POST("/leituras", cfg.LeituraHandler.Create)
	router.POST("/leituras/batch", cfg.LeituraHandler.BatchPatch)
	router.PATCH("/leituras/:id", cfg.LeituraHandler.Patch)
	router.DELETE("/leituras/:id", cfg.LeituraHandler.Delete)

	// Calibracoes
	router.GET("/calibracoes", cfg.CalibracaoHandler.List)
	router.POST("/calibracoes", cfg.CalibracaoHandler.Create)
	router.PUT("/calibracoes", cfg.CalibracaoHandler.Upsert)
	router.PATCH("/calibracoes/:id", cfg.CalibracaoHandler.Patch)
	router.DELETE("/calibracoes/:id", cfg.CalibracaoHandler.Delete)

	return router
}
