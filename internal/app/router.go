package app

import (
	"github.com/gin-gonic/gin"

	"github.com/cedrogeo/pce-sync-backend/internal/observability"
	"github.com/cedrogeo/pce-sync-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, metrics *observability.Metrics) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowOrigins:      cfg.AllowOrigins,
		Tracing:           observability.TracingEnabled(),
		Metrics:           metrics,
		SyncHandler:       handlerset.Sync,
		EnsaioHandler:     handlerset.Ensaio,
		LeituraHandler:    handlerset.Leitura,
		CalibracaoHandler: handlerset.Calibracao,
	})
}
