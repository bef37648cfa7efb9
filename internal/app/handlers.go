package app

import (
	"github.com/cedrogeo/pce-sync-backend/internal/handlers"
	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
)

type Handlers struct {
	Sync       *handlers.SyncHandler
	Ensaio     *handlers.EnsaioHandler
	Leitura    *handlers.LeituraHandler
	Calibracao *handlers.CalibracaoHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Sync:       handlers.NewSyncHandler(log, serviceset.Sync),
		Ensaio:     handlers.NewEnsaioHandler(log, serviceset.Ensaio, serviceset.Duplicate),
		Leitura:    handlers.NewLeituraHandler(log, serviceset.Leitura),
		Calibracao: handlers.NewCalibracaoHandler(log, serviceset.Calibracao),
	}
}
