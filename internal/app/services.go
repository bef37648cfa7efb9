package app

import (
	"gorm.io/gorm"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/services"
)

type Services struct {
	Sync       services.SyncService
	Ensaio     services.EnsaioService
	Duplicate  services.DuplicateService
	Leitura    services.LeituraService
	Calibracao services.CalibracaoService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Sync:       services.NewSyncService(db, log, reposet.Cliente, reposet.Estaca, reposet.Equipamento, reposet.Leitura),
		Ensaio:     services.NewEnsaioService(db, log, reposet.Cliente, reposet.Estaca, reposet.Equipamento, reposet.Leitura, reposet.Calibracao),
		Duplicate:  services.NewDuplicateService(db, log, reposet.Cliente, reposet.Estaca, reposet.Equipamento, reposet.Leitura),
		Leitura:    services.NewLeituraService(db, log, reposet.Estaca, reposet.Leitura),
		Calibracao: services.NewCalibracaoService(db, log, reposet.Calibracao),
	}
}
