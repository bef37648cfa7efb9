package app

import (
	"gorm.io/gorm"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/repos"
)

type Repos struct {
	Cliente     repos.ClienteRepo
	Estaca      repos.EstacaRepo
	Equipamento repos.EquipamentoRepo
	Leitura     repos.LeituraRepo
	Calibracao  repos.CalibracaoRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Cliente:     repos.NewClienteRepo(db, log),
		Estaca:      repos.NewEstacaRepo(db, log),
		Equipamento: repos.NewEquipamentoRepo(db, log),
		Leitura:     repos.NewLeituraRepo(db, log),
		Calibracao:  repos.NewCalibracaoRepo(db, log),
	}
}
