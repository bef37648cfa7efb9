package services

import (
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/repos"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

// testEnv wires every service against an in-memory sqlite database so the
// full reconciliation and duplication paths run without Postgres.
type testEnv struct {
	db         *gorm.DB
	sync       SyncService
	ensaio     EnsaioService
	duplicate  DuplicateService
	leitura    LeituraService
	calibracao CalibracaoService

	clienteRepo     repos.ClienteRepo
	estacaRepo      repos.EstacaRepo
	equipamentoRepo repos.EquipamentoRepo
	leituraRepo     repos.LeituraRepo
	calibracaoRepo  repos.CalibracaoRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// A single connection keeps every session on the same in-memory file.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&types.Cliente{},
		&types.Estaca{},
		&types.Equipamento{},
		&types.Leitura{},
		&types.Calibracao{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}

	clienteRepo := repos.NewClienteRepo(db, log)
	estacaRepo := repos.NewEstacaRepo(db, log)
	equipamentoRepo := repos.NewEquipamentoRepo(db, log)
	leituraRepo := repos.NewLeituraRepo(db, log)
	calibracaoRepo := repos.NewCalibracaoRepo(db, log)

	return &testEnv{
		db:              db,
		sync:            NewSyncService(db, log, clienteRepo, estacaRepo, equipamentoRepo, leituraRepo),
		ensaio:          NewEnsaioService(db, log, clienteRepo, estacaRepo, equipamentoRepo, leituraRepo, calibracaoRepo),
		duplicate:       NewDuplicateService(db, log, clienteRepo, estacaRepo, equipamentoRepo, leituraRepo),
		leitura:         NewLeituraService(db, log, estacaRepo, leituraRepo),
		calibracao:      NewCalibracaoService(db, log, calibracaoRepo),
		clienteRepo:     clienteRepo,
		estacaRepo:      estacaRepo,
		equipamentoRepo: equipamentoRepo,
		leituraRepo:     leituraRepo,
		calibracaoRepo:  calibracaoRepo,
	}
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }
