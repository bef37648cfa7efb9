package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
	"github.com/cedrogeo/pce-sync-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	log.Info("Loading environment variables...")
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "pce_sync", log)
	log.Debug("Environment variables loaded")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		// Duplicate key errors must surface as gorm.ErrDuplicatedKey so the
		// duplication retry can distinguish them.
		TranslateError: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.Cliente{},
		&types.Estaca{},
		&types.Equipamento{},
		&types.Leitura{},
		&types.Calibracao{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		table string
		name  string
		sql   string
	}{
		{"estacas", "fk_estacas_cliente_id", `
			ALTER TABLE "estacas"
			ADD CONSTRAINT "fk_estacas_cliente_id"
			FOREIGN KEY ("cliente_id")
			REFERENCES "clientes"("id")
			ON DELETE CASCADE
		`},
		{"equipamentos", "fk_equipamentos_estaca_id", `
			ALTER TABLE "equipamentos"
			ADD CONSTRAINT "fk_equipamentos_estaca_id"
			FOREIGN KEY ("estaca_id")
			REFERENCES "estacas"("id")
			ON DELETE CASCADE
		`},
		{"leituras", "fk_leituras_estaca_id", `
			ALTER TABLE "leituras"
			ADD CONSTRAINT "fk_leituras_estaca_id"
			FOREIGN KEY ("estaca_id")
			REFERENCES "estacas"("id")
			ON DELETE CASCADE
		`},
	}
	for _, constraint := range constraints {
		drop := fmt.Sprintf(`ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q`, constraint.table, constraint.name)
		if err := s.db.Exec(drop).Error; err != nil {
			return fmt.Errorf("failed to drop %s: %w", constraint.name, err)
		}
		if err := s.db.Exec(constraint.sql).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", constraint.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
