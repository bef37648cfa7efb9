package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

type EstacaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, estaca *types.Estaca) error
	Update(ctx context.Context, tx *gorm.DB, estaca *types.Estaca) error
	GetByUUID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Estaca, error)
	// GetLatestByNaturalKey resolves the newest estaca matching
	// codigo_obra+estaca_num across all clientes. Office duplication can
	// leave several matches; the highest id wins.
	GetLatestByNaturalKey(ctx context.Context, tx *gorm.DB, codigoObra, estacaNum string) (*types.Estaca, error)
	ListByOrigem(ctx context.Context, tx *gorm.DB, uuidOrigem uuid.UUID) ([]*types.Estaca, error)
	ListSummaries(ctx context.Context, tx *gorm.DB) ([]*types.EnsaioSummary, error)
	CountByClienteID(ctx context.Context, tx *gorm.DB, clienteID int64) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
}

type estacaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEstacaRepo(db *gorm.DB, baseLog *logger.Logger) EstacaRepo {
	return &estacaRepo{db: db, log: baseLog.With("repo", "EstacaRepo")}
}

func (er *estacaRepo) Create(ctx context.Context, tx *gorm.DB, estaca *types.Estaca) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).Create(estaca).Error
}

func (er *estacaRepo) Update(ctx context.Context, tx *gorm.DB, estaca *types.Estaca) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).Save(estaca).Error
}

func (er *estacaRepo) GetByUUID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Estaca, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var result types.Estaca
	if err := transaction.WithContext(ctx).
		Where("uuid = ?", id).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (er *estacaRepo) GetLatestByNaturalKey(ctx context.Context, tx *gorm.DB, codigoObra, estacaNum string) (*types.Estaca, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var result types.Estaca
	if err := transaction.WithContext(ctx).
		Select("estacas.*").
		Joins("JOIN clientes ON clientes.id = estacas.cliente_id").
		Where("clientes.codigo_obra = ? AND estacas.estaca_num = ?", codigoObra, estacaNum).
		Order("estacas.id DESC").
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (er *estacaRepo) ListByOrigem(ctx context.Context, tx *gorm.DB, uuidOrigem uuid.UUID) ([]*types.Estaca, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.Estaca
	if err := transaction.WithContext(ctx).
		Where("uuid_origem = ?", uuidOrigem).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *estacaRepo) ListSummaries(ctx context.Context, tx *gorm.DB) ([]*types.EnsaioSummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.EnsaioSummary
	if err := transaction.WithContext(ctx).
		Model(&types.Estaca{}).
		Select(`estacas.uuid AS uuid,
			estacas.uuid_origem AS uuid_origem,
			estacas.origem AS origem,
			clientes.data_ensaio AS data_ensaio,
			clientes.codigo_obra AS codigo_obra,
			estacas.estaca_num AS estaca,
			estacas.carregamento AS tipo_carregamento,
			estacas.carga_ensaio_tf AS carga_ensaio_tf,
			estacas.carga_adm_tf AS carga_adm_tf`).
		Joins("JOIN clientes ON clientes.id = estacas.cliente_id").
		Order("clientes.data_ensaio DESC, clientes.codigo_obra ASC, estacas.estaca_num ASC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *estacaRepo) CountByClienteID(ctx context.Context, tx *gorm.DB, clienteID int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Estaca{}).
		Where("cliente_id = ?", clienteID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (er *estacaRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Estaca{}).Error
}
