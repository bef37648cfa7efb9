package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

type EquipamentoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, equipamento *types.Equipamento) error
	Update(ctx context.Context, tx *gorm.DB, equipamento *types.Equipamento) error
	// GetLatestByEstacaID returns the current snapshot (highest id), or nil.
	GetLatestByEstacaID(ctx context.Context, tx *gorm.DB, estacaID int64) (*types.Equipamento, error)
	ListByEstacaID(ctx context.Context, tx *gorm.DB, estacaID int64) ([]*types.Equipamento, error)
	DeleteByEstacaID(ctx context.Context, tx *gorm.DB, estacaID int64) error
}

type equipamentoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEquipamentoRepo(db *gorm.DB, baseLog *logger.Logger) EquipamentoRepo {
	return &equipamentoRepo{db: db, log: baseLog.With("repo", "EquipamentoRepo")}
}

func (er *equipamentoRepo) Create(ctx context.Context, tx *gorm.DB, equipamento *types.Equipamento) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).Create(equipamento).Error
}

func (er *equipamentoRepo) Update(ctx context.Context, tx *gorm.DB, equipamento *types.Equipamento) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).Save(equipamento).Error
}

func (er *equipamentoRepo) GetLatestByEstacaID(ctx context.Context, tx *gorm.DB, estacaID int64) (*types.Equipamento, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var result types.Equipamento
	if err := transaction.WithContext(ctx).
		Where("estaca_id = ?", estacaID).
		Order("id DESC").
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (er *equipamentoRepo) ListByEstacaID(ctx context.Context, tx *gorm.DB, estacaID int64) ([]*types.Equipamento, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.Equipamento
	if err := transaction.WithContext(ctx).
		Where("estaca_id = ?", estacaID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *equipamentoRepo) DeleteByEstacaID(ctx context.Context, tx *gorm.DB, estacaID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).
		Where("estaca_id = ?", estacaID).
		Delete(&types.Equipamento{}).Error
}
