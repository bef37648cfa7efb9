package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

type LeituraRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, leituras []*types.Leitura) error
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Leitura, error)
	ListByEstacaID(ctx context.Context, tx *gorm.DB, estacaID int64) ([]*types.Leitura, error)
	// UpdateFields applies an allow-listed column map to one row and reports
	// whether the row existed.
	UpdateFields(ctx context.Context, tx *gorm.DB, id int64, fields map[string]interface{}) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
	DeleteByEstacaID(ctx context.Context, tx *gorm.DB, estacaID int64) error
}

type leituraRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeituraRepo(db *gorm.DB, baseLog *logger.Logger) LeituraRepo {
	return &leituraRepo{db: db, log: baseLog.With("repo", "LeituraRepo")}
}

func (lr *leituraRepo) CreateBatch(ctx context.Context, tx *gorm.DB, leituras []*types.Leitura) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if len(leituras) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&leituras).Error
}

func (lr *leituraRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Leitura, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var result types.Leitura
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (lr *leituraRepo) ListByEstacaID(ctx context.Context, tx *gorm.DB, estacaID int64) ([]*types.Leitura, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var results []*types.Leitura
	if err := transaction.WithContext(ctx).
		Where("estaca_id = ?", estacaID).
		Order("estagio ASC, row_ord ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *leituraRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id int64, fields map[string]interface{}) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if len(fields) == 0 {
		var count int64
		if err := transaction.WithContext(ctx).
			Model(&types.Leitura{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}
	result := transaction.WithContext(ctx).
		Model(&types.Leitura{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (lr *leituraRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Leitura{}).Error
}

func (lr *leituraRepo) DeleteByEstacaID(ctx context.Context, tx *gorm.DB, estacaID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Where("estaca_id = ?", estacaID).
		Delete(&types.Leitura{}).Error
}
