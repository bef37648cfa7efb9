package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

type CalibracaoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, calibracao *types.Calibracao) error
	List(ctx context.Context, tx *gorm.DB) ([]*types.Calibracao, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Calibracao, error)
	// GetLatestByCilindro returns the newest calibration for a cylinder
	// serial, or nil when none is on file.
	GetLatestByCilindro(ctx context.Context, tx *gorm.DB, cilindro string) (*types.Calibracao, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id int64, fields map[string]interface{}) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id int64) (bool, error)
}

type calibracaoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCalibracaoRepo(db *gorm.DB, baseLog *logger.Logger) CalibracaoRepo {
	return &calibracaoRepo{db: db, log: baseLog.With("repo", "CalibracaoRepo")}
}

func (cr *calibracaoRepo) Create(ctx context.Context, tx *gorm.DB, calibracao *types.Calibracao) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Create(calibracao).Error
}

func (cr *calibracaoRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Calibracao, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Calibracao
	if err := transaction.WithContext(ctx).
		Order("cilindro ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *calibracaoRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Calibracao, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Calibracao
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

func (cr *calibracaoRepo) GetLatestByCilindro(ctx context.Context, tx *gorm.DB, cilindro string) (*types.Calibracao, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Calibracao
	if err := transaction.WithContext(ctx).
		Where("cilindro = ?", cilindro).
		Order("id DESC").
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (cr *calibracaoRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id int64, fields map[string]interface{}) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(fields) == 0 {
		var count int64
		if err := transaction.WithContext(ctx).
			Model(&types.Calibracao{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}
	result := transaction.WithContext(ctx).
		Model(&types.Calibracao{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (cr *calibracaoRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	result := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Calibracao{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
