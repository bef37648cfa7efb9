package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

type ClienteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, cliente *types.Cliente) error
	Update(ctx context.Context, tx *gorm.DB, cliente *types.Cliente) error
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Cliente, error)
	GetByNaturalKey(ctx context.Context, tx *gorm.DB, codigoObra, dataEnsaio string) (*types.Cliente, error)
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
}

type clienteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClienteRepo(db *gorm.DB, baseLog *logger.Logger) ClienteRepo {
	return &clienteRepo{db: db, log: baseLog.With("repo", "ClienteRepo")}
}

func (cr *clienteRepo) Create(ctx context.Context, tx *gorm.DB, cliente *types.Cliente) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Create(cliente).Error
}

func (cr *clienteRepo) Update(ctx context.Context, tx *gorm.DB, cliente *types.Cliente) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Save(cliente).Error
}

func (cr *clienteRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Cliente, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Cliente
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

func (cr *clienteRepo) GetByNaturalKey(ctx context.Context, tx *gorm.DB, codigoObra, dataEnsaio string) (*types.Cliente, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Cliente
	if err := transaction.WithContext(ctx).
		Where("codigo_obra = ? AND data_ensaio = ?", codigoObra, dataEnsaio).
		Order("id ASC").
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (cr *clienteRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Cliente{}).Error
}
