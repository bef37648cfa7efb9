package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/repos"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

// CalibracaoService manages the cylinder calibration registry consulted by
// the ensaio detail view.
type CalibracaoService interface {
	List(ctx context.Context) ([]*types.Calibracao, error)
	Create(ctx context.Context, in *types.CalibracaoIn) (int64, error)
	Patch(ctx context.Context, id int64, patch *types.CalibracaoPatch) error
	// UpsertByCilindro replaces the current calibration for a cylinder
	// serial, creating it when the serial is new.
	UpsertByCilindro(ctx context.Context, in *types.CalibracaoIn) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type calibracaoService struct {
	db             *gorm.DB
	log            *logger.Logger
	calibracaoRepo repos.CalibracaoRepo
}

func NewCalibracaoService(db *gorm.DB, baseLog *logger.Logger, calibracaoRepo repos.CalibracaoRepo) CalibracaoService {
	return &calibracaoService{
		db:             db,
		log:            baseLog.With("service", "CalibracaoService"),
		calibracaoRepo: calibracaoRepo,
	}
}

func (cs *calibracaoService) List(ctx context.Context) ([]*types.Calibracao, error) {
	return cs.calibracaoRepo.List(ctx, nil)
}

func (cs *calibracaoService) Create(ctx context.Context, in *types.CalibracaoIn) (int64, error) {
	row := calibracaoFromInput(in)
	if row.Cilindro == "" {
		return 0, fmt.Errorf("%w: cilindro is required", ErrValidation)
	}
	if err := cs.calibracaoRepo.Create(ctx, nil, row); err != nil {
		return 0, fmt.Errorf("insert calibracao: %w", err)
	}
	return row.ID, nil
}

func (cs *calibracaoService) Patch(ctx context.Context, id int64, patch *types.CalibracaoPatch) error {
	fields := map[string]interface{}{}
	if patch.Cilindro != nil {
		cilindro := strings.TrimSpace(*patch.Cilindro)
		if cilindro == "" {
			return fmt.Errorf("%w: cilindro cannot be blank", ErrValidation)
		}
		fields["cilindro"] = cilindro
	}
	if patch.AreaCm2 != nil {
		fields["area_cm2"] = *patch.AreaCm2
	}
	if patch.CargaMaximaTf != nil {
		fields["carga_maxima_tf"] = *patch.CargaMaximaTf
	}
	found, err := cs.calibracaoRepo.UpdateFields(ctx, nil, id, fields)
	if err != nil {
		return fmt.Errorf("patch calibracao: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (cs *calibracaoService) UpsertByCilindro(ctx context.Context, in *types.CalibracaoIn) (int64, error) {
	row := calibracaoFromInput(in)
	if row.Cilindro == "" {
		return 0, fmt.Errorf("%w: cilindro is required", ErrValidation)
	}
	var id int64
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := cs.calibracaoRepo.GetLatestByCilindro(ctx, tx, row.Cilindro)
		if err != nil {
			return fmt.Errorf("lookup calibracao: %w", err)
		}
		if existing != nil {
			fields := map[string]interface{}{
				"area_cm2":        row.AreaCm2,
				"carga_maxima_tf": row.CargaMaximaTf,
			}
			if _, err := cs.calibracaoRepo.UpdateFields(ctx, tx, existing.ID, fields); err != nil {
				return fmt.Errorf("update calibracao: %w", err)
			}
			id = existing.ID
			return nil
		}
		if err := cs.calibracaoRepo.Create(ctx, tx, row); err != nil {
			return fmt.Errorf("insert calibracao: %w", err)
		}
		id = row.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (cs *calibracaoService) Delete(ctx context.Context, id int64) error {
	found, err := cs.calibracaoRepo.Delete(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("delete calibracao: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func calibracaoFromInput(in *types.CalibracaoIn) *types.Calibracao {
	row := &types.Calibracao{Cilindro: strings.TrimSpace(in.Cilindro)}
	if in.AreaCm2 != nil {
		row.AreaCm2 = *in.AreaCm2
	}
	if in.CargaMaximaTf != nil {
		row.CargaMaximaTf = *in.CargaMaximaTf
	}
	return row
}
