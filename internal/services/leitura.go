package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/repos"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

// LeituraService covers the office-side row edits that fall outside a full
// push: listing, ad-hoc inserts, single-row patches and the batch patch the
// spreadsheet view commits on save.
type LeituraService interface {
	ListByEstacaID(ctx context.Context, estacaID int64) ([]*types.Leitura, error)
	Insert(ctx context.Context, estacaID int64, rows []types.LeituraIn) ([]int64, error)
	PatchFields(ctx context.Context, id int64, patch *types.LeituraPatch) error
	Delete(ctx context.Context, id int64) error
	BatchPatch(ctx context.Context, req *types.LeiturasBatchRequest) (int, error)
}

type leituraService struct {
	db          *gorm.DB
	log         *logger.Logger
	estacaRepo  repos.EstacaRepo
	leituraRepo repos.LeituraRepo
}

func NewLeituraService(db *gorm.DB, baseLog *logger.Logger, estacaRepo repos.EstacaRepo, leituraRepo repos.LeituraRepo) LeituraService {
	return &leituraService{
		db:          db,
		log:         baseLog.With("service", "LeituraService"),
		estacaRepo:  estacaRepo,
		leituraRepo: leituraRepo,
	}
}

func (ls *leituraService) ListByEstacaID(ctx context.Context, estacaID int64) ([]*types.Leitura, error) {
	return ls.leituraRepo.ListByEstacaID(ctx, nil, estacaID)
}

func (ls *leituraService) Insert(ctx context.Context, estacaID int64, rows []types.LeituraIn) ([]int64, error) {
	batch := make([]*types.Leitura, 0, len(rows))
	for i := range rows {
		row := leituraFromInput(&rows[i])
		row.EstacaID = estacaID
		batch = append(batch, row)
	}
	if err := ls.leituraRepo.CreateBatch(ctx, nil, batch); err != nil {
		return nil, fmt.Errorf("insert leituras: %w", err)
	}
	ids := make([]int64, 0, len(batch))
	for _, row := range batch {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (ls *leituraService) PatchFields(ctx context.Context, id int64, patch *types.LeituraPatch) error {
	found, err := ls.leituraRepo.UpdateFields(ctx, nil, id, leituraPatchColumns(patch))
	if err != nil {
		return fmt.Errorf("patch leitura: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (ls *leituraService) Delete(ctx context.Context, id int64) error {
	return ls.leituraRepo.Delete(ctx, nil, id)
}

// BatchPatch applies every item or none. Each target row must belong to the
// named ensaio; a stale row id from another test aborts the whole batch.
func (ls *leituraService) BatchPatch(ctx context.Context, req *types.LeiturasBatchRequest) (int, error) {
	updated := 0
	err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		estaca, err := ls.estacaRepo.GetByUUID(ctx, tx, req.EnsaioUUID)
		if err != nil {
			return fmt.Errorf("lookup ensaio: %w", err)
		}
		if estaca == nil {
			return ErrNotFound
		}

		for _, item := range req.Items {
			row, err := ls.leituraRepo.GetByID(ctx, tx, item.LeituraID)
			if err != nil {
				return fmt.Errorf("lookup leitura %d: %w", item.LeituraID, err)
			}
			if row == nil || row.EstacaID != estaca.ID {
				return fmt.Errorf("%w: leitura %d does not belong to ensaio %s", ErrValidation, item.LeituraID, req.EnsaioUUID)
			}
			fields := leituraPatchColumns(&item.Patch)
			if len(fields) == 0 {
				continue
			}
			if _, err := ls.leituraRepo.UpdateFields(ctx, tx, item.LeituraID, fields); err != nil {
				return fmt.Errorf("patch leitura %d: %w", item.LeituraID, err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// leituraPatchColumns flattens a patch into the column map the repo layer
// feeds to Updates. Only non-nil fields land in the map, so absent keys stay
// untouched and explicit nulls are not expressible, matching the office UI.
func leituraPatchColumns(patch *types.LeituraPatch) map[string]interface{} {
	fields := map[string]interface{}{}
	putF := func(col string, v *float64) {
		if v != nil {
			fields[col] = *v
		}
	}
	putS := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	putI := func(col string, v *int) {
		if v != nil {
			fields[col] = *v
		}
	}

	putF("carga_tf", patch.CargaTf)
	putF("pressao_kgf_cm2", patch.PressaoKgfCm2)
	putS("horario", patch.Horario)
	putF("tempo_estagio", patch.TempoEstagio)
	putF("tempo_estagio_min", patch.TempoEstagioMin)
	putS("tempo_total", patch.TempoTotal)
	putF("leitura_01", patch.Leitura01)
	putF("leitura_02", patch.Leitura02)
	putF("leitura_03", patch.Leitura03)
	putF("leitura_04", patch.Leitura04)
	putF("parcial_01", patch.Parcial01)
	putF("parcial_02", patch.Parcial02)
	putF("parcial_03", patch.Parcial03)
	putF("parcial_04", patch.Parcial04)
	putF("total_01", patch.Total01)
	putF("total_02", patch.Total02)
	putF("total_03", patch.Total03)
	putF("total_04", patch.Total04)
	putF("total_media", patch.TotalMedia)
	putS("estabilizado", patch.Estabilizado)
	putF("porcentagem", patch.Porcentagem)
	putS("grafico", patch.Grafico)
	putS("observacao", patch.Observacao)
	putI("obrigatoria", patch.Obrigatoria)
	putI("is_referencia", patch.IsReferencia)
	putI("ref_override_01", patch.RefOverride01)
	putI("ref_override_02", patch.RefOverride02)
	putI("ref_override_03", patch.RefOverride03)
	putI("ref_override_04", patch.RefOverride04)
	return fields
}
