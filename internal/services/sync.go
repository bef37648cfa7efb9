package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/repos"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

// SyncService reconciles a field push bundle against the store: cliente
// upsert by natural key, estaca resolution by uuid then natural key, append
// of the instrument snapshot and full replacement of the leitura set. The
// whole bundle commits or rolls back as one transaction.
type SyncService interface {
	Push(ctx context.Context, payload *types.PushPayload) (uuid.UUID, error)
}

type syncService struct {
	db              *gorm.DB
	log             *logger.Logger
	clienteRepo     repos.ClienteRepo
	estacaRepo      repos.EstacaRepo
	equipamentoRepo repos.EquipamentoRepo
	leituraRepo     repos.LeituraRepo
}

func NewSyncService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clienteRepo repos.ClienteRepo,
	estacaRepo repos.EstacaRepo,
	equipamentoRepo repos.EquipamentoRepo,
	leituraRepo repos.LeituraRepo,
) SyncService {
	return &syncService{
		db:              db,
		log:             baseLog.With("service", "SyncService"),
		clienteRepo:     clienteRepo,
		estacaRepo:      estacaRepo,
		equipamentoRepo: equipamentoRepo,
		leituraRepo:     leituraRepo,
	}
}

func (ss *syncService) Push(ctx context.Context, payload *types.PushPayload) (uuid.UUID, error) {
	codigoObra := strings.TrimSpace(payload.Cliente.CodigoObra)
	estacaNum := strings.TrimSpace(payload.Estaca.EstacaNum)
	estUUID := payload.Estaca.UUID

	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clienteID, err := ss.upsertCliente(ctx, tx, codigoObra, &payload.Cliente)
		if err != nil {
			return err
		}

		estacaID, err := ss.resolveEstaca(ctx, tx, clienteID, codigoObra, estacaNum, payload)
		if err != nil {
			return err
		}

		if payload.Equipamento != nil {
			snapshot := equipamentoFromInput(payload.Equipamento)
			snapshot.EstacaID = estacaID
			if err := ss.equipamentoRepo.Create(ctx, tx, snapshot); err != nil {
				return fmt.Errorf("insert equipamento: %w", err)
			}
		}

		// Leituras are replaced as a set, never merged.
		if err := ss.leituraRepo.DeleteByEstacaID(ctx, tx, estacaID); err != nil {
			return fmt.Errorf("clear leituras: %w", err)
		}
		rows := make([]*types.Leitura, 0, len(payload.Leituras))
		for i := range payload.Leituras {
			row := leituraFromInput(&payload.Leituras[i])
			row.EstacaID = estacaID
			rows = append(rows, row)
		}
		if err := ss.leituraRepo.CreateBatch(ctx, tx, rows); err != nil {
			return fmt.Errorf("insert leituras: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return estUUID, nil
}

func (ss *syncService) upsertCliente(ctx context.Context, tx *gorm.DB, codigoObra string, in *types.ClienteIn) (int64, error) {
	existing, err := ss.clienteRepo.GetByNaturalKey(ctx, tx, codigoObra, in.DataEnsaio)
	if err != nil {
		return 0, fmt.Errorf("lookup cliente: %w", err)
	}
	cliente := clienteFromInput(in)
	cliente.CodigoObra = codigoObra
	if existing != nil {
		cliente.ID = existing.ID
		if err := ss.clienteRepo.Update(ctx, tx, cliente); err != nil {
			return 0, fmt.Errorf("update cliente: %w", err)
		}
		return existing.ID, nil
	}
	if err := ss.clienteRepo.Create(ctx, tx, cliente); err != nil {
		return 0, fmt.Errorf("insert cliente: %w", err)
	}
	return cliente.ID, nil
}

// resolveEstaca runs the reconciliation decision tree and returns the
// surrogate key the child rows hang off.
func (ss *syncService) resolveEstaca(ctx context.Context, tx *gorm.DB, clienteID int64, codigoObra, estacaNum string, payload *types.PushPayload) (int64, error) {
	estUUID := payload.Estaca.UUID

	byUUID, err := ss.estacaRepo.GetByUUID(ctx, tx, estUUID)
	if err != nil {
		return 0, fmt.Errorf("lookup estaca by uuid: %w", err)
	}
	if byUUID != nil {
		// Known uuid: update in place, backfill provenance if this row
		// predates the origem columns.
		updated := byUUID
		applyEstacaInput(updated, &payload.Estaca, estacaNum)
		updated.ClienteID = clienteID
		if updated.Origem == "" {
			updated.Origem = types.OrigemCampo
		}
		if updated.UUIDOrigem == uuid.Nil {
			updated.UUIDOrigem = updated.UUID
		}
		if err := ss.estacaRepo.Update(ctx, tx, updated); err != nil {
			return 0, fmt.Errorf("update estaca: %w", err)
		}
		return updated.ID, nil
	}

	var byNaturalKey *types.Estaca
	if codigoObra != "" && estacaNum != "" {
		byNaturalKey, err = ss.estacaRepo.GetLatestByNaturalKey(ctx, tx, codigoObra, estacaNum)
		if err != nil {
			return 0, fmt.Errorf("lookup estaca by natural key: %w", err)
		}
	}

	if byNaturalKey != nil {
		if !payload.Overwrite {
			return 0, &ConflictError{
				CodigoObra:   codigoObra,
				EstacaNum:    estacaNum,
				ExistingUUID: byNaturalKey.UUID.String(),
			}
		}
		// Identity transplant: the row keeps its surrogate key but now
		// answers to the incoming uuid. Field-origin rows always
		// self-reference.
		transplanted := byNaturalKey
		applyEstacaInput(transplanted, &payload.Estaca, estacaNum)
		transplanted.UUID = estUUID
		transplanted.ClienteID = clienteID
		transplanted.Origem = types.OrigemCampo
		transplanted.UUIDOrigem = estUUID
		transplanted.Revisao = nil
		if err := ss.estacaRepo.Update(ctx, tx, transplanted); err != nil {
			return 0, fmt.Errorf("overwrite estaca: %w", err)
		}
		return transplanted.ID, nil
	}

	created := &types.Estaca{}
	applyEstacaInput(created, &payload.Estaca, estacaNum)
	created.UUID = estUUID
	created.ClienteID = clienteID
	created.Origem = types.OrigemCampo
	created.UUIDOrigem = estUUID
	if err := ss.estacaRepo.Create(ctx, tx, created); err != nil {
		return 0, fmt.Errorf("insert estaca: %w", err)
	}
	return created.ID, nil
}

func clienteFromInput(in *types.ClienteIn) *types.Cliente {
	return &types.Cliente{
		CodigoObra:  in.CodigoObra,
		DataEnsaio:  in.DataEnsaio,
		ClienteNome: in.ClienteNome,
		RespObra:    in.RespObra,
		TecCedro:    in.TecCedro,
		Endereco:    in.Endereco,
		Cidade:      in.Cidade,
		Sondagem:    in.Sondagem,
	}
}

func applyEstacaInput(estaca *types.Estaca, in *types.EstacaIn, estacaNum string) {
	estaca.Carregamento = in.Carregamento
	estaca.EstacaNum = estacaNum
	estaca.TipoEstaca = in.TipoEstaca
	estaca.DiametroCm = in.DiametroCm
	estaca.ProfundidadeM = in.ProfundidadeM
	estaca.CargaAdmTf = in.CargaAdmTf
	estaca.CargaEnsaioTf = in.CargaEnsaioTf
}

func equipamentoFromInput(in *types.EquipamentoIn) *types.Equipamento {
	return &types.Equipamento{
		Leitura:         in.Leitura,
		CilindroSerie:   in.CilindroSerie,
		CilindroAreaCm2: in.CilindroAreaCm2,
		CelulaSerie:     in.CelulaSerie,
		LvdtSerie01:     in.LvdtSerie01,
		LvdtSerie02:     in.LvdtSerie02,
		LvdtSerie03:     in.LvdtSerie03,
		LvdtSerie04:     in.LvdtSerie04,
	}
}

func leituraFromInput(in *types.LeituraIn) *types.Leitura {
	return &types.Leitura{
		Estagio:         in.Estagio,
		RowOrd:          in.RowOrd,
		CargaTf:         in.CargaTf,
		PressaoKgfCm2:   in.PressaoKgfCm2,
		Horario:         in.Horario,
		TempoEstagio:    in.TempoEstagio,
		TempoEstagioMin: in.TempoEstagioMin,
		TempoTotal:      in.TempoTotal,
		Leitura01:       in.Leitura01,
		Leitura02:       in.Leitura02,
		Leitura03:       in.Leitura03,
		Leitura04:       in.Leitura04,
		Parcial01:       in.Parcial01,
		Parcial02:       in.Parcial02,
		Parcial03:       in.Parcial03,
		Parcial04:       in.Parcial04,
		Total01:         in.Total01,
		Total02:         in.Total02,
		Total03:         in.Total03,
		Total04:         in.Total04,
		TotalMedia:      in.TotalMedia,
		Estabilizado:    in.Estabilizado,
		Porcentagem:     in.Porcentagem,
		Grafico:         in.Grafico,
		Observacao:      in.Observacao,
		Obrigatoria:     in.Obrigatoria,
		IsReferencia:    in.IsReferencia,
		RefOverride01:   in.RefOverride01,
		RefOverride02:   in.RefOverride02,
		RefOverride03:   in.RefOverride03,
		RefOverride04:   in.RefOverride04,
	}
}
