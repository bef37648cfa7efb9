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

// EnsaioService serves the office views over synced tests: the flat list,
// the composite detail, field edits and full removal.
type EnsaioService interface {
	List(ctx context.Context) ([]*types.EnsaioSummary, error)
	Get(ctx context.Context, ensaioUUID uuid.UUID) (*types.EnsaioDetail, error)
	Patch(ctx context.Context, ensaioUUID uuid.UUID, patch *types.EnsaioPatch) error
	Delete(ctx context.Context, ensaioUUID uuid.UUID) error
}

type ensaioService struct {
	db              *gorm.DB
	log             *logger.Logger
	clienteRepo     repos.ClienteRepo
	estacaRepo      repos.EstacaRepo
	equipamentoRepo repos.EquipamentoRepo
	leituraRepo     repos.LeituraRepo
	calibracaoRepo  repos.CalibracaoRepo
}

func NewEnsaioService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clienteRepo repos.ClienteRepo,
	estacaRepo repos.EstacaRepo,
	equipamentoRepo repos.EquipamentoRepo,
	leituraRepo repos.LeituraRepo,
	calibracaoRepo repos.CalibracaoRepo,
) EnsaioService {
	return &ensaioService{
		db:              db,
		log:             baseLog.With("service", "EnsaioService"),
		clienteRepo:     clienteRepo,
		estacaRepo:      estacaRepo,
		equipamentoRepo: equipamentoRepo,
		leituraRepo:     leituraRepo,
		calibracaoRepo:  calibracaoRepo,
	}
}

func (es *ensaioService) List(ctx context.Context) ([]*types.EnsaioSummary, error) {
	return es.estacaRepo.ListSummaries(ctx, nil)
}

func (es *ensaioService) Get(ctx context.Context, ensaioUUID uuid.UUID) (*types.EnsaioDetail, error) {
	estaca, err := es.estacaRepo.GetByUUID(ctx, nil, ensaioUUID)
	if err != nil {
		return nil, fmt.Errorf("lookup ensaio: %w", err)
	}
	if estaca == nil {
		return nil, ErrNotFound
	}

	cliente, err := es.clienteRepo.GetByID(ctx, nil, estaca.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("lookup cliente: %w", err)
	}

	snapshot, err := es.equipamentoRepo.GetLatestByEstacaID(ctx, nil, estaca.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup equipamento: %w", err)
	}

	leituras, err := es.leituraRepo.ListByEstacaID(ctx, nil, estaca.ID)
	if err != nil {
		return nil, fmt.Errorf("list leituras: %w", err)
	}

	detail := &types.EnsaioDetail{
		Cliente:  cliente,
		Estaca:   estaca,
		Leituras: leituras,
	}
	if snapshot != nil {
		detail.Equipamento = es.enrichEquipamento(ctx, snapshot)
	}
	return detail, nil
}

// enrichEquipamento overlays the calibration table onto the snapshot: the
// cylinder area only when the field app left it blank, the maximum load
// always, since the snapshot never carries it.
func (es *ensaioService) enrichEquipamento(ctx context.Context, snapshot *types.Equipamento) *types.EquipamentoDetail {
	detail := &types.EquipamentoDetail{Equipamento: *snapshot}
	cilindro := strings.TrimSpace(snapshot.CilindroSerie)
	if cilindro == "" {
		return detail
	}
	calibracao, err := es.calibracaoRepo.GetLatestByCilindro(ctx, nil, cilindro)
	if err != nil {
		es.log.Warn("Calibration lookup failed, serving snapshot as-is", "cilindro", cilindro, "error", err)
		return detail
	}
	if calibracao == nil {
		return detail
	}
	if detail.CilindroAreaCm2 == nil {
		area := calibracao.AreaCm2
		detail.CilindroAreaCm2 = &area
	}
	carga := calibracao.CargaMaximaTf
	detail.CargaMaximaTf = &carga
	return detail
}

func (es *ensaioService) Patch(ctx context.Context, ensaioUUID uuid.UUID, patch *types.EnsaioPatch) error {
	return es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		estaca, err := es.estacaRepo.GetByUUID(ctx, tx, ensaioUUID)
		if err != nil {
			return fmt.Errorf("lookup ensaio: %w", err)
		}
		if estaca == nil {
			return ErrNotFound
		}

		if err := es.patchCliente(ctx, tx, estaca.ClienteID, patch); err != nil {
			return err
		}
		if err := es.patchEstaca(ctx, tx, estaca, patch); err != nil {
			return err
		}
		return es.patchEquipamento(ctx, tx, estaca.ID, patch)
	})
}

func (es *ensaioService) patchCliente(ctx context.Context, tx *gorm.DB, clienteID int64, patch *types.EnsaioPatch) error {
	cliente, err := es.clienteRepo.GetByID(ctx, tx, clienteID)
	if err != nil {
		return fmt.Errorf("lookup cliente: %w", err)
	}
	if cliente == nil {
		return nil
	}
	changed := false
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
			changed = true
		}
	}
	setStr(&cliente.CodigoObra, patch.CodigoObra)
	setStr(&cliente.ClienteNome, patch.ClienteNome)
	setStr(&cliente.RespObra, patch.RespObra)
	setStr(&cliente.TecCedro, patch.TecCedro)
	setStr(&cliente.Endereco, patch.Endereco)
	setStr(&cliente.Cidade, patch.Cidade)
	setStr(&cliente.DataEnsaio, patch.DataEnsaio)
	setStr(&cliente.Sondagem, patch.Sondagem)
	if !changed {
		return nil
	}
	if err := es.clienteRepo.Update(ctx, tx, cliente); err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

func (es *ensaioService) patchEstaca(ctx context.Context, tx *gorm.DB, estaca *types.Estaca, patch *types.EnsaioPatch) error {
	changed := false
	if patch.TipoCarregamento != nil {
		estaca.Carregamento = *patch.TipoCarregamento
		changed = true
	}
	if patch.EstacaNum != nil {
		estaca.EstacaNum = *patch.EstacaNum
		changed = true
	}
	if patch.TipoEstaca != nil {
		estaca.TipoEstaca = *patch.TipoEstaca
		changed = true
	}
	if patch.DiametroCm != nil {
		estaca.DiametroCm = patch.DiametroCm
		changed = true
	}
	if patch.ProfundidadeM != nil {
		estaca.ProfundidadeM = patch.ProfundidadeM
		changed = true
	}
	if patch.CargaAdmTf != nil {
		estaca.CargaAdmTf = patch.CargaAdmTf
		changed = true
	}
	if patch.CargaEnsaioTf != nil {
		estaca.CargaEnsaioTf = patch.CargaEnsaioTf
		changed = true
	}
	if !changed {
		return nil
	}
	if err := es.estacaRepo.Update(ctx, tx, estaca); err != nil {
		return fmt.Errorf("update estaca: %w", err)
	}
	return nil
}

// patchEquipamento edits the newest instrument snapshot in place. Tests
// pushed before instrumentation capture have no snapshot; an edit then
// creates the first one.
func (es *ensaioService) patchEquipamento(ctx context.Context, tx *gorm.DB, estacaID int64, patch *types.EnsaioPatch) error {
	if patch.LeituraEquipamento == nil && patch.CilindroSerie == nil && patch.CilindroAreaCm2 == nil &&
		patch.CelulaSerie == nil && patch.Extensometro01 == nil && patch.Extensometro02 == nil &&
		patch.Extensometro03 == nil && patch.Extensometro04 == nil {
		return nil
	}

	snapshot, err := es.equipamentoRepo.GetLatestByEstacaID(ctx, tx, estacaID)
	if err != nil {
		return fmt.Errorf("lookup equipamento: %w", err)
	}
	isNew := snapshot == nil
	if isNew {
		snapshot = &types.Equipamento{EstacaID: estacaID}
	}

	if patch.LeituraEquipamento != nil {
		snapshot.Leitura = *patch.LeituraEquipamento
	}
	if patch.CilindroSerie != nil {
		snapshot.CilindroSerie = *patch.CilindroSerie
	}
	if patch.CilindroAreaCm2 != nil {
		snapshot.CilindroAreaCm2 = patch.CilindroAreaCm2
	}
	if patch.CelulaSerie != nil {
		snapshot.CelulaSerie = *patch.CelulaSerie
	}
	if patch.Extensometro01 != nil {
		snapshot.LvdtSerie01 = *patch.Extensometro01
	}
	if patch.Extensometro02 != nil {
		snapshot.LvdtSerie02 = *patch.Extensometro02
	}
	if patch.Extensometro03 != nil {
		snapshot.LvdtSerie03 = *patch.Extensometro03
	}
	if patch.Extensometro04 != nil {
		snapshot.LvdtSerie04 = *patch.Extensometro04
	}

	if isNew {
		if err := es.equipamentoRepo.Create(ctx, tx, snapshot); err != nil {
			return fmt.Errorf("insert equipamento: %w", err)
		}
		return nil
	}
	if err := es.equipamentoRepo.Update(ctx, tx, snapshot); err != nil {
		return fmt.Errorf("update equipamento: %w", err)
	}
	return nil
}

func (es *ensaioService) Delete(ctx context.Context, ensaioUUID uuid.UUID) error {
	return es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		estaca, err := es.estacaRepo.GetByUUID(ctx, tx, ensaioUUID)
		if err != nil {
			return fmt.Errorf("lookup ensaio: %w", err)
		}
		if estaca == nil {
			return ErrNotFound
		}

		if err := es.leituraRepo.DeleteByEstacaID(ctx, tx, estaca.ID); err != nil {
			return fmt.Errorf("delete leituras: %w", err)
		}
		if err := es.equipamentoRepo.DeleteByEstacaID(ctx, tx, estaca.ID); err != nil {
			return fmt.Errorf("delete equipamentos: %w", err)
		}
		if err := es.estacaRepo.Delete(ctx, tx, estaca.ID); err != nil {
			return fmt.Errorf("delete estaca: %w", err)
		}

		// The cliente row is shared per obra+data; drop it only when this
		// was its last estaca.
		remaining, err := es.estacaRepo.CountByClienteID(ctx, tx, estaca.ClienteID)
		if err != nil {
			return fmt.Errorf("count sibling estacas: %w", err)
		}
		if remaining == 0 {
			if err := es.clienteRepo.Delete(ctx, tx, estaca.ClienteID); err != nil {
				return fmt.Errorf("delete cliente: %w", err)
			}
		}
		return nil
	})
}
