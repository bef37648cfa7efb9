package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/repos"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

// origemLabelPrefix is the display prefix of office revision labels. The
// sequence number lives in the revisao column; the label is just its
// rendering and must stay bit-compatible with what the office app shows.
const origemLabelPrefix = "Escritorio"

// duplicateAttempts bounds the retry loop around the (uuid_origem, revisao)
// unique index when two duplications of the same origin race.
const duplicateAttempts = 3

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// DuplicateService deep-copies an estaca (cliente, estaca, equipamentos,
// leituras) under a fresh uuid, stamping the copy with the next office
// revision of its origin lineage.
type DuplicateService interface {
	Duplicate(ctx context.Context, ensaioUUID uuid.UUID) (*types.DuplicarEnsaioResponse, error)
}

type duplicateService struct {
	db              *gorm.DB
	log             *logger.Logger
	clienteRepo     repos.ClienteRepo
	estacaRepo      repos.EstacaRepo
	equipamentoRepo repos.EquipamentoRepo
	leituraRepo     repos.LeituraRepo
}

func NewDuplicateService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clienteRepo repos.ClienteRepo,
	estacaRepo repos.EstacaRepo,
	equipamentoRepo repos.EquipamentoRepo,
	leituraRepo repos.LeituraRepo,
) DuplicateService {
	return &duplicateService{
		db:              db,
		log:             baseLog.With("service", "DuplicateService"),
		clienteRepo:     clienteRepo,
		estacaRepo:      estacaRepo,
		equipamentoRepo: equipamentoRepo,
		leituraRepo:     leituraRepo,
	}
}

func (ds *duplicateService) Duplicate(ctx context.Context, ensaioUUID uuid.UUID) (*types.DuplicarEnsaioResponse, error) {
	var result *types.DuplicarEnsaioResponse
	var err error
	for attempt := 0; attempt < duplicateAttempts; attempt++ {
		result, err = ds.duplicateOnce(ctx, ensaioUUID)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// Lost the revision slot to a concurrent duplication; recompute.
		ds.log.Warn("Revision slot taken, retrying duplication", "ensaio_uuid", ensaioUUID, "attempt", attempt+1)
	}
	return nil, fmt.Errorf("duplicate ensaio: revision contention: %w", err)
}

func (ds *duplicateService) duplicateOnce(ctx context.Context, ensaioUUID uuid.UUID) (*types.DuplicarEnsaioResponse, error) {
	var response *types.DuplicarEnsaioResponse
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		source, err := ds.estacaRepo.GetByUUID(ctx, tx, ensaioUUID)
		if err != nil {
			return fmt.Errorf("lookup ensaio: %w", err)
		}
		if source == nil {
			return ErrNotFound
		}

		// Un-provenanced records are their own root.
		uuidOrigem := source.UUIDOrigem
		if uuidOrigem == uuid.Nil {
			uuidOrigem = source.UUID
		}

		siblings, err := ds.estacaRepo.ListByOrigem(ctx, tx, uuidOrigem)
		if err != nil {
			return fmt.Errorf("list origin siblings: %w", err)
		}
		revisao := nextRevisao(siblings)
		label := fmt.Sprintf("%s %02d", origemLabelPrefix, revisao)

		sourceCliente, err := ds.clienteRepo.GetByID(ctx, tx, source.ClienteID)
		if err != nil {
			return fmt.Errorf("lookup cliente: %w", err)
		}
		if sourceCliente == nil {
			return fmt.Errorf("cliente %d of ensaio %s missing", source.ClienteID, ensaioUUID)
		}

		newCliente := *sourceCliente
		newCliente.ID = 0
		if err := ds.clienteRepo.Create(ctx, tx, &newCliente); err != nil {
			return fmt.Errorf("copy cliente: %w", err)
		}

		newEstaca := *source
		newEstaca.ID = 0
		newEstaca.UUID = uuid.New()
		newEstaca.ClienteID = newCliente.ID
		newEstaca.UUIDOrigem = uuidOrigem
		newEstaca.Origem = label
		newEstaca.Revisao = &revisao
		if err := ds.estacaRepo.Create(ctx, tx, &newEstaca); err != nil {
			return fmt.Errorf("copy estaca: %w", err)
		}

		equipamentos, err := ds.equipamentoRepo.ListByEstacaID(ctx, tx, source.ID)
		if err != nil {
			return fmt.Errorf("list equipamentos: %w", err)
		}
		for _, eq := range equipamentos {
			copied := *eq
			copied.ID = 0
			copied.EstacaID = newEstaca.ID
			if err := ds.equipamentoRepo.Create(ctx, tx, &copied); err != nil {
				return fmt.Errorf("copy equipamento: %w", err)
			}
		}

		leituras, err := ds.leituraRepo.ListByEstacaID(ctx, tx, source.ID)
		if err != nil {
			return fmt.Errorf("list leituras: %w", err)
		}
		copies := make([]*types.Leitura, 0, len(leituras))
		for _, lt := range leituras {
			copied := *lt
			copied.ID = 0
			copied.EstacaID = newEstaca.ID
			copies = append(copies, &copied)
		}
		if err := ds.leituraRepo.CreateBatch(ctx, tx, copies); err != nil {
			return fmt.Errorf("copy leituras: %w", err)
		}

		response = &types.DuplicarEnsaioResponse{
			OK:           true,
			OriginalUUID: ensaioUUID,
			NovoUUID:     newEstaca.UUID,
			Origem:       label,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// nextRevisao picks max+1 over the lineage. Rows from before the revisao
// column still carry the sequence only in their display label, so trailing
// digits of origem count as a fallback. A lineage with no numbered rows
// yields 0.
func nextRevisao(siblings []*types.Estaca) int {
	maxSeen := -1
	for _, sibling := range siblings {
		if sibling.Revisao != nil {
			if *sibling.Revisao > maxSeen {
				maxSeen = *sibling.Revisao
			}
			continue
		}
		if n, ok := parseLabelSequence(sibling.Origem); ok && n > maxSeen {
			maxSeen = n
		}
	}
	return maxSeen + 1
}

func parseLabelSequence(origem string) (int, bool) {
	m := trailingDigits.FindStringSubmatch(strings.TrimSpace(origem))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
