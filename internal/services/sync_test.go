package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

func testPayload(estacaUUID uuid.UUID, estacaNum string) *types.PushPayload {
	return &types.PushPayload{
		Cliente: types.ClienteIn{
			CodigoObra:  "PCE-2301",
			DataEnsaio:  "2026-05-12",
			ClienteNome: "Construtora Alfa",
			Cidade:      "Campinas",
		},
		Estaca: types.EstacaIn{
			UUID:          estacaUUID,
			Carregamento:  "lento",
			EstacaNum:     estacaNum,
			TipoEstaca:    "helice continua",
			DiametroCm:    floatPtr(40),
			CargaAdmTf:    floatPtr(60),
			CargaEnsaioTf: floatPtr(120),
		},
		Equipamento: &types.EquipamentoIn{
			Leitura:         "digital",
			CilindroSerie:   "CIL-118",
			CelulaSerie:     "CEL-52",
			LvdtSerie01:     "LV-01",
			CilindroAreaCm2: nil,
		},
		Leituras: []types.LeituraIn{
			{Estagio: "1", RowOrd: 0, CargaTf: floatPtr(12), Horario: "08:10"},
			{Estagio: "1", RowOrd: 1, CargaTf: floatPtr(12), Horario: "08:20"},
			{Estagio: "2", RowOrd: 0, CargaTf: floatPtr(24), Horario: "08:40"},
		},
	}
}

func TestPushCreatesEnsaio(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	estacaUUID := uuid.New()
	got, err := env.sync.Push(ctx, testPayload(estacaUUID, "E-01"))
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if got != estacaUUID {
		t.Fatalf("push uuid = %s, want %s", got, estacaUUID)
	}

	estaca, err := env.estacaRepo.GetByUUID(ctx, nil, estacaUUID)
	if err != nil || estaca == nil {
		t.Fatalf("estaca lookup: estaca=%v err=%v", estaca, err)
	}
	if estaca.Origem != types.OrigemCampo {
		t.Errorf("origem = %q, want %q", estaca.Origem, types.OrigemCampo)
	}
	if estaca.UUIDOrigem != estacaUUID {
		t.Errorf("uuid_origem = %s, want self reference %s", estaca.UUIDOrigem, estacaUUID)
	}
	if estaca.Revisao != nil {
		t.Errorf("revisao = %v, want nil for field rows", *estaca.Revisao)
	}

	leituras, err := env.leituraRepo.ListByEstacaID(ctx, nil, estaca.ID)
	if err != nil {
		t.Fatalf("list leituras: %v", err)
	}
	if len(leituras) != 3 {
		t.Fatalf("leituras = %d, want 3", len(leituras))
	}
}

func TestPushSameUUIDIsIdempotentUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	estacaUUID := uuid.New()
	if _, err := env.sync.Push(ctx, testPayload(estacaUUID, "E-02")); err != nil {
		t.Fatalf("first push: %v", err)
	}

	second := testPayload(estacaUUID, "E-02")
	second.Estaca.CargaEnsaioTf = floatPtr(150)
	second.Leituras = second.Leituras[:1]
	if _, err := env.sync.Push(ctx, second); err != nil {
		t.Fatalf("second push: %v", err)
	}

	estaca, err := env.estacaRepo.GetByUUID(ctx, nil, estacaUUID)
	if err != nil || estaca == nil {
		t.Fatalf("estaca lookup: estaca=%v err=%v", estaca, err)
	}
	if estaca.CargaEnsaioTf == nil || *estaca.CargaEnsaioTf != 150 {
		t.Errorf("carga_ensaio_tf not updated, got %v", estaca.CargaEnsaioTf)
	}

	leituras, err := env.leituraRepo.ListByEstacaID(ctx, nil, estaca.ID)
	if err != nil {
		t.Fatalf("list leituras: %v", err)
	}
	if len(leituras) != 1 {
		t.Fatalf("leituras = %d, want full replacement down to 1", len(leituras))
	}
}

func TestPushNaturalKeyConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	firstUUID := uuid.New()
	if _, err := env.sync.Push(ctx, testPayload(firstUUID, "E-03")); err != nil {
		t.Fatalf("first push: %v", err)
	}

	// Same obra and estaca number from a reinstalled collector with a new
	// uuid must be rejected without the overwrite flag.
	_, err := env.sync.Push(ctx, testPayload(uuid.New(), "E-03"))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if conflict.ExistingUUID != firstUUID.String() {
		t.Errorf("existing_uuid = %s, want %s", conflict.ExistingUUID, firstUUID)
	}
	if conflict.CodigoObra != "PCE-2301" || conflict.EstacaNum != "E-03" {
		t.Errorf("conflict key = %s/%s", conflict.CodigoObra, conflict.EstacaNum)
	}
}

func TestPushOverwriteTransplantsIdentity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	oldUUID := uuid.New()
	if _, err := env.sync.Push(ctx, testPayload(oldUUID, "E-04")); err != nil {
		t.Fatalf("first push: %v", err)
	}
	before, err := env.estacaRepo.GetByUUID(ctx, nil, oldUUID)
	if err != nil || before == nil {
		t.Fatalf("estaca lookup: estaca=%v err=%v", before, err)
	}

	newUUID := uuid.New()
	payload := testPayload(newUUID, "E-04")
	payload.Overwrite = true
	if _, err := env.sync.Push(ctx, payload); err != nil {
		t.Fatalf("overwrite push: %v", err)
	}

	// The old uuid no longer resolves; the row itself survived.
	gone, err := env.estacaRepo.GetByUUID(ctx, nil, oldUUID)
	if err != nil {
		t.Fatalf("old uuid lookup: %v", err)
	}
	if gone != nil {
		t.Fatalf("old uuid still resolves")
	}
	after, err := env.estacaRepo.GetByUUID(ctx, nil, newUUID)
	if err != nil || after == nil {
		t.Fatalf("new uuid lookup: estaca=%v err=%v", after, err)
	}
	if after.ID != before.ID {
		t.Errorf("surrogate id changed on overwrite: %d -> %d", before.ID, after.ID)
	}
	if after.Origem != types.OrigemCampo || after.UUIDOrigem != newUUID || after.Revisao != nil {
		t.Errorf("provenance not reset: origem=%q uuid_origem=%s revisao=%v", after.Origem, after.UUIDOrigem, after.Revisao)
	}
}

func TestPushBlankCodigoObraSkipsConflictCheck(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := testPayload(uuid.New(), "E-06")
	first.Cliente.CodigoObra = ""
	if _, err := env.sync.Push(ctx, first); err != nil {
		t.Fatalf("first push: %v", err)
	}

	// Same estaca number, still no obra code: without a natural key there is
	// nothing to collide with, so the second bundle lands as its own test.
	second := testPayload(uuid.New(), "E-06")
	second.Cliente.CodigoObra = ""
	second.Cliente.DataEnsaio = "2026-05-13"
	if _, err := env.sync.Push(ctx, second); err != nil {
		t.Fatalf("second push: %v", err)
	}

	summaries, err := env.ensaio.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2 independent tests", len(summaries))
	}
}

func TestPushTrimsNaturalKeyWhitespace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.sync.Push(ctx, testPayload(uuid.New(), "E-05")); err != nil {
		t.Fatalf("first push: %v", err)
	}

	padded := testPayload(uuid.New(), "  E-05 ")
	padded.Cliente.CodigoObra = " PCE-2301 "
	_, err := env.sync.Push(ctx, padded)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ConflictError after trimming", err)
	}
}
