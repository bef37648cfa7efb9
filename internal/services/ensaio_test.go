package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

func TestGetDetailFillsCalibration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.calibracao.Create(ctx, &types.CalibracaoIn{
		Cilindro:      "CIL-118",
		AreaCm2:       floatPtr(122.7),
		CargaMaximaTf: floatPtr(200),
	}); err != nil {
		t.Fatalf("create calibracao: %v", err)
	}

	fieldUUID := uuid.New()
	if _, err := env.sync.Push(ctx, testPayload(fieldUUID, "E-20")); err != nil {
		t.Fatalf("push: %v", err)
	}

	detail, err := env.ensaio.Get(ctx, fieldUUID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if detail.Equipamento == nil {
		t.Fatal("detail has no equipamento")
	}
	if detail.Equipamento.CilindroAreaCm2 == nil || *detail.Equipamento.CilindroAreaCm2 != 122.7 {
		t.Errorf("area not filled from calibration: %v", detail.Equipamento.CilindroAreaCm2)
	}
	if detail.Equipamento.CargaMaximaTf == nil || *detail.Equipamento.CargaMaximaTf != 200 {
		t.Errorf("carga_maxima_tf not filled: %v", detail.Equipamento.CargaMaximaTf)
	}
	if len(detail.Leituras) != 3 {
		t.Errorf("leituras = %d, want 3", len(detail.Leituras))
	}
}

func TestGetDetailKeepsSnapshotArea(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.calibracao.Create(ctx, &types.CalibracaoIn{
		Cilindro:      "CIL-118",
		AreaCm2:       floatPtr(122.7),
		CargaMaximaTf: floatPtr(200),
	}); err != nil {
		t.Fatalf("create calibracao: %v", err)
	}

	fieldUUID := uuid.New()
	payload := testPayload(fieldUUID, "E-21")
	payload.Equipamento.CilindroAreaCm2 = floatPtr(115.5)
	if _, err := env.sync.Push(ctx, payload); err != nil {
		t.Fatalf("push: %v", err)
	}

	detail, err := env.ensaio.Get(ctx, fieldUUID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	// Field-measured area wins over the registry.
	if detail.Equipamento.CilindroAreaCm2 == nil || *detail.Equipamento.CilindroAreaCm2 != 115.5 {
		t.Errorf("snapshot area overridden: %v", detail.Equipamento.CilindroAreaCm2)
	}
	if detail.Equipamento.CargaMaximaTf == nil || *detail.Equipamento.CargaMaximaTf != 200 {
		t.Errorf("carga_maxima_tf missing: %v", detail.Equipamento.CargaMaximaTf)
	}
}

func TestPatchEnsaioSpansAllThreeRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	fieldUUID := uuid.New()
	if _, err := env.sync.Push(ctx, testPayload(fieldUUID, "E-22")); err != nil {
		t.Fatalf("push: %v", err)
	}

	err := env.ensaio.Patch(ctx, fieldUUID, &types.EnsaioPatch{
		ClienteNome:    strPtr("Construtora Beta"),
		EstacaNum:      strPtr("E-22B"),
		CargaAdmTf:     floatPtr(75),
		CelulaSerie:    strPtr("CEL-99"),
		Extensometro02: strPtr("LV-02B"),
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}

	detail, err := env.ensaio.Get(ctx, fieldUUID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if detail.Cliente.ClienteNome != "Construtora Beta" {
		t.Errorf("cliente_nome = %q", detail.Cliente.ClienteNome)
	}
	if detail.Estaca.EstacaNum != "E-22B" {
		t.Errorf("estaca_num = %q", detail.Estaca.EstacaNum)
	}
	if detail.Estaca.CargaAdmTf == nil || *detail.Estaca.CargaAdmTf != 75 {
		t.Errorf("carga_adm_tf = %v", detail.Estaca.CargaAdmTf)
	}
	if detail.Equipamento.CelulaSerie != "CEL-99" || detail.Equipamento.LvdtSerie02 != "LV-02B" {
		t.Errorf("equipamento not patched: %+v", detail.Equipamento)
	}
	// Untouched fields stay put.
	if detail.Equipamento.LvdtSerie01 != "LV-01" {
		t.Errorf("lvdt_serie01 = %q, want LV-01", detail.Equipamento.LvdtSerie01)
	}
}

func TestPatchEnsaioCreatesMissingSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	fieldUUID := uuid.New()
	payload := testPayload(fieldUUID, "E-23")
	payload.Equipamento = nil
	if _, err := env.sync.Push(ctx, payload); err != nil {
		t.Fatalf("push: %v", err)
	}

	if err := env.ensaio.Patch(ctx, fieldUUID, &types.EnsaioPatch{CilindroSerie: strPtr("CIL-200")}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	detail, err := env.ensaio.Get(ctx, fieldUUID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if detail.Equipamento == nil || detail.Equipamento.CilindroSerie != "CIL-200" {
		t.Fatalf("snapshot not created by patch: %+v", detail.Equipamento)
	}
}

func TestDeleteEnsaioRemovesOrphanCliente(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	fieldUUID := uuid.New()
	if _, err := env.sync.Push(ctx, testPayload(fieldUUID, "E-24")); err != nil {
		t.Fatalf("push: %v", err)
	}
	estaca, _ := env.estacaRepo.GetByUUID(ctx, nil, fieldUUID)
	if estaca == nil {
		t.Fatal("estaca missing")
	}

	if err := env.ensaio.Delete(ctx, fieldUUID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.ensaio.Get(ctx, fieldUUID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete = %v, want ErrNotFound", err)
	}
	cliente, err := env.clienteRepo.GetByID(ctx, nil, estaca.ClienteID)
	if err != nil {
		t.Fatalf("cliente lookup: %v", err)
	}
	if cliente != nil {
		t.Fatalf("orphan cliente %d survived", estaca.ClienteID)
	}
}

func TestDeleteEnsaioKeepsSharedCliente(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	firstUUID := uuid.New()
	if _, err := env.sync.Push(ctx, testPayload(firstUUID, "E-25")); err != nil {
		t.Fatalf("first push: %v", err)
	}
	// Second estaca of the same obra+data shares the cliente row.
	if _, err := env.sync.Push(ctx, testPayload(uuid.New(), "E-26")); err != nil {
		t.Fatalf("second push: %v", err)
	}
	estaca, _ := env.estacaRepo.GetByUUID(ctx, nil, firstUUID)
	if estaca == nil {
		t.Fatal("estaca missing")
	}

	if err := env.ensaio.Delete(ctx, firstUUID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	cliente, err := env.clienteRepo.GetByID(ctx, nil, estaca.ClienteID)
	if err != nil {
		t.Fatalf("cliente lookup: %v", err)
	}
	if cliente == nil {
		t.Fatal("shared cliente deleted while a sibling estaca remains")
	}
}

func TestListSummaries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.sync.Push(ctx, testPayload(uuid.New(), "E-27")); err != nil {
		t.Fatalf("push: %v", err)
	}
	if _, err := env.sync.Push(ctx, testPayload(uuid.New(), "E-28")); err != nil {
		t.Fatalf("push: %v", err)
	}

	summaries, err := env.ensaio.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
	if summaries[0].CodigoObra != "PCE-2301" || summaries[0].Estaca != "E-27" {
		t.Errorf("first summary = %+v", summaries[0])
	}
	if summaries[0].Origem != types.OrigemCampo {
		t.Errorf("origem = %q", summaries[0].Origem)
	}
}
