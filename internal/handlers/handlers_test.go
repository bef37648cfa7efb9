package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cedrogeo/pce-sync-backend/internal/handlers"
	"github.com/cedrogeo/pce-sync-backend/internal/platform/logger"
	"github.com/cedrogeo/pce-sync-backend/internal/repos"
	"github.com/cedrogeo/pce-sync-backend/internal/server"
	"github.com/cedrogeo/pce-sync-backend/internal/services"
	"github.com/cedrogeo/pce-sync-backend/internal/types"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&types.Cliente{},
		&types.Estaca{},
		&types.Equipamento{},
		&types.Leitura{},
		&types.Calibracao{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	clienteRepo := repos.NewClienteRepo(db, log)
	estacaRepo := repos.NewEstacaRepo(db, log)
	equipamentoRepo := repos.NewEquipamentoRepo(db, log)
	leituraRepo := repos.NewLeituraRepo(db, log)
	calibracaoRepo := repos.NewCalibracaoRepo(db, log)

	syncSvc := services.NewSyncService(db, log, clienteRepo, estacaRepo, equipamentoRepo, leituraRepo)
	ensaioSvc := services.NewEnsaioService(db, log, clienteRepo, estacaRepo, equipamentoRepo, leituraRepo, calibracaoRepo)
	duplicateSvc := services.NewDuplicateService(db, log, clienteRepo, estacaRepo, equipamentoRepo, leituraRepo)
	leituraSvc := services.NewLeituraService(db, log, estacaRepo, leituraRepo)
	calibracaoSvc := services.NewCalibracaoService(db, log, calibracaoRepo)

	return server.NewRouter(server.RouterConfig{
		AllowOrigins:      []string{"http://localhost:3000"},
		SyncHandler:       handlers.NewSyncHandler(log, syncSvc),
		EnsaioHandler:     handlers.NewEnsaioHandler(log, ensaioSvc, duplicateSvc),
		LeituraHandler:    handlers.NewLeituraHandler(log, leituraSvc),
		CalibracaoHandler: handlers.NewCalibracaoHandler(log, calibracaoSvc),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func pushBody(estacaUUID uuid.UUID, estacaNum string, overwrite bool) map[string]interface{} {
	return map[string]interface{}{
		"overwrite": overwrite,
		"cliente": map[string]interface{}{
			"codigo_obra": "PCE-9901",
			"data_ensaio": "2026-06-01",
		},
		"estaca": map[string]interface{}{
			"uuid":       estacaUUID.String(),
			"estaca_num": estacaNum,
		},
		"leituras": []map[string]interface{}{
			{"estagio": "1", "row_ord": 0, "carga_tf": 10.0},
		},
	}
}

func TestHealthCheckRoute(t *testing.T) {
	router := newTestRouter(t)
	for _, path := range []string{"/health", "/healthcheck"} {
		rec := doJSON(t, router, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp["status"] != "ok" {
			t.Fatalf("%s body = %s", path, rec.Body)
		}
	}
}

func TestPushRouteAndAliases(t *testing.T) {
	router := newTestRouter(t)

	for i, path := range []string{"/push", "/upload", "/sync/push", "/sync/upload"} {
		estacaUUID := uuid.New()
		rec := doJSON(t, router, http.MethodPost, path, pushBody(estacaUUID, fmt.Sprintf("E-%02d", i), false))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d body=%s", path, rec.Code, rec.Body)
		}
		var resp struct {
			OK   bool   `json:"ok"`
			UUID string `json:"uuid"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !resp.OK || resp.UUID != estacaUUID.String() {
			t.Fatalf("%s resp = %+v", path, resp)
		}
	}
}

func TestPushConflictWireShape(t *testing.T) {
	router := newTestRouter(t)

	firstUUID := uuid.New()
	if rec := doJSON(t, router, http.MethodPost, "/push", pushBody(firstUUID, "E-50", false)); rec.Code != http.StatusOK {
		t.Fatalf("seed push status = %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodPost, "/push", pushBody(uuid.New(), "E-50", false))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["reason"] != "exists" || resp["by"] != "codigo_obra+estaca_num" {
		t.Errorf("conflict markers = %q/%q", resp["reason"], resp["by"])
	}
	if resp["codigo_obra"] != "PCE-9901" || resp["estaca_num"] != "E-50" {
		t.Errorf("conflict key = %q/%q", resp["codigo_obra"], resp["estaca_num"])
	}
	if resp["existing_uuid"] != firstUUID.String() {
		t.Errorf("existing_uuid = %q, want %s", resp["existing_uuid"], firstUUID)
	}

	// Retrying with overwrite resolves the conflict.
	rec = doJSON(t, router, http.MethodPost, "/push", pushBody(uuid.New(), "E-50", true))
	if rec.Code != http.StatusOK {
		t.Fatalf("overwrite status = %d", rec.Code)
	}
}

func TestPushAcceptsBlankCodigoObra(t *testing.T) {
	router := newTestRouter(t)

	body := pushBody(uuid.New(), "E-51", false)
	body["cliente"] = map[string]interface{}{"data_ensaio": "2026-06-01"}
	rec := doJSON(t, router, http.MethodPost, "/push", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s, want 200 for blank codigo_obra", rec.Code, rec.Body)
	}
}

func TestPushRejectsInvalidBody(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/push", map[string]interface{}{"cliente": map[string]interface{}{}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestEnsaioListEnvelope(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/ensaios", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Ensaios []json.RawMessage `json:"ensaios"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Ensaios == nil {
		t.Fatal("ensaios key missing or null on empty store")
	}

	if rec := doJSON(t, router, http.MethodPost, "/push", pushBody(uuid.New(), "E-60", false)); rec.Code != http.StatusOK {
		t.Fatalf("push status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/ensaios", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Ensaios) != 1 {
		t.Fatalf("ensaios = %d, want 1", len(resp.Ensaios))
	}
}

func TestEnsaioGetInvalidAndMissing(t *testing.T) {
	router := newTestRouter(t)

	if rec := doJSON(t, router, http.MethodGet, "/ensaios/not-a-uuid", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid uuid status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, "/ensaios/"+uuid.NewString(), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing uuid status = %d, want 404", rec.Code)
	}
}

func TestDuplicateRoute(t *testing.T) {
	router := newTestRouter(t)

	fieldUUID := uuid.New()
	if rec := doJSON(t, router, http.MethodPost, "/push", pushBody(fieldUUID, "E-61", false)); rec.Code != http.StatusOK {
		t.Fatalf("push status = %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodPost, "/ensaios/duplicar", map[string]interface{}{"ensaio_uuid": fieldUUID.String()})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var resp types.DuplicarEnsaioResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.OK || resp.Origem != "Escritorio 00" || resp.NovoUUID == fieldUUID {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestLeiturasListRequiresEstacaID(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/leituras", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLeiturasDataEnvelope(t *testing.T) {
	router := newTestRouter(t)

	fieldUUID := uuid.New()
	if rec := doJSON(t, router, http.MethodPost, "/push", pushBody(fieldUUID, "E-62", false)); rec.Code != http.StatusOK {
		t.Fatalf("push status = %d", rec.Code)
	}
	detailRec := doJSON(t, router, http.MethodGet, "/ensaios/"+fieldUUID.String(), nil)
	var detail struct {
		Estaca struct {
			EstacaID int64 `json:"estaca_id"`
		} `json:"estaca"`
	}
	if err := json.Unmarshal(detailRec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/leituras?estaca_id=%d", detail.Estaca.EstacaID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("data = %d, want 1", len(resp.Data))
	}
}

func TestLeiturasCreateSingleOrArray(t *testing.T) {
	router := newTestRouter(t)

	fieldUUID := uuid.New()
	if rec := doJSON(t, router, http.MethodPost, "/push", pushBody(fieldUUID, "E-63", false)); rec.Code != http.StatusOK {
		t.Fatalf("push status = %d", rec.Code)
	}
	detailRec := doJSON(t, router, http.MethodGet, "/ensaios/"+fieldUUID.String(), nil)
	var detail struct {
		Estaca struct {
			EstacaID int64 `json:"estaca_id"`
		} `json:"estaca"`
	}
	if err := json.Unmarshal(detailRec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	estacaID := detail.Estaca.EstacaID

	single := map[string]interface{}{"estaca_id": estacaID, "estagio": "2", "row_ord": 0}
	if rec := doJSON(t, router, http.MethodPost, "/leituras", single); rec.Code != http.StatusOK {
		t.Fatalf("single insert status = %d body=%s", rec.Code, rec.Body)
	}

	batch := []map[string]interface{}{
		{"estaca_id": estacaID, "estagio": "3", "row_ord": 0},
		{"estaca_id": estacaID, "estagio": "3", "row_ord": 1},
	}
	if rec := doJSON(t, router, http.MethodPost, "/leituras", batch); rec.Code != http.StatusOK {
		t.Fatalf("array insert status = %d body=%s", rec.Code, rec.Body)
	}

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/leituras?estaca_id=%d", estacaID), nil)
	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 4 {
		t.Fatalf("data = %d, want 4", len(resp.Data))
	}
}

func TestCalibracoesRoutes(t *testing.T) {
	router := newTestRouter(t)

	create := map[string]interface{}{"cilindro": "CIL-700", "area_cm2": 110.0, "carga_maxima_tf": 180.0}
	rec := doJSON(t, router, http.MethodPost, "/calibracoes", create)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d", rec.Code)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	patch := map[string]interface{}{"carga_maxima_tf": 190.0}
	if rec := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/calibracoes/%d", created.ID), patch); rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPatch, "/calibracoes/999999", patch); rec.Code != http.StatusNotFound {
		t.Fatalf("patch missing status = %d, want 404", rec.Code)
	}

	if rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/calibracoes/%d", created.ID), nil); rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/calibracoes/%d", created.ID), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("delete again status = %d, want 404", rec.Code)
	}
}
