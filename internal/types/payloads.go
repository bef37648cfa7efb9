package types

import (
	"github.com/google/uuid"
)

// ClienteIn is the project metadata block of a push bundle. CodigoObra may
// be blank; a blank code just skips the natural-key conflict check.
type ClienteIn struct {
	CodigoObra  string `json:"codigo_obra"`
	DataEnsaio  string `json:"data_ensaio"`
	ClienteNome string `json:"cliente_nome"`
	RespObra    string `json:"resp_obra"`
	TecCedro    string `json:"tec_cedro"`
	Endereco    string `json:"endereco"`
	Cidade      string `json:"cidade"`
	Sondagem    string `json:"sondagem"`
}

// EstacaIn is the test metadata block of a push bundle. Origem and
// uuid_origem are never accepted from the field client; the reconciler
// assigns them.
type EstacaIn struct {
	UUID          uuid.UUID `json:"uuid" binding:"required"`
	Carregamento  string    `json:"carregamento"`
	EstacaNum     string    `json:"estaca_num"`
	TipoEstaca    string    `json:"tipo_estaca"`
	DiametroCm    *float64  `json:"diametro_cm"`
	ProfundidadeM *float64  `json:"profundidade_m"`
	CargaAdmTf    *float64  `json:"carga_adm_tf"`
	CargaEnsaioTf *float64  `json:"carga_ensaio_tf"`
}

type EquipamentoIn struct {
	Leitura         string   `json:"leitura"`
	CilindroSerie   string   `json:"cilindro_serie"`
	CilindroAreaCm2 *float64 `json:"cilindro_area_cm2"`
	CelulaSerie     string   `json:"celula_serie"`
	LvdtSerie01     string   `json:"lvdt_serie01"`
	LvdtSerie02     string   `json:"lvdt_serie02"`
	LvdtSerie03     string   `json:"lvdt_serie03"`
	LvdtSerie04     string   `json:"lvdt_serie04"`
}

type LeituraIn struct {
	Estagio string `json:"estagio" binding:"required"`
	RowOrd  int    `json:"row_ord"`

	CargaTf       *float64 `json:"carga_tf"`
	PressaoKgfCm2 *float64 `json:"pressao_kgf_cm2"`

	Horario         string   `json:"horario"`
	TempoEstagio    *float64 `json:"tempo_estagio"`
	TempoEstagioMin *float64 `json:"tempo_estagio_min"`
	TempoTotal      string   `json:"tempo_total"`

	Leitura01 *float64 `json:"leitura_01"`
	Leitura02 *float64 `json:"leitura_02"`
	Leitura03 *float64 `json:"leitura_03"`
	Leitura04 *float64 `json:"leitura_04"`

	Parcial01 *float64 `json:"parcial_01"`
	Parcial02 *float64 `json:"parcial_02"`
	Parcial03 *float64 `json:"parcial_03"`
	Parcial04 *float64 `json:"parcial_04"`

	Total01 *float64 `json:"total_01"`
	Total02 *float64 `json:"total_02"`
	Total03 *float64 `json:"total_03"`
	Total04 *float64 `json:"total_04"`

	TotalMedia   *float64 `json:"total_media"`
	Estabilizado string   `json:"estabilizado"`
	Porcentagem  *float64 `json:"porcentagem"`

	Grafico    string `json:"grafico"`
	Observacao string `json:"observacao"`

	Obrigatoria  int `json:"obrigatoria"`
	IsReferencia int `json:"is_referencia"`

	RefOverride01 int `json:"ref_override_01"`
	RefOverride02 int `json:"ref_override_02"`
	RefOverride03 int `json:"ref_override_03"`
	RefOverride04 int `json:"ref_override_04"`
}

// PushPayload is the full record bundle sent by the field collector.
type PushPayload struct {
	Overwrite   bool           `json:"overwrite"`
	Cliente     ClienteIn      `json:"cliente" binding:"required"`
	Estaca      EstacaIn       `json:"estaca" binding:"required"`
	Equipamento *EquipamentoIn `json:"equipamento"`
	Leituras    []LeituraIn    `json:"leituras"`
}

// EnsaioSummary is one row of the office list view.
type EnsaioSummary struct {
	UUID             uuid.UUID `gorm:"column:uuid" json:"uuid"`
	UUIDOrigem       uuid.UUID `gorm:"column:uuid_origem" json:"uuid_origem"`
	Origem           string    `gorm:"column:origem" json:"origem"`
	DataEnsaio       string    `gorm:"column:data_ensaio" json:"data_ensaio"`
	CodigoObra       string    `gorm:"column:codigo_obra" json:"codigo_obra"`
	Estaca           string    `gorm:"column:estaca" json:"estaca"`
	TipoCarregamento string    `gorm:"column:tipo_carregamento" json:"tipo_carregamento"`
	CargaEnsaioTf    *float64  `gorm:"column:carga_ensaio_tf" json:"carga_ensaio_tf"`
	CargaAdmTf       *float64  `gorm:"column:carga_adm_tf" json:"carga_adm_tf"`
}

// EnsaioDetail is the composite object served by GET /ensaios/{uuid}.
type EnsaioDetail struct {
	Cliente     *Cliente           `json:"cliente"`
	Estaca      *Estaca            `json:"estaca"`
	Equipamento *EquipamentoDetail `json:"equipamento"`
	Leituras    []*Leitura         `json:"leituras"`
}

// EnsaioPatch carries the allow-listed editable fields of the office view,
// spanning the cliente row, the estaca row and the current equipamento
// snapshot. Nil pointers are left untouched.
type EnsaioPatch struct {
	CodigoObra  *string `json:"codigo_obra"`
	ClienteNome *string `json:"cliente_nome"`
	RespObra    *string `json:"resp_obra"`
	TecCedro    *string `json:"tec_cedro"`
	Endereco    *string `json:"endereco"`
	Cidade      *string `json:"cidade"`
	DataEnsaio  *string `json:"data_ensaio"`
	Sondagem    *string `json:"sondagem"`

	TipoCarregamento *string  `json:"tipo_carregamento"`
	EstacaNum        *string  `json:"estaca_num"`
	TipoEstaca       *string  `json:"tipo_estaca"`
	DiametroCm       *float64 `json:"diametro_cm"`
	ProfundidadeM    *float64 `json:"profundidade_m"`
	CargaAdmTf       *float64 `json:"carga_adm_tf"`
	CargaEnsaioTf    *float64 `json:"carga_ensaio_tf"`

	LeituraEquipamento *string  `json:"leitura_equipamento"`
	CilindroSerie      *string  `json:"cilindro_serie"`
	CilindroAreaCm2    *float64 `json:"cilindro_area_cm2"`
	CelulaSerie        *string  `json:"celula_serie"`
	Extensometro01     *string  `json:"extensometro_01"`
	Extensometro02     *string  `json:"extensometro_02"`
	Extensometro03     *string  `json:"extensometro_03"`
	Extensometro04     *string  `json:"extensometro_04"`
}

// LeituraPatch is the allow-listed partial update of one leitura row.
// Estagio and row_ord are deliberately absent: ordering keys are only
// rewritten through a full push.
type LeituraPatch struct {
	CargaTf       *float64 `json:"carga_tf"`
	PressaoKgfCm2 *float64 `json:"pressao_kgf_cm2"`

	Horario         *string  `json:"horario"`
	TempoEstagio    *float64 `json:"tempo_estagio"`
	TempoEstagioMin *float64 `json:"tempo_estagio_min"`
	TempoTotal      *string  `json:"tempo_total"`

	Leitura01 *float64 `json:"leitura_01"`
	Leitura02 *float64 `json:"leitura_02"`
	Leitura03 *float64 `json:"leitura_03"`
	Leitura04 *float64 `json:"leitura_04"`

	Parcial01 *float64 `json:"parcial_01"`
	Parcial02 *float64 `json:"parcial_02"`
	Parcial03 *float64 `json:"parcial_03"`
	Parcial04 *float64 `json:"parcial_04"`

	Total01 *float64 `json:"total_01"`
	Total02 *float64 `json:"total_02"`
	Total03 *float64 `json:"total_03"`
	Total04 *float64 `json:"total_04"`

	TotalMedia   *float64 `json:"total_media"`
	Estabilizado *string  `json:"estabilizado"`
	Porcentagem  *float64 `json:"porcentagem"`

	Grafico    *string `json:"grafico"`
	Observacao *string `json:"observacao"`

	Obrigatoria  *int `json:"obrigatoria"`
	IsReferencia *int `json:"is_referencia"`

	RefOverride01 *int `json:"ref_override_01"`
	RefOverride02 *int `json:"ref_override_02"`
	RefOverride03 *int `json:"ref_override_03"`
	RefOverride04 *int `json:"ref_override_04"`
}

type LeituraBatchItem struct {
	LeituraID int64        `json:"leitura_id" binding:"required"`
	Patch     LeituraPatch `json:"patch"`
}

type LeiturasBatchRequest struct {
	EnsaioUUID uuid.UUID          `json:"ensaio_uuid" binding:"required"`
	Items      []LeituraBatchItem `json:"items"`
}

type DuplicarEnsaioRequest struct {
	EnsaioUUID uuid.UUID `json:"ensaio_uuid" binding:"required"`
}

type DuplicarEnsaioResponse struct {
	OK           bool      `json:"ok"`
	OriginalUUID uuid.UUID `json:"original_uuid"`
	NovoUUID     uuid.UUID `json:"novo_uuid"`
	Origem       string    `json:"origem"`
}

type CalibracaoIn struct {
	Cilindro      string   `json:"cilindro" binding:"required"`
	AreaCm2       *float64 `json:"area_cm2"`
	CargaMaximaTf *float64 `json:"carga_maxima_tf"`
}

// CalibracaoPatch allows partial edits; the office frontend usually sends
// all three fields anyway.
type CalibracaoPatch struct {
	Cilindro      *string  `json:"cilindro"`
	AreaCm2       *float64 `json:"area_cm2"`
	CargaMaximaTf *float64 `json:"carga_maxima_tf"`
}
