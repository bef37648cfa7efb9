package types

import (
	"github.com/google/uuid"
)

// OrigemCampo is the provenance label written to estacas created or
// overwritten by a field push. Office duplicates get "Escritorio NN" instead.
const OrigemCampo = "campo"

// Estaca is one pile load test. UUID is assigned by the field client and
// never rewritten once a stored row answers to it; UUIDOrigem points at the
// revision-0 ancestor (self-referential for field records). Revisao is the
// per-origin copy sequence: NULL for field rows, 0,1,2,... for office copies.
// The (uuid_origem, revisao) unique index serializes concurrent duplications.
type Estaca struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"estaca_id"`
	UUID          uuid.UUID `gorm:"type:uuid;column:uuid;uniqueIndex" json:"uuid"`
	UUIDOrigem    uuid.UUID `gorm:"type:uuid;column:uuid_origem;uniqueIndex:idx_estacas_origem_revisao" json:"uuid_origem"`
	Origem        string    `gorm:"column:origem" json:"origem"`
	Revisao       *int      `gorm:"column:revisao;uniqueIndex:idx_estacas_origem_revisao" json:"revisao,omitempty"`
	ClienteID     int64     `gorm:"column:cliente_id;uniqueIndex:idx_estacas_cliente_estaca" json:"-"`
	Carregamento  string    `gorm:"column:carregamento" json:"carregamento"`
	EstacaNum     string    `gorm:"column:estaca_num;uniqueIndex:idx_estacas_cliente_estaca" json:"estaca_num"`
	TipoEstaca    string    `gorm:"column:tipo_estaca" json:"tipo_estaca"`
	DiametroCm    *float64  `gorm:"column:diametro_cm" json:"diametro_cm"`
	ProfundidadeM *float64  `gorm:"column:profundidade_m" json:"profundidade_m"`
	CargaAdmTf    *float64  `gorm:"column:carga_adm_tf" json:"carga_adm_tf"`
	CargaEnsaioTf *float64  `gorm:"column:carga_ensaio_tf" json:"carga_ensaio_tf"`
}

func (Estaca) TableName() string {
	return "estacas"
}
