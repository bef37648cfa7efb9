package types

// Leitura is one stage/step measurement of an estaca's loading sequence.
// Partial/total columns are computed by the client and stored verbatim.
type Leitura struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	EstacaID int64  `gorm:"column:estaca_id;index:idx_leituras_estaca" json:"estaca_id"`
	Estagio  string `gorm:"column:estagio" json:"estagio"`
	RowOrd   int    `gorm:"column:row_ord" json:"row_ord"`

	CargaTf       *float64 `gorm:"column:carga_tf" json:"carga_tf"`
	PressaoKgfCm2 *float64 `gorm:"column:pressao_kgf_cm2" json:"pressao_kgf_cm2"`

	Horario         string   `gorm:"column:horario" json:"horario"`
	TempoEstagio    *float64 `gorm:"column:tempo_estagio" json:"tempo_estagio"`
	TempoEstagioMin *float64 `gorm:"column:tempo_estagio_min" json:"tempo_estagio_min"`
	TempoTotal      string   `gorm:"column:tempo_total" json:"tempo_total"`

	Leitura01 *float64 `gorm:"column:leitura_01" json:"leitura_01"`
	Leitura02 *float64 `gorm:"column:leitura_02" json:"leitura_02"`
	Leitura03 *float64 `gorm:"column:leitura_03" json:"leitura_03"`
	Leitura04 *float64 `gorm:"column:leitura_04" json:"leitura_04"`

	Parcial01 *float64 `gorm:"column:parcial_01" json:"parcial_01"`
	Parcial02 *float64 `gorm:"column:parcial_02" json:"parcial_02"`
	Parcial03 *float64 `gorm:"column:parcial_03" json:"parcial_03"`
	Parcial04 *float64 `gorm:"column:parcial_04" json:"parcial_04"`

	Total01 *float64 `gorm:"column:total_01" json:"total_01"`
	Total02 *float64 `gorm:"column:total_02" json:"total_02"`
	Total03 *float64 `gorm:"column:total_03" json:"total_03"`
	Total04 *float64 `gorm:"column:total_04" json:"total_04"`

	TotalMedia   *float64 `gorm:"column:total_media" json:"total_media"`
	Estabilizado string   `gorm:"column:estabilizado" json:"estabilizado"`
	Porcentagem  *float64 `gorm:"column:porcentagem" json:"porcentagem"`

	Grafico    string `gorm:"column:grafico" json:"grafico"`
	Observacao string `gorm:"column:observacao" json:"observacao"`

	Obrigatoria  int `gorm:"column:obrigatoria" json:"obrigatoria"`
	IsReferencia int `gorm:"column:is_referencia" json:"is_referencia"`

	RefOverride01 int `gorm:"column:ref_override_01" json:"ref_override_01"`
	RefOverride02 int `gorm:"column:ref_override_02" json:"ref_override_02"`
	RefOverride03 int `gorm:"column:ref_override_03" json:"ref_override_03"`
	RefOverride04 int `gorm:"column:ref_override_04" json:"ref_override_04"`
}

func (Leitura) TableName() string {
	return "leituras"
}
