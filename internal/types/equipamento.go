package types

// Equipamento is the instrument snapshot used by an estaca. Snapshots are
// append-only; the row with the highest id is the current one.
type Equipamento struct {
	ID              int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	EstacaID        int64    `gorm:"column:estaca_id;index:idx_equipamentos_estaca" json:"-"`
	Leitura         string   `gorm:"column:leitura" json:"leitura"`
	CilindroSerie   string   `gorm:"column:cilindro_serie" json:"cilindro_serie"`
	CilindroAreaCm2 *float64 `gorm:"column:cilindro_area_cm2" json:"cilindro_area_cm2"`
	CelulaSerie     string   `gorm:"column:celula_serie" json:"celula_serie"`
	LvdtSerie01     string   `gorm:"column:lvdt_serie01" json:"lvdt_serie01"`
	LvdtSerie02     string   `gorm:"column:lvdt_serie02" json:"lvdt_serie02"`
	LvdtSerie03     string   `gorm:"column:lvdt_serie03" json:"lvdt_serie03"`
	LvdtSerie04     string   `gorm:"column:lvdt_serie04" json:"lvdt_serie04"`
}

func (Equipamento) TableName() string {
	return "equipamentos"
}

// EquipamentoDetail is the snapshot as returned by the ensaio detail view,
// enriched with the carga maxima of the matching calibracao.
type EquipamentoDetail struct {
	Equipamento
	CargaMaximaTf *float64 `json:"carga_maxima_tf"`
}
