package types

// Calibracao is the lookup record for a load cylinder, keyed by serial number.
type Calibracao struct {
	ID            int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Cilindro      string  `gorm:"column:cilindro;index:idx_calibracoes_cilindro" json:"cilindro"`
	AreaCm2       float64 `gorm:"column:area_cm2" json:"area_cm2"`
	CargaMaximaTf float64 `gorm:"column:carga_maxima_tf" json:"carga_maxima_tf"`
}

func (Calibracao) TableName() string {
	return "calibracoes"
}
