package types

// Cliente groups the estacas of one job site by (codigo_obra, data_ensaio).
type Cliente struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"-"`
	CodigoObra  string `gorm:"column:codigo_obra;index:idx_clientes_obra_data" json:"codigo_obra"`
	DataEnsaio  string `gorm:"column:data_ensaio;index:idx_clientes_obra_data" json:"data_ensaio"`
	ClienteNome string `gorm:"column:cliente_nome" json:"cliente_nome"`
	RespObra    string `gorm:"column:resp_obra" json:"resp_obra"`
	TecCedro    string `gorm:"column:tec_cedro" json:"tec_cedro"`
	Endereco    string `gorm:"column:endereco" json:"endereco"`
	Cidade      string `gorm:"column:cidade" json:"cidade"`
	Sondagem    string `gorm:"column:sondagem" json:"sondagem"`
}

func (Cliente) TableName() string {
	return "clientes"
}
