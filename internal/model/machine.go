package model

// Machine represents a monitored piece of machinery.
type Machine struct {
	ID           int64   `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"column:nombre;size:200;not null" json:"nombre"`
	Description  *string `gorm:"column:descripcion" json:"descripcion"`
	SerialNumber string  `gorm:"column:numero_serie;uniqueIndex;size:200;not null" json:"numero_serie"`
	Engine       *string `gorm:"column:motor" json:"motor"`

	// Associations
	Readings []Reading `gorm:"foreignKey:MachineID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the table name the rest of the system expects.
func (Machine) TableName() string { return "maquinas" }
