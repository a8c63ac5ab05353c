package model

import "time"

// Reading is a single sensor sample taken from a machine. Every reading
// belongs to exactly one machine and is removed with it.
type Reading struct {
	ID               int64      `gorm:"primaryKey" json:"id"`
	MachineID        int64      `gorm:"column:maquina_id;index;not null" json:"maquina_id"`
	ReadingTimestamp time.Time  `gorm:"column:timestamp_lectura" json:"timestamp_lectura"`
	StartTimestamp   *time.Time `gorm:"column:timestamp_arranque" json:"timestamp_arranque"`
	Temperature      *float64   `gorm:"column:temperatura" json:"temperatura"`
	Vibration        *float64   `gorm:"column:vibracion" json:"vibracion"`
	Pressure         *float64   `gorm:"column:presion" json:"presion"`
	EngineRPM        *int       `gorm:"column:rpm_motor" json:"rpm_motor"`
}

// TableName keeps the table name the rest of the system expects.
func (Reading) TableName() string { return "lecturas_maquina" }
