package models

import "time"

// Disposition records the outcome captured after a booking completes.
// A booking links to at most one disposition.
type Disposition struct {
	ID        int64     `gorm:"column:disposition_id;primaryKey;autoIncrement"`
	TypeCode  string    `gorm:"column:type_code;not null"`
	Note      string    `gorm:"column:note"`
	CreatedAt time.Time `gorm:"column:created_time;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_time;autoUpdateTime"`

	Type *DispositionType `gorm:"foreignKey:TypeCode;references:TypeCode"`
}

// TableName implements the GORM naming override.
func (Disposition) TableName() string { return "dispositions" }
