package models

import "time"

// DispositionType is a catalog entry describing a booking outcome code.
type DispositionType struct {
	TypeCode    string    `gorm:"column:type_code;primaryKey"`
	Description string    `gorm:"column:description;not null"`
	CreatedAt   time.Time `gorm:"column:created_time;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_time;autoUpdateTime"`
}

// TableName implements the GORM naming override.
func (DispositionType) TableName() string { return "disposition_types" }
