package models

// Team groups dispatchers and field agents under one region.
type Team struct {
	ID       int64  `gorm:"column:team_id;primaryKey;autoIncrement"`
	Name     string `gorm:"column:name;not null"`
	RegionID *int64 `gorm:"column:region_id"`

	Region *Region `gorm:"foreignKey:RegionID"`
}

// TableName implements the GORM naming override.
func (Team) TableName() string { return "teams" }
