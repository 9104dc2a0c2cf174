package models

// Region scopes booking visibility. The global region is visible to every
// dispatcher regardless of team.
type Region struct {
	ID       int64  `gorm:"column:region_id;primaryKey;autoIncrement"`
	Name     string `gorm:"column:name;not null;uniqueIndex"`
	IsGlobal bool   `gorm:"column:is_global;not null;default:false"`
}

// TableName implements the GORM naming override.
func (Region) TableName() string { return "regions" }
