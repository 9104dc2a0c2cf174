package models

// FieldAgent is a bookable worker who performs on-site appointments.
type FieldAgent struct {
	ID           int64   `gorm:"column:agent_id;primaryKey;autoIncrement"`
	Name         string  `gorm:"column:name;not null"`
	Email        string  `gorm:"column:email;not null;uniqueIndex"`
	Phone        *string `gorm:"column:phone"`
	PasswordHash string  `gorm:"column:password_hash;not null"`
	LocationID   *int64  `gorm:"column:location_id"`
	TeamID       *int64  `gorm:"column:team_id"`

	Location *Location `gorm:"foreignKey:LocationID"`
	Team     *Team     `gorm:"foreignKey:TeamID"`
}

// TableName implements the GORM naming override.
func (FieldAgent) TableName() string { return "field_agents" }
