package models

// Admin is an unscoped operator account.
type Admin struct {
	ID           int64   `gorm:"column:admin_id;primaryKey;autoIncrement"`
	Name         string  `gorm:"column:name;not null"`
	Email        string  `gorm:"column:email;not null;uniqueIndex"`
	Phone        *string `gorm:"column:phone"`
	PasswordHash string  `gorm:"column:password_hash;not null"`
}

// TableName implements the GORM naming override.
func (Admin) TableName() string { return "admins" }
