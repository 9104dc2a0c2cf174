package models

// Customer is the person a booking is performed for, deduplicated by email.
type Customer struct {
	ID         int64   `gorm:"column:customer_id;primaryKey;autoIncrement"`
	Name       string  `gorm:"column:name;not null"`
	Email      string  `gorm:"column:email;not null;uniqueIndex"`
	Phone      *string `gorm:"column:phone"`
	LocationID *int64  `gorm:"column:location_id"`

	Location *Location `gorm:"foreignKey:LocationID"`
}

// TableName implements the GORM naming override.
func (Customer) TableName() string { return "customers" }
