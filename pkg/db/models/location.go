package models

import "fmt"

// Location is a deduplicated street address with optional coordinates.
// Coordinates are either both present (geocoded) or both absent.
type Location struct {
	ID            int64    `gorm:"column:id;primaryKey;autoIncrement"`
	Latitude      *float64 `gorm:"column:latitude"`
	Longitude     *float64 `gorm:"column:longitude"`
	StreetNumber  string   `gorm:"column:street_number;not null"`
	StreetName    string   `gorm:"column:street_name;not null"`
	PostalCode    string   `gorm:"column:postal_code;not null"`
	City          string   `gorm:"column:city;not null"`
	StateProvince string   `gorm:"column:state_province;not null"`
	Country       string   `gorm:"column:country;not null"`
}

// TableName implements the GORM naming override.
func (Location) TableName() string { return "locations" }

// HasCoordinates reports whether the location has been geocoded.
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Address renders the display address used across booking projections.
func (l Location) Address() string {
	return fmt.Sprintf("%s %s, %s %s", l.StreetNumber, l.StreetName, l.PostalCode, l.City)
}
