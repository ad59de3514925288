package models

// Package maps to the `packages` table: a pre-defined website offering a
// client can order instead of filing a custom request.
type Package struct {
	ID          uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code        string  `gorm:"column:code;size:64;uniqueIndex" json:"code"`
	Name        string  `gorm:"column:name;size:200" json:"name"`
	Description string  `gorm:"column:description;type:text" json:"description"`
	Price       float64 `gorm:"column:price" json:"price"`
	Currency    string  `gorm:"column:currency;size:3" json:"currency"`
	// Newline-separated feature bullets rendered by the client page.
	Features string `gorm:"column:features;type:text" json:"features"`
	Active   bool   `gorm:"column:active;default:true" json:"active"`
}

func (Package) TableName() string {
	return "packages"
}
