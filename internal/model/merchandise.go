package model

import (
	"time"
)

// Merchandise represents a stocked item in the catalog. Quantity is the
// current stock level; outside of administrative updates it is mutated
// only by the ledger operations in internal/service.
type Merchandise struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	Quantity    int       `json:"quantity" gorm:"not null;default:0"`
	Price       float64   `json:"price" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName keeps the historical singular table name.
func (Merchandise) TableName() string {
	return "merchandise"
}
