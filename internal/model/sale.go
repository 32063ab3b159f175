package model

import (
	"time"
)

// Sale records a single transaction against one merchandise item.
// UnitPrice is a snapshot of the merchandise price at sale time and never
// changes afterwards; TotalPrice is always UnitPrice * QuantitySold.
//
// ConsumerID is a pointer because rows written under the legacy schema
// predate the consumers table. New sales always carry a consumer; a NULL
// reference is only ever read, never written.
type Sale struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	MerchandiseID uint      `json:"merchandise_id" gorm:"not null;index"`
	ConsumerID    *uint     `json:"consumer_id" gorm:"index"`
	QuantitySold  int       `json:"quantity_sold" gorm:"not null"`
	UnitPrice     float64   `json:"unit_price" gorm:"not null"`
	TotalPrice    float64   `json:"total_price" gorm:"not null"`
	SaleDate      time.Time `json:"sale_date" gorm:"index;autoCreateTime"`
}

func (Sale) TableName() string {
	return "sales"
}
