package model

import (
	"time"
)

// Consumer represents a buyer in the directory. Phone, address, notes and
// the timestamps were added after the first release; legacy stores gain
// them through the schema migrations in pkg/database.
type Consumer struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;index"`
	Phone     string    `json:"phone" gorm:"type:varchar(50)"`
	Address   string    `json:"address" gorm:"type:text"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Consumer) TableName() string {
	return "consumers"
}
