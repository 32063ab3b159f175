package service

import (
	"errors"
	"fmt"
	"strings"

	"sales-service/internal/model"

	"gorm.io/gorm"
)

// MerchandiseInput carries the fields for creating or replacing a
// merchandise item.
type MerchandiseInput struct {
	Name        string
	Description string
	Quantity    int
	Price       float64
}

func (in MerchandiseInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidArgument)
	}
	if in.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidArgument)
	}
	return nil
}

// CreateMerchandise adds a new item to the catalog.
func CreateMerchandise(db *gorm.DB, in MerchandiseInput) (*model.Merchandise, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	merch := model.Merchandise{
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Price:       in.Price,
	}
	if err := db.Create(&merch).Error; err != nil {
		return nil, err
	}
	return &merch, nil
}

// UpdateMerchandise replaces an item's fields in place. Writing quantity
// here bypasses the ledger; it exists for administrative stock
// corrections and the caller owns keeping the ledger coherent.
func UpdateMerchandise(db *gorm.DB, id uint, in MerchandiseInput) (*model.Merchandise, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var merch model.Merchandise
	if err := db.First(&merch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: merchandise %d", ErrNotFound, id)
		}
		return nil, err
	}

	merch.Name = in.Name
	merch.Description = in.Description
	merch.Quantity = in.Quantity
	merch.Price = in.Price
	if err := db.Save(&merch).Error; err != nil {
		return nil, err
	}
	return &merch, nil
}

// DeleteMerchandise removes an item unless it is referenced by any sale.
// Guard and delete run in one transaction so a sale recorded in between
// cannot leave a dangling merchandise reference.
func DeleteMerchandise(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Sale{}).Where("merchandise_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: merchandise %d has %d existing sales records", ErrConflict, id, count)
		}

		result := tx.Delete(&model.Merchandise{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: merchandise %d", ErrNotFound, id)
		}
		return nil
	})
}

// GetMerchandise fetches a single item by id.
func GetMerchandise(db *gorm.DB, id uint) (*model.Merchandise, error) {
	var merch model.Merchandise
	if err := db.First(&merch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: merchandise %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &merch, nil
}

// ListMerchandise returns the whole catalog ordered by name.
func ListMerchandise(db *gorm.DB) ([]model.Merchandise, error) {
	var items []model.Merchandise
	if err := db.Order("name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
