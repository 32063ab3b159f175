package service

import (
	"fmt"
	"strings"

	"sales-service/internal/model"

	"gorm.io/gorm"
)

// ConsumerInput carries the fields for creating a consumer. Everything
// but the name is optional.
type ConsumerInput struct {
	Name    string
	Phone   string
	Address string
	Notes   string
}

// CreateConsumer adds a new consumer to the directory.
func CreateConsumer(db *gorm.DB, in ConsumerInput) (*model.Consumer, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	consumer := model.Consumer{
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
		Notes:   in.Notes,
	}
	if err := db.Create(&consumer).Error; err != nil {
		return nil, err
	}
	return &consumer, nil
}

// DeleteConsumer removes a consumer unless it is referenced by any sale.
// Guard and delete run in one transaction so a sale recorded in between
// cannot leave a dangling consumer reference.
func DeleteConsumer(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Sale{}).Where("consumer_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: consumer %d has %d existing sales records", ErrConflict, id, count)
		}

		result := tx.Delete(&model.Consumer{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: consumer %d", ErrNotFound, id)
		}
		return nil
	})
}

// ListConsumers returns all consumers ordered by name, with id as a
// stable tie-break for equal names.
func ListConsumers(db *gorm.DB) ([]model.Consumer, error) {
	var consumers []model.Consumer
	if err := db.Order("name, id").Find(&consumers).Error; err != nil {
		return nil, err
	}
	return consumers, nil
}
