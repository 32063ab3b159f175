package service

import (
	"errors"
	"fmt"

	"sales-service/internal/model"

	"gorm.io/gorm"
)

// RecordSaleInput carries the validated parameters for recording a sale.
type RecordSaleInput struct {
	MerchandiseID uint
	ConsumerID    uint
	QuantitySold  int
}

// AmendSaleInput carries the new state for an existing sale. The consumer
// reference is mandatory on amendment, same as on recording.
type AmendSaleInput struct {
	ConsumerID   uint
	QuantitySold int
}

// RecordSale inserts a sale and decrements the merchandise stock in a
// single transaction. The unit price is snapshotted from the merchandise
// at this moment and never changes afterwards.
func RecordSale(db *gorm.DB, in RecordSaleInput) (*model.Sale, error) {
	if in.QuantitySold <= 0 {
		return nil, fmt.Errorf("%w: quantity sold must be positive", ErrInvalidArgument)
	}
	if in.ConsumerID == 0 {
		return nil, fmt.Errorf("%w: consumer is required", ErrInvalidArgument)
	}

	var sale model.Sale
	err := db.Transaction(func(tx *gorm.DB) error {
		var merch model.Merchandise
		if err := tx.First(&merch, in.MerchandiseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: merchandise %d", ErrNotFound, in.MerchandiseID)
			}
			return err
		}

		var consumer model.Consumer
		if err := tx.First(&consumer, in.ConsumerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: consumer %d", ErrNotFound, in.ConsumerID)
			}
			return err
		}

		if merch.Quantity < in.QuantitySold {
			return fmt.Errorf("%w: insufficient quantity for merchandise %d (have %d, want %d)",
				ErrConflict, merch.ID, merch.Quantity, in.QuantitySold)
		}

		consumerID := in.ConsumerID
		sale = model.Sale{
			MerchandiseID: merch.ID,
			ConsumerID:    &consumerID,
			QuantitySold:  in.QuantitySold,
			UnitPrice:     merch.Price,
			TotalPrice:    merch.Price * float64(in.QuantitySold),
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		return tx.Model(&model.Merchandise{}).
			Where("id = ?", merch.ID).
			Update("quantity", gorm.Expr("quantity - ?", in.QuantitySold)).Error
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// AmendSale changes a sale's quantity and consumer. The merchandise stock
// is adjusted by the signed quantity delta, so reducing a sale releases
// stock and increasing one consumes it. The total is recomputed from the
// sale's pinned unit price, not the merchandise's current price.
func AmendSale(db *gorm.DB, saleID uint, in AmendSaleInput) (*model.Sale, error) {
	if in.QuantitySold <= 0 {
		return nil, fmt.Errorf("%w: quantity sold must be positive", ErrInvalidArgument)
	}
	if in.ConsumerID == 0 {
		return nil, fmt.Errorf("%w: consumer is required", ErrInvalidArgument)
	}

	var sale model.Sale
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sale, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: sale %d", ErrNotFound, saleID)
			}
			return err
		}

		var consumer model.Consumer
		if err := tx.First(&consumer, in.ConsumerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: consumer %d", ErrNotFound, in.ConsumerID)
			}
			return err
		}

		var merch model.Merchandise
		if err := tx.First(&merch, sale.MerchandiseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: merchandise %d", ErrNotFound, sale.MerchandiseID)
			}
			return err
		}

		delta := in.QuantitySold - sale.QuantitySold
		if delta > merch.Quantity {
			return fmt.Errorf("%w: insufficient quantity for merchandise %d (have %d, need %d more)",
				ErrConflict, merch.ID, merch.Quantity, delta)
		}

		if delta != 0 {
			if err := tx.Model(&model.Merchandise{}).
				Where("id = ?", merch.ID).
				Update("quantity", gorm.Expr("quantity - ?", delta)).Error; err != nil {
				return err
			}
		}

		consumerID := in.ConsumerID
		sale.ConsumerID = &consumerID
		sale.QuantitySold = in.QuantitySold
		sale.TotalPrice = sale.UnitPrice * float64(in.QuantitySold)
		return tx.Save(&sale).Error
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// ReverseSale deletes a sale and restores its quantity to the merchandise
// item, in a single transaction.
func ReverseSale(db *gorm.DB, saleID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var sale model.Sale
		if err := tx.First(&sale, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: sale %d", ErrNotFound, saleID)
			}
			return err
		}

		if err := tx.Model(&model.Merchandise{}).
			Where("id = ?", sale.MerchandiseID).
			Update("quantity", gorm.Expr("quantity + ?", sale.QuantitySold)).Error; err != nil {
			return err
		}

		return tx.Delete(&sale).Error
	})
}
