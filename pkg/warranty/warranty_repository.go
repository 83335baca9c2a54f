package warranty

import (
	"context"
	"errors"
	"strings"
	"time"

	"warranty-hub-backend/domain"
	"warranty-hub-backend/entities"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type (
	WarrantyRepository interface {
		CreateWarranty(ctx context.Context, warranty *entities.Warranty) error
		GetWarrantyByID(ctx context.Context, id string) (*entities.Warranty, error)
		GetWarranties(ctx context.Context, storeID string, status string, notifyDays int, page, limit int) ([]*entities.Warranty, int64, error)
		GetWarrantiesByCustomer(ctx context.Context, customerID string, page, limit int) ([]*entities.Warranty, int64, error)
		UpdateWarranty(ctx context.Context, warranty *entities.Warranty) error
		DeleteWarranty(ctx context.Context, id string) error
		MaxCodeSuffix(ctx context.Context, storeID string, prefix string) (int, error)
		CodeExists(ctx context.Context, storeID string, code string) (bool, error)

		AddItem(ctx context.Context, item *entities.WarrantyItem) error
		GetItemByID(ctx context.Context, id string) (*entities.WarrantyItem, error)
		GetItemSerials(ctx context.Context, warrantyID string) ([]string, error)
		UpdateItem(ctx context.Context, item *entities.WarrantyItem) error
		DeleteItem(ctx context.Context, id string) error

		GetDashboardStats(ctx context.Context, storeID string, notifyDays int) (domain.DashboardStatsResponse, error)
		GetItemsEnteringNotifyWindow(ctx context.Context, day time.Time) ([]*entities.WarrantyItem, error)
	}

	warrantyRepository struct {
		db *gorm.DB
	}
)

func NewWarrantyRepository(db *gorm.DB) WarrantyRepository {
	return &warrantyRepository{db: db}
}

// translateError maps unique-index violations onto the domain conflicts the
// allocator retry loop distinguishes on.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "idx_warranties_store_code"):
			return domain.ErrCodeTaken
		case strings.Contains(pgErr.ConstraintName, "idx_warranty_items_warranty_serial"):
			return domain.ErrSerialConflict
		}
	}
	return err
}

func (r *warrantyRepository) CreateWarranty(ctx context.Context, warranty *entities.Warranty) error {
	// gorm inserts the header and its items in one transaction, so a concurrent
	// request never observes a partially-created warranty.
	if err := r.db.WithContext(ctx).Create(warranty).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *warrantyRepository) GetWarrantyByID(ctx context.Context, id string) (*entities.Warranty, error) {
	var warranty entities.Warranty
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Store.StoreProfile").
		Where("id = ?", id).
		First(&warranty).Error; err != nil {
		return nil, err
	}
	return &warranty, nil
}

// statusFilterSQL classifies items with the same ceil arithmetic as the Go
// deriver so the filter and the rendered status always agree.
func statusFilterSQL(status string) string {
	const daysLeft = "CEIL(EXTRACT(EPOCH FROM (wi.expiry_date - NOW())) / 86400)"
	switch status {
	case StatusUnknown:
		return "wi.expiry_date IS NULL"
	case StatusExpired:
		return "wi.expiry_date IS NOT NULL AND " + daysLeft + " < 0"
	case StatusNearing:
		return "wi.expiry_date IS NOT NULL AND " + daysLeft + " >= 0 AND " + daysLeft + " <= ?"
	case StatusActive:
		return "wi.expiry_date IS NOT NULL AND " + daysLeft + " > ?"
	default:
		return ""
	}
}

func (r *warrantyRepository) GetWarranties(ctx context.Context, storeID string, status string, notifyDays int, page, limit int) ([]*entities.Warranty, int64, error) {
	var warranties []*entities.Warranty
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Where("store_id = ?", storeID)

	if cond := statusFilterSQL(status); cond != "" {
		sub := "EXISTS (SELECT 1 FROM warranty_items wi WHERE wi.warranty_id = warranties.id AND wi.deleted_at IS NULL AND " + cond + ")"
		if strings.Contains(cond, "?") {
			query = query.Where(sub, notifyDays)
		} else {
			query = query.Where(sub)
		}
	}

	if err := query.Model(&entities.Warranty{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Items").
		Offset(offset).Limit(limit).
		Order("created_at desc").
		Find(&warranties).Error; err != nil {
		return nil, 0, err
	}
	return warranties, count, nil
}

func (r *warrantyRepository) GetWarrantiesByCustomer(ctx context.Context, customerID string, page, limit int) ([]*entities.Warranty, int64, error) {
	var warranties []*entities.Warranty
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Where("customer_id = ?", customerID)

	if err := query.Model(&entities.Warranty{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Items").
		Preload("Store.StoreProfile").
		Offset(offset).Limit(limit).
		Order("created_at desc").
		Find(&warranties).Error; err != nil {
		return nil, 0, err
	}
	return warranties, count, nil
}

func (r *warrantyRepository) UpdateWarranty(ctx context.Context, warranty *entities.Warranty) error {
	if err := r.db.WithContext(ctx).Save(warranty).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *warrantyRepository) DeleteWarranty(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("warranty_id = ?", id).Delete(&entities.WarrantyItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Warranty{}).Error
	})
}

// MaxCodeSuffix reads the highest numeric suffix among the store's codes
// sharing the prefix. The cast keeps ordering numeric rather than
// lexicographic, so widths past three digits stay correct.
func (r *warrantyRepository) MaxCodeSuffix(ctx context.Context, storeID string, prefix string) (int, error) {
	var maxSuffix int
	err := r.db.WithContext(ctx).
		Model(&entities.Warranty{}).
		Select("COALESCE(MAX(CAST(SUBSTRING(code FROM ?) AS INTEGER)), 0)", len(prefix)+1).
		Where("store_id = ? AND code ~ ?", storeID, "^"+prefix+"[0-9]+$").
		Scan(&maxSuffix).Error
	if err != nil {
		return 0, err
	}
	return maxSuffix, nil
}

func (r *warrantyRepository) CodeExists(ctx context.Context, storeID string, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Warranty{}).
		Where("store_id = ? AND code = ?", storeID, code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *warrantyRepository) AddItem(ctx context.Context, item *entities.WarrantyItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *warrantyRepository) GetItemByID(ctx context.Context, id string) (*entities.WarrantyItem, error) {
	var item entities.WarrantyItem
	if err := r.db.WithContext(ctx).
		Preload("Warranty").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *warrantyRepository) GetItemSerials(ctx context.Context, warrantyID string) ([]string, error) {
	var serials []string
	if err := r.db.WithContext(ctx).
		Model(&entities.WarrantyItem{}).
		Where("warranty_id = ?", warrantyID).
		Pluck("serial", &serials).Error; err != nil {
		return nil, err
	}
	return serials, nil
}

func (r *warrantyRepository) UpdateItem(ctx context.Context, item *entities.WarrantyItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *warrantyRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.WarrantyItem{}).Error
}

func (r *warrantyRepository) GetDashboardStats(ctx context.Context, storeID string, notifyDays int) (domain.DashboardStatsResponse, error) {
	var stats domain.DashboardStatsResponse

	if err := r.db.WithContext(ctx).
		Model(&entities.Warranty{}).
		Where("store_id = ?", storeID).
		Count(&stats.TotalWarranties).Error; err != nil {
		return stats, err
	}

	// days_left mirrors the Go deriver: ceil of the 24-hour-window distance.
	row := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_items,
			COUNT(*) FILTER (WHERE wi.expiry_date IS NULL) AS unknown_items,
			COUNT(*) FILTER (WHERE wi.expiry_date IS NOT NULL
				AND CEIL(EXTRACT(EPOCH FROM (wi.expiry_date - NOW())) / 86400) < 0) AS expired_items,
			COUNT(*) FILTER (WHERE wi.expiry_date IS NOT NULL
				AND CEIL(EXTRACT(EPOCH FROM (wi.expiry_date - NOW())) / 86400) >= 0
				AND CEIL(EXTRACT(EPOCH FROM (wi.expiry_date - NOW())) / 86400) <= ?) AS nearing_items,
			COUNT(*) FILTER (WHERE wi.expiry_date IS NOT NULL
				AND CEIL(EXTRACT(EPOCH FROM (wi.expiry_date - NOW())) / 86400) > ?) AS active_items
		FROM warranty_items wi
		JOIN warranties w ON w.id = wi.warranty_id
		WHERE w.store_id = ? AND wi.deleted_at IS NULL AND w.deleted_at IS NULL`,
		notifyDays, notifyDays, storeID).Row()

	if err := row.Scan(
		&stats.TotalItems,
		&stats.UnknownItems,
		&stats.ExpiredItems,
		&stats.NearingItems,
		&stats.ActiveItems,
	); err != nil {
		return stats, err
	}
	return stats, nil
}

// GetItemsEnteringNotifyWindow returns items whose days_left lands exactly on
// the owning store's notify threshold for the given day, so the daily reminder
// run emails each item once.
func (r *warrantyRepository) GetItemsEnteringNotifyWindow(ctx context.Context, day time.Time) ([]*entities.WarrantyItem, error) {
	var items []*entities.WarrantyItem

	if err := r.db.WithContext(ctx).
		Joins("JOIN warranties w ON w.id = warranty_items.warranty_id").
		Joins("LEFT JOIN store_profiles sp ON sp.user_id = w.store_id").
		Where("warranty_items.expiry_date IS NOT NULL").
		Where("warranty_items.expiry_date >= ? + (COALESCE(sp.notify_days_in_advance, 14) * INTERVAL '1 day')", day).
		Where("warranty_items.expiry_date < ? + ((COALESCE(sp.notify_days_in_advance, 14) + 1) * INTERVAL '1 day')", day).
		Where("w.deleted_at IS NULL").
		Preload("Warranty.Store.StoreProfile").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
