package access

import (
	"time"

	"gorm.io/gorm"
)

// OwnerColumn is the foreign key to the owning account on every self-owned table.
const OwnerColumn = "user_id"

// OwnedBy restricts a query to rows owned by accountID. An empty id matches
// nothing rather than everything.
func OwnedBy(accountID string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if accountID == "" {
			return tx.Where("1 = 0")
		}
		return tx.Where(OwnerColumn+" = ?", accountID)
	}
}

// ActiveCenters is the shared read predicate for donation centers.
func ActiveCenters(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_active = ?", true)
}

// EmergencyFeed keeps requests that are still open at now.
func EmergencyFeed(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ? AND expires_at > ?", StatusActive, now)
	}
}

// ByUrgency orders critical first, then newest first within an urgency.
func ByUrgency(tx *gorm.DB) *gorm.DB {
	return tx.Order(urgencyOrderSQL).Order("created_at DESC")
}
