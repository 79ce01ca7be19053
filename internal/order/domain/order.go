package domain

import (
	"time"

	accountdomain "github.com/finalstore/backend/internal/account/domain"
)

// Order records a completed purchase. ItemIDs and Quantities are parallel
// slices: Quantities[i] is the quantity purchased of ItemIDs[i].
type Order struct {
	ID          int64
	AccountID   accountdomain.AccountID
	ItemIDs     []int64
	Quantities  []int32
	OrderNo     string
	PurchasedAt time.Time
	CreatedAt   time.Time
}
