package model

import "time"

// BookingStatus 訂位狀態類型
type BookingStatus string

const (
	BookingStatusPending         BookingStatus = "PENDING"
	BookingStatusConfirmedUnpaid BookingStatus = "CONFIRMED_UNPAID"
	BookingStatusConfirmed       BookingStatus = "CONFIRMED"
	BookingStatusCancelled       BookingStatus = "CANCELLED"
	BookingStatusFailed          BookingStatus = "FAILED"
)

const (
	MinBookingQuantity = 1
	MaxBookingQuantity = 10
)

// ActiveBookingStatuses 計入已售票數的狀態
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmedUnpaid,
	BookingStatusConfirmed,
}

// IsValid 驗證狀態是否有效
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmedUnpaid, BookingStatusConfirmed,
		BookingStatusCancelled, BookingStatusFailed:
		return true
	}
	return false
}

// IsActive 是否佔用庫存
func (s BookingStatus) IsActive() bool {
	for _, status := range ActiveBookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	transitions := map[BookingStatus][]BookingStatus{
		BookingStatusPending: {
			BookingStatusConfirmedUnpaid, BookingStatusConfirmed,
			BookingStatusCancelled, BookingStatusFailed,
		},
		BookingStatusConfirmedUnpaid: {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusFailed},
		BookingStatusConfirmed:       {BookingStatusCancelled},
		BookingStatusCancelled:       {}, // 不能轉換到任何狀態
		BookingStatusFailed:          {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// ValidQuantity 單筆訂位張數是否在允許範圍
func ValidQuantity(quantity int) bool {
	return quantity >= MinBookingQuantity && quantity <= MaxBookingQuantity
}

// Booking 訂位模型
type Booking struct {
	ID          int           `json:"id" db:"id"`
	ShowID      int           `json:"show_id" db:"show_id"`
	UserID      int           `json:"user_id" db:"user_id"`
	Quantity    int           `json:"quantity" db:"quantity"`
	UnitPrice   int           `json:"unit_price" db:"unit_price"`
	TotalAmount int           `json:"total_amount" db:"total_amount"`
	PlatformFee int           `json:"platform_fee" db:"platform_fee"`
	BookingFee  int           `json:"booking_fee" db:"booking_fee"`
	Status      BookingStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// IsOwnedBy 是否為該使用者的訂位
func (b *Booking) IsOwnedBy(userID int) bool {
	return b.UserID == userID
}

// BookingStats 某節目的訂位統計
type BookingStats struct {
	// Count 所有狀態的訂位筆數，用於判斷「是否已有訂位」
	Count int
	// Sold 有效訂位的張數加總
	Sold int
}

// HasBookings 是否存在任何訂位紀錄
func (s BookingStats) HasBookings() bool {
	return s.Count > 0
}

// CreateBookingRequest 建立訂位請求
type CreateBookingRequest struct {
	ShowID   string `json:"show_id" binding:"required,uuid"`
	Quantity int    `json:"quantity"`
}
