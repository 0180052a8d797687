package model

import "time"

// TicketInventory 每個節目一筆，記錄尚可售出的票數
type TicketInventory struct {
	ShowID    int       `json:"show_id" db:"show_id"`
	Available int       `json:"available" db:"available"`
	Version   int64     `json:"version" db:"version"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasStock 是否還能賣出 quantity 張
func (i *TicketInventory) HasStock(quantity int) bool {
	return i.Available >= quantity
}

// InventoryEvent 庫存異動後送往 stream 的訊息
type InventoryEvent struct {
	ShowID    int       `json:"show_id"`
	Available int       `json:"available"`
	Version   int64     `json:"version"`
	Reason    string    `json:"reason"`
	At        time.Time `json:"at"`
}

const (
	InventoryReasonBooked    = "booking_created"
	InventoryReasonCancelled = "booking_cancelled"
	InventoryReasonResized   = "capacity_updated"
)

// NewInventoryEvent 由最新的庫存列組出事件
func NewInventoryEvent(inv *TicketInventory, reason string) *InventoryEvent {
	return &InventoryEvent{
		ShowID:    inv.ShowID,
		Available: inv.Available,
		Version:   inv.Version,
		Reason:    reason,
		At:        time.Now().UTC(),
	}
}

// Availability 對外的剩餘票數
type Availability struct {
	ShowID    int   `json:"show_id"`
	Available int   `json:"available"`
	Version   int64 `json:"version"`
	Cached    bool  `json:"cached"`
}
