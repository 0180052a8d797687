package model

import "time"

// FeeSettings 平台預設費用，金額單位與票價相同
type FeeSettings struct {
	PlatformFeePercent  int       `json:"platform_fee_percent" db:"platform_fee_percent"`
	BookingFeePerTicket int       `json:"booking_fee_per_ticket" db:"booking_fee_per_ticket"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// BookingCharges 一筆訂位的金額拆分
type BookingCharges struct {
	Subtotal    int
	BookingFee  int
	PlatformFee int
	TotalAmount int
}

// ComputeCharges 依票價、張數與費率計算金額；customPercent 優先於平台預設
func ComputeCharges(ticketPrice, quantity int, settings FeeSettings, customPercent *int) BookingCharges {
	percent := settings.PlatformFeePercent
	if customPercent != nil {
		percent = *customPercent
	}
	subtotal := ticketPrice * quantity
	bookingFee := settings.BookingFeePerTicket * quantity
	return BookingCharges{
		Subtotal:    subtotal,
		BookingFee:  bookingFee,
		PlatformFee: subtotal * percent / 100,
		TotalAmount: subtotal + bookingFee,
	}
}

// SalesSummary 節目營收彙總
type SalesSummary struct {
	ShowID        int  `json:"show_id"`
	TicketsSold   int  `json:"tickets_sold"`
	BookingCount  int  `json:"booking_count"`
	Gross         int  `json:"gross"`
	PlatformFees  int  `json:"platform_fees"`
	BookingFees   int  `json:"booking_fees"`
	CreatorPayout int  `json:"creator_payout"`
	Disbursed     bool `json:"disbursed"`
}
