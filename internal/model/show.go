package model

import (
	"time"

	"github.com/google/uuid"
)

type Show struct {
	ID                int        `json:"id" db:"id"`
	ShowID            uuid.UUID  `json:"show_id" db:"show_id"`
	Title             string     `json:"title" db:"title"`
	Description       *string    `json:"description,omitempty" db:"description"`
	Date              time.Time  `json:"date" db:"date"`
	Venue             string     `json:"venue" db:"venue"`
	MapLink           *string    `json:"map_link,omitempty" db:"map_link"`
	TicketPrice       int        `json:"ticket_price" db:"ticket_price"`
	TotalTickets      int        `json:"total_tickets" db:"total_tickets"`
	PosterURL         *string    `json:"poster_url,omitempty" db:"poster_url"`
	MediaLinks        []string   `json:"media_links" db:"media_links"`
	IsPublished       bool       `json:"is_published" db:"is_published"`
	IsDisbursed       bool       `json:"is_disbursed" db:"is_disbursed"`
	CustomPlatformFee *int       `json:"custom_platform_fee,omitempty" db:"custom_platform_fee"`
	CreatedBy         int        `json:"created_by" db:"created_by"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
	DisbursedAt       *time.Time `json:"disbursed_at,omitempty" db:"disbursed_at"`

	// 以下欄位由 service 補上，不直接對應 shows 資料表
	Available   *int  `json:"available,omitempty" db:"-"`
	ComedianIDs []int `json:"comedian_ids,omitempty" db:"-"`
}

// IsUpcoming 節目日期是否晚於 now
func (s *Show) IsUpcoming(now time.Time) bool {
	return s.Date.After(now)
}

// IsOwnedBy 是否為該使用者建立的節目
func (s *Show) IsOwnedBy(userID int) bool {
	return s.CreatedBy == userID
}

// CreateShowParams 建立節目所需欄位
type CreateShowParams struct {
	Title        string
	Description  *string
	Date         time.Time
	Venue        string
	MapLink      *string
	TicketPrice  int
	TotalTickets int
	PosterURL    *string
	MediaLinks   []string
	ComedianIDs  []int
}

// UpdateShowParams 為 nil 的欄位表示不更新
type UpdateShowParams struct {
	Title        *string
	Description  *string
	Date         *time.Time
	Venue        *string
	MapLink      *string
	TicketPrice  *int
	TotalTickets *int
	PosterURL    *string
	MediaLinks   []string
	ComedianIDs  []int
	// SetComedians 區分「沒帶 comedian_ids」與「帶了空陣列」
	SetComedians bool
}

// IsEmpty 沒有任何欄位要更新
func (p UpdateShowParams) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil && p.Venue == nil &&
		p.MapLink == nil && p.TicketPrice == nil && p.TotalTickets == nil &&
		p.PosterURL == nil && p.MediaLinks == nil && !p.SetComedians
}

// ListMode 節目列表的使用情境
type ListMode string

const (
	ListModeDefault   ListMode = ""
	ListModePublic    ListMode = "public"
	ListModeDiscovery ListMode = "discovery"
	ListModeManage    ListMode = "manage"
)

func (m ListMode) IsValid() bool {
	switch m {
	case ListModeDefault, ListModePublic, ListModeDiscovery, ListModeManage:
		return true
	}
	return false
}

// ShowFilter 可見性條件，所有非零欄位以 AND 組合
type ShowFilter struct {
	// CreatedBy 只看某位建立者的節目
	CreatedBy *int
	// PublishedOnly is_published = true
	PublishedOnly bool
	// PublishedOrCreatedBy (is_published = true OR created_by = X)
	PublishedOrCreatedBy *int
	// From date >= From
	From *time.Time
}

// ListShowsParams 列表查詢參數
type ListShowsParams struct {
	Mode   ListMode
	Search string
	Limit  int
	Offset int
}

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Normalize 補上預設分頁並限制上限
func (p ListShowsParams) Normalize() ListShowsParams {
	if p.Limit <= 0 {
		p.Limit = DefaultListLimit
	}
	if p.Limit > MaxListLimit {
		p.Limit = MaxListLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
