package model

import "time"

// Role 使用者角色，組織者與喜劇演員各有未驗證/已驗證兩個等級
type Role string

const (
	RoleAudience            Role = "AUDIENCE"
	RoleOrganizerUnverified Role = "ORGANIZER_UNVERIFIED"
	RoleOrganizerVerified   Role = "ORGANIZER_VERIFIED"
	RoleComedianUnverified  Role = "COMEDIAN_UNVERIFIED"
	RoleComedianVerified    Role = "COMEDIAN_VERIFIED"
	RoleAdmin               Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAudience, RoleOrganizerUnverified, RoleOrganizerVerified,
		RoleComedianUnverified, RoleComedianVerified, RoleAdmin:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) IsOrganizer() bool {
	return r == RoleOrganizerUnverified || r == RoleOrganizerVerified
}

func (r Role) IsComedian() bool {
	return r == RoleComedianUnverified || r == RoleComedianVerified
}

// IsCreator 可以建立節目的角色（不論是否已驗證）
func (r Role) IsCreator() bool {
	return r.IsOrganizer() || r.IsComedian()
}

// IsVerifiedCreator 通過審核、可以發佈節目的角色
func (r Role) IsVerifiedCreator() bool {
	return r == RoleOrganizerVerified || r == RoleComedianVerified
}

// IsPendingCreator 等待管理員審核的角色
func (r Role) IsPendingCreator() bool {
	return r == RoleOrganizerUnverified || r == RoleComedianUnverified
}

// Verified 回傳對應的已驗證等級
func (r Role) Verified() Role {
	switch r {
	case RoleOrganizerUnverified:
		return RoleOrganizerVerified
	case RoleComedianUnverified:
		return RoleComedianVerified
	}
	return r
}

// SelfAssignable 註冊時可自選的角色
func (r Role) SelfAssignable() bool {
	return r == RoleAudience || r == RoleOrganizerUnverified || r == RoleComedianUnverified
}

type User struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Actor 目前發出請求的身分；nil 代表訪客
type Actor struct {
	UserID int
	Role   Role
}

// ActorID 訪客回傳 0
func (a *Actor) ActorID() int {
	if a == nil {
		return 0
	}
	return a.UserID
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role.IsAdmin()
}

// CanManage 是否為節目建立者或管理員
func (a *Actor) CanManage(show *Show) bool {
	if a == nil {
		return false
	}
	return a.Role.IsAdmin() || show.IsOwnedBy(a.UserID)
}

type ComedianProfile struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	StageName string    `json:"stage_name" db:"stage_name"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ApprovalStatus 角色審核結果
type ApprovalStatus string

const (
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// RoleApproval 審核紀錄
type RoleApproval struct {
	ID        int            `json:"id" db:"id"`
	UserID    int            `json:"user_id" db:"user_id"`
	Status    ApprovalStatus `json:"status" db:"status"`
	DecidedBy int            `json:"decided_by" db:"decided_by"`
	DecidedAt time.Time      `json:"decided_at" db:"decided_at"`
	Note      *string        `json:"note,omitempty" db:"note"`
}

// RegisterUserParams 註冊參數；喜劇演員需提供藝名
type RegisterUserParams struct {
	Name      string
	Email     string
	Role      Role
	StageName string
	Bio       *string
}
