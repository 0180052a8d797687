package apperrors

import (
	"errors"
	"fmt"
)

// Kind 錯誤分類，handler 依此決定 HTTP 狀態碼
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation error"
	case KindNotFound:
		return "not found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "internal error"
	}
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is matches a bare kind sentinel (empty message) by kind, otherwise kind and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message == "" {
		return e.Kind == t.Kind
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...interface{}) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// KindOf 回傳錯誤鏈中第一個 *Error 的分類，沒有則視為 internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// 分類 sentinel：errors.Is(err, ErrValidation) 會匹配所有 validation 錯誤
var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "authentication required"}
)

var (
	ErrShowNotFound      = NotFound("show not found")
	ErrInventoryNotFound = NotFound("ticket inventory not found")
	ErrBookingNotFound   = NotFound("booking not found")
	ErrUserNotFound      = NotFound("user not found")
	ErrComedianNotFound  = NotFound("comedian not found")

	ErrInvalidInput           = Validation("invalid input")
	ErrInvalidQuantity        = Validation("quantity must be between 1 and 10 (maximum 10 per booking)")
	ErrInsufficientTickets    = Validation("not enough tickets available")
	ErrCapacityBelowSold      = Validation("Cannot reduce capacity below sold tickets")
	ErrPriceLocked            = Validation("Cannot change ticket price after tickets have been sold")
	ErrCapacityIncreaseLocked = Validation("Cannot increase capacity after tickets have been sold")
	ErrComedianRemovalLocked  = Validation("Cannot remove comedians after tickets have been sold")
	ErrShowAlreadyPublished   = Validation("show is already published")
	ErrShowNotPublished       = Validation("show is not published")
	ErrShowInPast             = Validation("show date must be in the future")
	ErrNonPositiveCapacity    = Validation("total tickets must be greater than zero")
	ErrNonPositivePrice       = Validation("ticket price must be greater than zero")
	ErrShowHasBookings        = Validation("cannot unpublish a show that has bookings")
	ErrShowDisbursed          = Validation("show revenue has already been disbursed")
	ErrInvalidBookingStatus   = Validation("invalid booking status transition")
	ErrShowNotFinished        = Validation("show has not taken place yet")
	ErrInvalidRole            = Validation("invalid role")
	ErrNotPendingCreator      = Validation("user is not awaiting creator verification")
	ErrEmailTaken             = Validation("email is already registered")
	ErrInvalidFeePercent      = Validation("platform fee must be between 0 and 100 percent")
	ErrNegativeBookingFee     = Validation("booking fee cannot be negative")
	ErrTitleRequired          = Validation("title is required")
	ErrVenueRequired          = Validation("venue is required")
	ErrDateRequired           = Validation("date is required")
	ErrUnknownComedian        = Validation("one or more comedians do not exist")
	ErrNameRequired           = Validation("name is required")
	ErrEmailRequired          = Validation("email is required")
	ErrStageNameRequired      = Validation("stage name is required for comedians")

	ErrNotShowOwner    = Forbidden("only the show creator or an admin can do this")
	ErrNotVerified     = Forbidden("only verified organizers or comedians can publish shows")
	ErrNotCreator      = Forbidden("only organizers, comedians or admins can create shows")
	ErrAdminOnly       = Forbidden("admin access required")
	ErrNotBookingParty = Forbidden("not allowed to modify this booking")
)

// ErrShowHasBookingCount 刪除有訂位的節目時回傳，訊息帶上訂位數
func ErrShowHasBookingCount(count int) *Error {
	return Validationf("cannot delete show with %d booking(s)", count)
}
