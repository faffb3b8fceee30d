package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"swapnstay/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9 ()-]{6,20}$`)
)

// FieldError reports a rejected form field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Reason) }

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (document ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 50 {
		return "", false
	}
	return s, true
}

// Phone accepts an empty value or a loosely formatted phone number.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, rePhone.MatchString(s)
}

// MinPasswordLen matches the identity provider's weak-password threshold.
const MinPasswordLen = 6

func Password(s string) bool {
	return len(s) >= MinPasswordLen && len(s) <= 72 // bcrypt input limit
}

// Required trims s and rejects empty or oversized text.
func Required(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= max
}

// Listing limits. Totals over a full collection must stay within int and
// render in bounded time.
const (
	MaxQuantity = 1_000_000_000
	priceLen    = 32
)

// MaxPrice is the exclusive upper bound for a price.
var MaxPrice = decimal.New(1, 12)

// Quantity parses a whole number in [0, MaxQuantity].
func Quantity(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > MaxQuantity {
		return 0, false
	}
	return n, true
}

// Price parses a non-negative amount below MaxPrice with at most two decimal
// places. The exponent is checked before any arithmetic on the value.
func Price(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > priceLen {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > 12 || exp < -priceLen {
		return decimal.Zero, false
	}
	if d.GreaterThanOrEqual(MaxPrice) || !d.Equal(d.Truncate(2)) {
		return decimal.Zero, false
	}
	return d, true
}

// Status accepts one of the recognised product statuses.
func Status(s string) (domain.Status, bool) {
	st := domain.Status(strings.TrimSpace(s))
	return st, st.Known()
}
