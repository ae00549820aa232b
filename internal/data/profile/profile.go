package profile

import (
	"regexp"
	"strings"
	"unicode"

	apperrors "littlelemon/internal/core/errors"
)

const (
	OnboardingKey = "@app_onboarding_completed"
	ProfileKey    = "@user_profile_data"
)

var (
	firstNameRE = regexp.MustCompile(`^[A-Za-z]+$`)
	emailRE     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const phoneMask = "(999) 999-9999"

type Profile struct {
	ID            string        `json:"id,omitempty"`
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Avatar        string        `json:"avatar,omitempty"`
	Notifications Notifications `json:"notifications"`
}

type Notifications struct {
	OrderStatus     bool `json:"orderStatus"`
	PasswordChanges bool `json:"passwordChanges"`
	SpecialOffers   bool `json:"specialOffers"`
	Newsletter      bool `json:"newsletter"`
}

// NotificationKeys is the display order of the notification switches.
var NotificationKeys = []string{"orderStatus", "passwordChanges", "specialOffers", "newsletter"}

func (n Notifications) Get(key string) bool {
	switch key {
	case "orderStatus":
		return n.OrderStatus
	case "passwordChanges":
		return n.PasswordChanges
	case "specialOffers":
		return n.SpecialOffers
	case "newsletter":
		return n.Newsletter
	}
	return false
}

// Toggle flips the switch named key. Unknown keys are ignored.
func (n Notifications) Toggle(key string) Notifications {
	switch key {
	case "orderStatus":
		n.OrderStatus = !n.OrderStatus
	case "passwordChanges":
		n.PasswordChanges = !n.PasswordChanges
	case "specialOffers":
		n.SpecialOffers = !n.SpecialOffers
	case "newsletter":
		n.Newsletter = !n.Newsletter
	}
	return n
}

// NotificationLabel turns "orderStatus" into "Order Status".
func NotificationLabel(key string) string {
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func IsValidFirstName(name string) bool {
	return firstNameRE.MatchString(strings.TrimSpace(name))
}

func IsValidEmail(email string) bool {
	return emailRE.MatchString(strings.TrimSpace(email))
}

// Initials are the upper-cased first letters of first and last name.
func Initials(p Profile) string {
	var b strings.Builder
	for _, s := range []string{p.FirstName, p.LastName} {
		for _, r := range s {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}

// RawPhone keeps at most ten digits of s.
func RawPhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			if b.Len() == 10 {
				break
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone applies the (999) 999-9999 mask to the digits of raw, stopping
// once the digits run out.
func FormatPhone(raw string) string {
	digits := RawPhone(raw)
	if digits == "" {
		return ""
	}
	var b strings.Builder
	next := 0
	for _, m := range phoneMask {
		if next >= len(digits) {
			break
		}
		if m == '9' {
			b.WriteByte(digits[next])
			next++
			continue
		}
		b.WriteRune(m)
	}
	return b.String()
}

// Validate checks the fields a user can edit. Empty optional fields pass.
func (p Profile) Validate() error {
	if p.FirstName != "" && !IsValidFirstName(p.FirstName) {
		return apperrors.AddContext(apperrors.New(apperrors.CodeValidationError, "first name must contain letters only"), apperrors.CtxField, "firstName")
	}
	if p.LastName != "" && !IsValidFirstName(p.LastName) {
		return apperrors.AddContext(apperrors.New(apperrors.CodeValidationError, "last name must contain letters only"), apperrors.CtxField, "lastName")
	}
	if p.Email != "" && !IsValidEmail(p.Email) {
		return apperrors.AddContext(apperrors.New(apperrors.CodeValidationError, "email address is not valid"), apperrors.CtxField, "email")
	}
	if digits := RawPhone(p.Phone); p.Phone != "" && len(digits) != 10 {
		return apperrors.AddContext(apperrors.New(apperrors.CodeValidationError, "phone number must have 10 digits"), apperrors.CtxField, "phone")
	}
	return nil
}
