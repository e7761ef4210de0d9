package wizard

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/platform/phone"
	"horse_portal_backend/platform/validator"
)

// DateLayout is the wire format of date fields.
const DateLayout = "2006-01-02"

// Location field keys shared by both wizards.
const (
	FieldCountry     = "country"
	FieldGovernorate = "government"
	FieldCity        = "city"
)

var fieldValidator = validator.New()

// Rules accumulates the field errors of one step. Each check records at most
// one message per field; the first failing rule wins.
type Rules struct {
	Errs Errors
	tr   i18n.Translator
}

// NewRules starts an empty error set.
func NewRules(tr i18n.Translator) *Rules {
	return &Rules{Errs: Errors{}, tr: tr}
}

// Fail records key's message for field.
func (r *Rules) Fail(field, key string, args ...any) {
	r.Errs.Add(field, r.tr.T(key, args...))
}

// Required checks that value is non-empty after trimming.
func (r *Rules) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		r.Fail(field, i18n.MsgRequired)
		return false
	}
	return true
}

// MinRunes checks a required text of at least n characters.
func (r *Rules) MinRunes(field, value string, n int) {
	if !r.Required(field, value) {
		return
	}
	if utf8.RuneCountInString(value) < n {
		r.Fail(field, i18n.MsgMinLength, n)
	}
}

// Number parses a non-negative decimal. Empty input fails only when required.
func (r *Rules) Number(field, value string, required bool) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if required {
			r.Fail(field, i18n.MsgRequired)
		}
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		r.Fail(field, i18n.MsgInvalidNumber)
		return decimal.Zero, false
	}
	if d.IsNegative() {
		r.Fail(field, i18n.MsgNegativeNumber)
		return decimal.Zero, false
	}
	return d, true
}

// Integer parses a whole number of at least min.
func (r *Rules) Integer(field, value string, min int64, required bool) {
	d, ok := r.Number(field, value, required)
	if !ok {
		return
	}
	if !d.IsInteger() {
		r.Fail(field, i18n.MsgInvalidInteger)
		return
	}
	if d.LessThan(decimal.NewFromInt(min)) {
		r.Fail(field, i18n.MsgMinValue, min)
	}
}

// Price parses a non-negative price with a price-specific message.
func (r *Rules) Price(field, value string, required bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if required {
			r.Fail(field, i18n.MsgPriceRequired)
		}
		return
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil || d.IsNegative() {
		r.Fail(field, i18n.MsgInvalidPrice)
	}
}

// Date checks a YYYY-MM-DD value and returns it parsed.
func (r *Rules) Date(field, value string, required bool) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if required {
			r.Fail(field, i18n.MsgRequired)
		}
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		r.Fail(field, i18n.MsgInvalidDate)
		return time.Time{}, false
	}
	return t, true
}

// Email checks a required local@domain.tld address.
func (r *Rules) Email(field, value string) {
	if !r.Required(field, value) {
		return
	}
	if fieldValidator.Var(strings.TrimSpace(value), "email") != nil {
		r.Fail(field, i18n.MsgInvalidEmail)
	}
}

// Phone checks a required number valid for region.
func (r *Rules) Phone(field, value, region string) {
	if !r.Required(field, value) {
		return
	}
	if !phone.IsValid(value, region) {
		r.Fail(field, i18n.MsgInvalidPhone)
	}
}

// URL checks an absolute scheme://host URL. Empty input fails only when required.
func (r *Rules) URL(field, value string, required bool) {
	if strings.TrimSpace(value) == "" {
		if required {
			r.Fail(field, i18n.MsgRequired)
		}
		return
	}
	if !IsAbsoluteURL(value) {
		r.Fail(field, i18n.MsgInvalidURL)
	}
}

// OneOf checks that value is one of options. requiredKey is used when empty.
func (r *Rules) OneOf(field, value string, options []string, requiredKey string) {
	if strings.TrimSpace(value) == "" {
		r.Fail(field, requiredKey)
		return
	}
	if !lo.Contains(options, value) {
		r.Fail(field, i18n.MsgInvalidOption)
	}
}

// True checks an acceptance flag.
func (r *Rules) True(field string, value bool, key string) {
	if !value {
		r.Fail(field, key)
	}
}

// Location checks the country -> governorate -> city triplet. A child of an
// empty parent reports the parent as missing.
func (r *Rules) Location(country, governorate, city string) {
	if strings.TrimSpace(country) == "" {
		r.Fail(FieldCountry, i18n.MsgRequired)
		r.Fail(FieldGovernorate, i18n.MsgSelectCountryFirst)
		r.Fail(FieldCity, i18n.MsgSelectCountryFirst)
		return
	}
	if strings.TrimSpace(governorate) == "" {
		r.Fail(FieldGovernorate, i18n.MsgRequired)
		r.Fail(FieldCity, i18n.MsgSelectGovernorateFirst)
		return
	}
	r.Required(FieldCity, city)
}

// IsAbsoluteURL reports whether value parses as scheme://host/...
func IsAbsoluteURL(value string) bool {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https")
}
