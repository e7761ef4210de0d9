package listings

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/internal/wizard"
)

// FieldKind is the input shape of a detail field.
type FieldKind string

const (
	KindText   FieldKind = "text"
	KindNumber FieldKind = "number"
	KindDate   FieldKind = "date"
	KindSelect FieldKind = "select"
	KindBool   FieldKind = "bool"
	KindToggle FieldKind = "toggle"
	KindList   FieldKind = "list"
)

// ListItem is one row of a repeating composite list.
type ListItem struct {
	NameAr string `json:"name_ar"`
	NameEn string `json:"name_en"`
	Price  string `json:"price,omitempty"`
}

// Details is the closed set of per-type detail variants. Each variant reads
// and writes only its own struct through the bindings it returns.
type Details interface {
	ServiceType() ServiceType
	// PayloadKey is the document key the variant is stored under; empty for
	// catalog-only types.
	PayloadKey() string
	bindings() []binding
}

// crossChecker is implemented by variants with rules spanning fields.
type crossChecker interface {
	crossCheck(r *wizard.Rules)
}

// binding ties a field name to a pointer inside a variant struct.
type binding struct {
	name     string
	kind     FieldKind
	required bool
	options  []string

	// number fields
	integer bool
	min     int64
	// text fields holding a URL
	url bool
	// list rows carry an optional price
	itemPrice bool
	// message used when a required toggle set is empty
	emptyKey string

	text  *string
	flag  *bool
	set   *[]string
	items *[]ListItem
}

func textField(name string, v *string, required bool) binding {
	return binding{name: name, kind: KindText, required: required, text: v}
}

func urlField(name string, v *string) binding {
	return binding{name: name, kind: KindText, url: true, text: v}
}

func numberField(name string, v *string, required bool) binding {
	return binding{name: name, kind: KindNumber, required: required, text: v}
}

func integerField(name string, v *string, required bool, min int64) binding {
	return binding{name: name, kind: KindNumber, required: required, integer: true, min: min, text: v}
}

func dateField(name string, v *string, required bool) binding {
	return binding{name: name, kind: KindDate, required: required, text: v}
}

func selectField(name string, v *string, required bool, options ...string) binding {
	return binding{name: name, kind: KindSelect, required: required, options: options, text: v}
}

func boolField(name string, v *bool) binding {
	return binding{name: name, kind: KindBool, flag: v}
}

func toggleField(name string, v *[]string, required bool, options ...string) binding {
	return binding{name: name, kind: KindToggle, required: required, options: options, set: v, emptyKey: i18n.MsgSelectAtLeastOne}
}

func listField(name string, v *[]ListItem, required, priced bool) binding {
	return binding{name: name, kind: KindList, required: required, itemPrice: priced, items: v}
}

// validateBinding applies the kind's rules to one binding.
func validateBinding(r *wizard.Rules, b binding) {
	switch b.kind {
	case KindText:
		if b.url {
			r.URL(b.name, *b.text, b.required)
		} else if b.required {
			r.Required(b.name, *b.text)
		}
	case KindNumber:
		if b.integer {
			r.Integer(b.name, *b.text, b.min, b.required)
		} else {
			r.Number(b.name, *b.text, b.required)
		}
	case KindDate:
		r.Date(b.name, *b.text, b.required)
	case KindSelect:
		if b.required || strings.TrimSpace(*b.text) != "" {
			r.OneOf(b.name, *b.text, b.options, i18n.MsgRequired)
		}
	case KindToggle:
		if b.required && len(*b.set) == 0 {
			r.Fail(b.name, b.emptyKey)
			return
		}
		for _, v := range *b.set {
			if !lo.Contains(b.options, v) {
				r.Fail(b.name, i18n.MsgInvalidOption)
				return
			}
		}
	case KindList:
		if b.required && len(*b.items) == 0 {
			r.Fail(b.name, i18n.MsgRequired)
			return
		}
		for i, item := range *b.items {
			key := itemKey(b.name, i)
			if strings.TrimSpace(item.NameAr) == "" || strings.TrimSpace(item.NameEn) == "" {
				r.Fail(key, i18n.MsgItemNamesRequired)
			}
			if b.itemPrice {
				r.Price(key+".price", item.Price, false)
			}
		}
	case KindBool:
	}
}

func itemKey(field string, index int) string {
	return field + "." + strconv.Itoa(index)
}
