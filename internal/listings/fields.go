package listings

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"horse_portal_backend/platform/apperr"
)

// FieldSpec describes one detail field of the active variant for rendering.
type FieldSpec struct {
	Name      string     `json:"name"`
	Kind      FieldKind  `json:"kind"`
	Required  bool       `json:"required"`
	Options   []string   `json:"options,omitempty"`
	ItemPrice bool       `json:"itemPrice,omitempty"`
	Value     any        `json:"value"`
	Items     []ListItem `json:"items,omitempty"`
}

// Fields lists the fields of d in display order. Catalog-only variants have none.
func Fields(d Details) []FieldSpec {
	if d == nil {
		return []FieldSpec{}
	}
	return lo.Map(d.bindings(), func(b binding, _ int) FieldSpec {
		spec := FieldSpec{Name: b.name, Kind: b.kind, Required: b.required, Options: b.options, ItemPrice: b.itemPrice}
		switch b.kind {
		case KindBool:
			spec.Value = *b.flag
		case KindToggle:
			spec.Value = append([]string{}, *b.set...)
		case KindList:
			spec.Items = append([]ListItem{}, *b.items...)
			spec.Value = len(*b.items)
		default:
			spec.Value = *b.text
		}
		return spec
	})
}

func findBinding(d Details, name string, kinds ...FieldKind) (binding, error) {
	if d == nil {
		return binding{}, apperr.BadRequest("choose a service type first")
	}
	b, ok := lo.Find(d.bindings(), func(b binding) bool { return b.name == name })
	if !ok {
		return binding{}, apperr.BadRequest(fmt.Sprintf("unknown field %q for %s", name, d.ServiceType()))
	}
	if !lo.Contains(kinds, b.kind) {
		return binding{}, apperr.BadRequest(fmt.Sprintf("field %q does not accept this edit", name))
	}
	return b, nil
}

// SetDetailField writes a scalar field. Bool fields accept "true"/"false".
func SetDetailField(d Details, name, value string) error {
	b, err := findBinding(d, name, KindText, KindNumber, KindDate, KindSelect, KindBool)
	if err != nil {
		return err
	}
	if b.kind == KindBool {
		*b.flag = strings.EqualFold(strings.TrimSpace(value), "true")
		return nil
	}
	*b.text = value
	return nil
}

// ToggleDetailValue adds value to a toggle set when checked and removes it otherwise.
func ToggleDetailValue(d Details, name, value string, checked bool) error {
	b, err := findBinding(d, name, KindToggle)
	if err != nil {
		return err
	}
	present := lo.Contains(*b.set, value)
	switch {
	case checked && !present:
		*b.set = append(*b.set, value)
	case !checked && present:
		*b.set = lo.Without(*b.set, value)
	}
	return nil
}

// AppendDetailItem adds a blank row to a list field.
func AppendDetailItem(d Details, name string) error {
	b, err := findBinding(d, name, KindList)
	if err != nil {
		return err
	}
	*b.items = append(*b.items, ListItem{})
	return nil
}

// UpdateDetailItem sets name_ar, name_en or price of one row.
func UpdateDetailItem(d Details, name string, index int, itemField, value string) error {
	b, err := findBinding(d, name, KindList)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*b.items) {
		return apperr.BadRequest(fmt.Sprintf("%s has no row %d", name, index))
	}
	item := &(*b.items)[index]
	switch itemField {
	case "name_ar":
		item.NameAr = value
	case "name_en":
		item.NameEn = value
	case "price":
		if !b.itemPrice {
			return apperr.BadRequest(fmt.Sprintf("%s rows have no price", name))
		}
		item.Price = value
	default:
		return apperr.BadRequest(fmt.Sprintf("unknown row field %q", itemField))
	}
	return nil
}

// RemoveDetailItem drops one row of a list field.
func RemoveDetailItem(d Details, name string, index int) error {
	b, err := findBinding(d, name, KindList)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*b.items) {
		return apperr.BadRequest(fmt.Sprintf("%s has no row %d", name, index))
	}
	*b.items = append((*b.items)[:index:index], (*b.items)[index+1:]...)
	return nil
}
