package flow

import "slices"

// Variant describes one flow chart over the same records: which column
// feeds the category tier and which fallback blank categories get.
type Variant struct {
	Name      string
	Columns   Columns
	Fallbacks Fallbacks
}

// Built-in variant names.
const (
	VariantDisciplines = "disciplines"
	VariantEvents      = "events"
)

var variants = []Variant{
	{
		Name:      VariantDisciplines,
		Columns:   DefaultColumns(),
		Fallbacks: DefaultFallbacks(),
	},
	{
		Name:      VariantEvents,
		Columns:   Columns{Country: "country", Category: "events", Subgroup: "gender"},
		Fallbacks: Fallbacks{Country: UnknownCountry, Category: Unknown, Subgroup: Unknown},
	},
}

// Variants returns the built-in chart variants.
func Variants() []Variant { return slices.Clone(variants) }

// LookupVariant returns the built-in variant with the given name.
func LookupVariant(name string) (Variant, bool) {
	for _, v := range variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Options returns [DefaultOptions] with the variant's columns and fallbacks.
func (v Variant) Options() Options {
	opts := DefaultOptions()
	opts.Columns = v.Columns
	opts.Fallbacks = v.Fallbacks
	return opts
}
