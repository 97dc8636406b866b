package bac

import (
	"sort"
	"strings"
)

// DrinkSpec is a catalog entry: the default strength and serving volume for a
// drink type.
type DrinkSpec struct {
	AlcoholPercent float64
	VolumeOz       float64
}

// DrinkOverrides optionally replaces catalog defaults when logging a drink.
// Zero fields keep the catalog value.
type DrinkOverrides struct {
	VolumeOz       float64
	AlcoholPercent float64
}

// Catalog resolves drink type names to serving specs. Unknown types resolve
// to a fallback spec rather than failing, so every user entry is recorded.
type Catalog struct {
	specs    map[string]DrinkSpec
	fallback DrinkSpec
}

// DefaultCatalog returns the built-in drink database.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[string]DrinkSpec{
		"beer":     {AlcoholPercent: 5.0, VolumeOz: 12.0},
		"wine":     {AlcoholPercent: 12.0, VolumeOz: 5.0},
		"liquor":   {AlcoholPercent: 40.0, VolumeOz: 1.5},
		"cocktail": {AlcoholPercent: 15.0, VolumeOz: 8.0},
	}, DrinkSpec{AlcoholPercent: 5.0, VolumeOz: 12.0})
}

// NewCatalog builds a catalog from the given entries. The fallback spec is
// used for types not present in specs. The input map is copied; the catalog
// is immutable after construction.
func NewCatalog(specs map[string]DrinkSpec, fallback DrinkSpec) *Catalog {
	copied := make(map[string]DrinkSpec, len(specs))
	for name, spec := range specs {
		copied[strings.ToLower(name)] = spec
	}
	return &Catalog{specs: copied, fallback: fallback}
}

// Resolve returns the spec for a drink type with overrides applied. Lookup is
// case-insensitive; unknown types resolve to the fallback.
func (c *Catalog) Resolve(drinkType string, overrides DrinkOverrides) DrinkSpec {
	spec, ok := c.specs[strings.ToLower(strings.TrimSpace(drinkType))]
	if !ok {
		spec = c.fallback
	}
	if overrides.VolumeOz > 0 {
		spec.VolumeOz = overrides.VolumeOz
	}
	if overrides.AlcoholPercent > 0 {
		spec.AlcoholPercent = overrides.AlcoholPercent
	}
	return spec
}

// Known reports whether the drink type has a catalog entry.
func (c *Catalog) Known(drinkType string) bool {
	_, ok := c.specs[strings.ToLower(strings.TrimSpace(drinkType))]
	return ok
}

// Types returns the catalog's drink type names in sorted order.
func (c *Catalog) Types() []string {
	types := make([]string, 0, len(c.specs))
	for name := range c.specs {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// Spec returns the catalog entry for a type, or the fallback when unknown.
func (c *Catalog) Spec(drinkType string) DrinkSpec {
	return c.Resolve(drinkType, DrinkOverrides{})
}

// Fallback returns the spec applied to unknown drink types.
func (c *Catalog) Fallback() DrinkSpec {
	return c.fallback
}
