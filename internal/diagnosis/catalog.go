package diagnosis

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog is the immutable set of learning types used for classification.
type Catalog struct {
	types []Type // sorted by id
	byID  map[TypeID]int
}

// defaultCatalog is built from the seed types at package init.
var defaultCatalog = mustCatalog(seedTypes())

// DefaultCatalog returns the built-in six-type catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// NewCatalog validates types and builds a Catalog. Every type needs a
// unique, non-empty id and a non-empty formula.
func NewCatalog(types []Type) (*Catalog, error) {
	var errs []string
	if len(types) == 0 {
		errs = append(errs, "catalog has no types")
	}

	c := &Catalog{byID: make(map[TypeID]int, len(types))}
	for _, t := range types {
		switch {
		case t.ID == "":
			errs = append(errs, "type with empty ID")
			continue
		case len(t.Formula) == 0:
			errs = append(errs, fmt.Sprintf("type %q has an empty formula", t.ID))
		}
		if _, dup := c.byID[t.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate type ID: %q", t.ID))
			continue
		}
		c.byID[t.ID] = -1
		c.types = append(c.types, t.clone())
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("type catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}

	sort.Slice(c.types, func(i, j int) bool { return c.types[i].ID < c.types[j].ID })
	for i, t := range c.types {
		c.byID[t.ID] = i
	}
	return c, nil
}

func mustCatalog(types []Type) *Catalog {
	c, err := NewCatalog(types)
	if err != nil {
		panic(err)
	}
	return c
}

// Types returns a copy of every type sorted by id.
func (c *Catalog) Types() []Type {
	out := make([]Type, len(c.types))
	for i, t := range c.types {
		out[i] = t.clone()
	}
	return out
}

// Type returns the type with the given id.
func (c *Catalog) Type(id TypeID) (Type, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Type{}, false
	}
	return c.types[i].clone(), true
}

// DisplayName returns the display name for id, or the id itself if unknown.
func (c *Catalog) DisplayName(id TypeID) string {
	if t, ok := c.Type(id); ok {
		return t.DisplayName
	}
	return string(id)
}
