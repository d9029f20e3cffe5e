// Package catalog is the static registry of synchronizable entity types.
//
// Every other sync component derives its behavior from the catalog: pull
// assemblers and the push applier walk entities in dependency-rank order so
// that a parent row is always transmitted and applied before the child rows
// that reference it. The registry is built once at process start and never
// mutated afterwards.
package catalog

import "sort"

// ParentRef declares a foreign-key dependency of an entity: Column in the
// child's field payload references a row of the Entity type.
type ParentRef struct {
	Column string
	Entity string
}

// ChildRef is the inbound view of a ParentRef: Column of the child's Table
// references rows of the entity it was resolved for.
type ChildRef struct {
	Table  string
	Column string
}

// Descriptor describes one synchronizable entity type.
type Descriptor struct {
	// Name is the entity type name used on the wire and as the map key in
	// pull/push payloads. By convention it equals the table name.
	Name string

	// Table is the relational table holding the entity's rows. Every table
	// carries farm_id, created_at, updated_at and deleted_at alongside the
	// business columns.
	Table string

	// Rank is the dependency order: entities with lower rank must be
	// transmitted and applied before higher-rank entities referencing them.
	Rank int

	// Columns lists the business columns. Mutation payloads are filtered to
	// this set before any SQL is built.
	Columns []string

	// Parents lists foreign-key references that must resolve to rows of the
	// same farm before a create or update is accepted.
	Parents []ParentRef

	// SoftDelete reports whether the entity keeps tombstones. All farm
	// entities currently do; the flag exists so a future append-only entity
	// does not have to pretend otherwise.
	SoftDelete bool
}

// HasColumn reports whether name is one of the descriptor's business columns.
func (d Descriptor) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Catalog is an immutable, ordered registry of entity descriptors.
type Catalog struct {
	ordered []Descriptor
	byName  map[string]Descriptor
}

// New builds a Catalog from the given descriptors. Ordering is by Rank
// ascending with Name as the tie-break, making Entities deterministic and
// stable across the process lifetime.
func New(descriptors ...Descriptor) *Catalog {
	ordered := make([]Descriptor, len(descriptors))
	copy(ordered, descriptors)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Rank != ordered[j].Rank {
			return ordered[i].Rank < ordered[j].Rank
		}
		return ordered[i].Name < ordered[j].Name
	})

	byName := make(map[string]Descriptor, len(ordered))
	for _, d := range ordered {
		byName[d.Name] = d
	}

	return &Catalog{ordered: ordered, byName: byName}
}

// Entities returns all descriptors ordered by dependency rank ascending
// (parents before children). The returned slice is a copy; callers may not
// mutate registry state through it.
func (c *Catalog) Entities() []Descriptor {
	out := make([]Descriptor, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// EntitiesReversed returns descriptors in descending rank order (children
// before parents). Used by cleanup paths that must delete child rows before
// the parent rows they reference.
func (c *Catalog) EntitiesReversed() []Descriptor {
	out := make([]Descriptor, len(c.ordered))
	for i, d := range c.ordered {
		out[len(c.ordered)-1-i] = d
	}
	return out
}

// ChildRefs returns every inbound foreign key of the named entity: one
// (table, column) pair per ParentRef in the registry pointing at it, in
// Entities order. Empty for leaf entities nothing references.
func (c *Catalog) ChildRefs(name string) []ChildRef {
	var refs []ChildRef
	for _, d := range c.ordered {
		for _, p := range d.Parents {
			if p.Entity == name {
				refs = append(refs, ChildRef{Table: d.Table, Column: p.Column})
			}
		}
	}
	return refs
}

// Resolve looks up a descriptor by entity type name.
// Returns ErrUnknownEntity if the name is not registered.
func (c *Catalog) Resolve(name string) (Descriptor, error) {
	d, ok := c.byName[name]
	if !ok {
		return Descriptor{}, ErrUnknownEntity
	}
	return d, nil
}

// Len returns the number of registered entity types.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
