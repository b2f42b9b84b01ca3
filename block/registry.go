// Package block holds the metadata of the voxel block types known to the
// physics subsystem. Block types are registered once during start-up and are
// read-only afterwards, so lookups require no synchronisation.
package block

import "github.com/segmentio/fasthash/fnv1a"

// Type identifies a registered block type. The zero Type is the unknown
// type, which answers default properties.
type Type uint32

// Family is a stable identifier for a group of related block types, derived
// from the family name. It is used to build lootable item representations
// without carrying the full registry around.
type Family uint64

// Properties holds the metadata of a single block type as registered in a
// Registry.
type Properties struct {
	// Name is the name of the block type, such as "stone".
	Name string
	// Mass is the mass of a full-size loose block of this type. Values of 0
	// or lower are normalised to 1 upon registration.
	Mass float64
	// Translucent specifies if the block type lets light through. Translucent
	// blocks never produce loose physics bodies.
	Translucent bool
	// Family is the name of the family the block type belongs to. If empty,
	// the Name of the block type is used as family name.
	Family string
}

// FamilyHash returns the Family identifier for a family name. The hash is
// stable across processes and registries.
func FamilyHash(name string) Family {
	return Family(fnv1a.HashString64(name))
}

// Registry maps block Types to their Properties. Registration is expected to
// happen before the registry is shared; a Registry is safe for concurrent
// reads only.
type Registry struct {
	props []Properties
}

// NewRegistry creates an empty Registry. Type 0 is reserved for the unknown
// block type.
func NewRegistry() *Registry {
	return &Registry{props: []Properties{{Name: "unknown", Mass: 1}}}
}

// Register adds the Properties passed to the registry and returns the Type
// assigned to them.
func (r *Registry) Register(p Properties) Type {
	if p.Mass <= 0 {
		p.Mass = 1
	}
	if p.Family == "" {
		p.Family = p.Name
	}
	r.props = append(r.props, p)
	return Type(len(r.props) - 1)
}

// properties returns the Properties of the Type passed, falling back to the
// unknown type for Types never registered.
func (r *Registry) properties(t Type) Properties {
	if int(t) >= len(r.props) {
		return r.props[0]
	}
	return r.props[t]
}

// Name returns the name of the block type passed.
func (r *Registry) Name(t Type) string {
	return r.properties(t).Name
}

// Mass returns the mass of a full-size loose block of the type passed.
func (r *Registry) Mass(t Type) float64 {
	return r.properties(t).Mass
}

// Translucent checks if the block type passed is translucent.
func (r *Registry) Translucent(t Type) bool {
	return r.properties(t).Translucent
}

// Family returns the Family identifier of the block type passed.
func (r *Registry) Family(t Type) Family {
	return FamilyHash(r.properties(t).Family)
}
