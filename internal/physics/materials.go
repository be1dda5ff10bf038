package physics

import "sort"

// Material is a named friction/restitution/damping bundle that a body
// definition can reference instead of spelling the values out.
type Material struct {
	Friction       float32
	Restitution    float32
	LinearDamping  float32
	AngularDamping float32
}

var materials = map[string]Material{
	"rock":   {Friction: 0.9, Restitution: 0.1},
	"ice":    {Friction: 0.05, Restitution: 0.05},
	"wood":   {Friction: 0.6, Restitution: 0.3, LinearDamping: 0.05, AngularDamping: 0.05},
	"rubber": {Friction: 0.9, Restitution: 0.8, LinearDamping: 0.1, AngularDamping: 0.1},
	"metal":  {Friction: 0.4, Restitution: 0.2},
}

// MaterialByName looks up a built-in material.
func MaterialByName(name string) (Material, bool) {
	m, ok := materials[name]
	return m, ok
}

// MaterialNames lists the built-in materials in sorted order.
func MaterialNames() []string {
	names := make([]string, 0, len(materials))
	for name := range materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
