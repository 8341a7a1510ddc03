package shader

import "fmt"

// Spec describes one unit to build with NewGroup.
type Spec struct {
	Stage   Stage
	Sources []string
	Label   string
}

// Group is a set of units compiled together, typically the stages that
// will later be linked into one program.
type Group struct {
	units []*Unit
}

// NewGroup compiles every spec in order. It is all-or-nothing: on the
// first failure the units already built are destroyed, in reverse order,
// and the error is returned with the failing spec's index and label.
func NewGroup(driver Driver, specs []Spec, opts ...Option) (*Group, error) {
	g := &Group{units: make([]*Unit, 0, len(specs))}
	for i, sp := range specs {
		unitOpts := opts
		if sp.Label != "" {
			unitOpts = append(append([]Option(nil), opts...), WithLabel(sp.Label))
		}
		u, err := New(driver, sp.Stage, sp.Sources, unitOpts...)
		if err != nil {
			g.Destroy()
			if sp.Label != "" {
				return nil, fmt.Errorf("shader %d (%s): %w", i, sp.Label, err)
			}
			return nil, fmt.Errorf("shader %d: %w", i, err)
		}
		g.units = append(g.units, u)
	}
	return g, nil
}

// Units returns the compiled units in spec order.
func (g *Group) Units() []*Unit {
	return g.units
}

// Unit returns the first unit compiled for stage, or nil.
func (g *Group) Unit(stage Stage) *Unit {
	for _, u := range g.units {
		if u.stage == stage {
			return u
		}
	}
	return nil
}

// Destroy releases every unit in reverse creation order. It is safe to
// call more than once.
func (g *Group) Destroy() {
	if g == nil {
		return
	}
	for i := len(g.units) - 1; i >= 0; i-- {
		g.units[i].Destroy()
	}
}
