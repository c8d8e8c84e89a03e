package framesmith

import "fmt"

// Registry is a process-wide table of prototype Headers keyed by a short
// symbolic name ("eth", "vlan", "ipv4", ...). It is populated once at
// process start by each protocol package's registration routine, then
// frozen: no runtime locking is required once Freeze has been called, since
// the template set stops mutating before any Frame is built.
type Registry struct {
	frozen bool
	tmpls  map[string]*Header
}

// NewRegistry returns an empty, unfrozen Registry.
func NewRegistry() *Registry {
	return &Registry{tmpls: make(map[string]*Header)}
}

// Register adds tmpl under its Name. It returns an error if the registry is
// already frozen or the name is already taken.
func (r *Registry) Register(tmpl *Header) error {
	if r.frozen {
		return fmt.Errorf("framesmith: registry frozen, cannot register %q", tmpl.Name)
	}
	if _, exists := r.tmpls[tmpl.Name]; exists {
		return fmt.Errorf("framesmith: template %q already registered", tmpl.Name)
	}
	r.tmpls[tmpl.Name] = tmpl
	return nil
}

// Freeze marks the registry read-only. Calling Register afterwards returns
// an error. Freeze is idempotent.
func (r *Registry) Freeze() { r.frozen = true }

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool { return r.frozen }

// Lookup returns the named template and true, or (nil, false) if absent.
// The returned *Header is the shared template: callers must clone it (via
// Frame.Push) rather than mutate it directly.
func (r *Registry) Lookup(name string) (*Header, bool) {
	h, ok := r.tmpls[name]
	return h, ok
}
