package registry

import "sync"

// Registry is a lockable key-value store backing the extension registries
// (cmd, cron, api, graphql). A key can be locked after init so registrations
// cannot mutate it once the application is serving.
type Registry struct {
	values sync.Map // key -> interface{}
	locked sync.Map // key -> struct{}
}

// GlobalRegistry is the process-wide registry instance.
var GlobalRegistry = &Registry{}

// SetGlobal stores a value for a key. Panics if the key is locked.
func (r *Registry) SetGlobal(key string, value interface{}) {
	if r.IsLocked(key) {
		panic("core/registry: set on locked key " + key)
	}
	r.values.Store(key, value)
}

// GetGlobal retrieves a value for a key.
func (r *Registry) GetGlobal(key string) (interface{}, bool) {
	return r.values.Load(key)
}

// Lock marks a key immutable. Idempotent.
func (r *Registry) Lock(key string) {
	r.locked.Store(key, struct{}{})
}

// IsLocked reports whether a key has been locked.
func (r *Registry) IsLocked(key string) bool {
	_, ok := r.locked.Load(key)
	return ok
}

// UnlockForTesting removes a key's lock (for tests only).
func (r *Registry) UnlockForTesting(key string) {
	r.locked.Delete(key)
}
