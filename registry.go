package grove

// Registry owns the set of live SceneObjects. It is the only source of truth
// for bulk operations: objects that were never registered do not exist as far
// as the Director is concerned.
type Registry struct {
	objects map[Handle]*SceneObject
	order   []*SceneObject // insertion order for deterministic iteration
	next    Handle

	removeHooks []func(Handle)
	store       EntityStore
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{objects: make(map[Handle]*SceneObject)}
}

// SetEntityStore sets the optional ECS bridge.
func (r *Registry) SetEntityStore(store EntityStore) {
	r.store = store
}

// OnRemove registers fn to be called synchronously whenever a handle is
// removed, after the object has been marked removed.
func (r *Registry) OnRemove(fn func(Handle)) {
	r.removeHooks = append(r.removeHooks, fn)
}

// Register adds obj and returns its handle. Registering an object that is
// already live returns its existing handle, so two live handles never alias
// the same object. A removed object is registered again under a new handle.
// Panics if obj is nil.
func (r *Registry) Register(obj *SceneObject) Handle {
	if obj == nil {
		panic("grove: cannot register nil object")
	}
	if obj.handle != 0 && !obj.removed && r.objects[obj.handle] == obj {
		return obj.handle
	}
	h := r.add(obj)
	r.emit(ObjectEvent{Type: EventObjectRegistered, Handle: h})
	return h
}

// Clone registers a copy of the object behind h. The copy starts with the
// same transform and shares the source's geometry and material.
func (r *Registry) Clone(h Handle) (Handle, error) {
	src, ok := r.objects[h]
	if !ok {
		return 0, ErrNotFound
	}
	nh := r.add(src.clone())
	r.emit(ObjectEvent{Type: EventObjectCloned, Handle: nh, Source: h})
	return nh, nil
}

// Get returns the live object behind h.
func (r *Registry) Get(h Handle) (*SceneObject, error) {
	obj, ok := r.objects[h]
	if !ok {
		return nil, ErrNotFound
	}
	return obj, nil
}

// Contains reports whether h refers to a live object.
func (r *Registry) Contains(h Handle) bool {
	_, ok := r.objects[h]
	return ok
}

// Remove invalidates h. Remove hooks run before Remove returns, so tweens
// targeting the object are canceled synchronously. Returns false if h was not
// live.
func (r *Registry) Remove(h Handle) bool {
	obj, ok := r.objects[h]
	if !ok {
		return false
	}
	delete(r.objects, h)
	for i, o := range r.order {
		if o == obj {
			copy(r.order[i:], r.order[i+1:])
			r.order[len(r.order)-1] = nil
			r.order = r.order[:len(r.order)-1]
			break
		}
	}
	obj.removed = true
	for _, fn := range r.removeHooks {
		fn(h)
	}
	r.emit(ObjectEvent{Type: EventObjectRemoved, Handle: h})
	return true
}

// Len returns the number of live objects.
func (r *Registry) Len() int {
	return len(r.order)
}

// Each calls fn for every live object in registration order. fn must not
// register or remove objects; take a Handles snapshot for that.
func (r *Registry) Each(fn func(*SceneObject)) {
	for _, o := range r.order {
		fn(o)
	}
}

// Handles returns a snapshot of the live handles in registration order.
func (r *Registry) Handles() []Handle {
	hs := make([]Handle, len(r.order))
	for i, o := range r.order {
		hs[i] = o.handle
	}
	return hs
}

func (r *Registry) add(obj *SceneObject) Handle {
	r.next++
	h := r.next
	obj.handle = h
	obj.removed = false
	r.objects[h] = obj
	r.order = append(r.order, obj)
	return h
}

func (r *Registry) emit(ev ObjectEvent) {
	if r.store != nil {
		r.store.EmitEvent(ev)
	}
}
