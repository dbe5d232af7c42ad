package bounded

import (
	"fmt"
	"sort"
	"sync"

	"github.com/untillpro/goutils/logger"
)

// Priorities of the built-in handlers in NewDefaultRegistry. Lower values are
// consulted first; register custom handlers between them to take precedence
// over a built-in one.
const (
	PriorityOptional = 10
	PriorityNested   = 20
	PrioritySequence = 30
	PriorityLiteral  = 40
	PriorityEnum     = 50
	PriorityNumeric  = 60
	PriorityString   = 70
)

type entry struct {
	priority int
	seq      int
	handler  Handler
}

// Registry dispatches fields to handlers and implements the whole-schema
// operations. Handlers are kept ordered by ascending priority, ties broken by
// registration order, and the first handler whose CanHandle accepts a field
// wins. A more specific handler registered later at the same priority is
// therefore shadowed by an earlier generic one.
//
// A Registry is safe for concurrent use. The intended discipline is to
// populate it once and share it.
type Registry struct {
	mu              sync.RWMutex
	entries         []entry
	seq             int
	failOnNoHandler bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithHandlers registers hs in order at priority 0.
func WithHandlers(hs ...Handler) Option {
	for _, h := range hs {
		if h == nil {
			panic("bounded: WithHandlers(nil)")
		}
	}
	return func(r *Registry) {
		for _, h := range hs {
			r.register(h, 0)
		}
	}
}

// WithFailOnNoHandler selects the policy for fields no handler claims: fail
// with ErrUnhandledType (the default) or treat them as vacuously bounded.
func WithFailOnNoHandler(fail bool) Option {
	return func(r *Registry) { r.failOnNoHandler = fail }
}

// NewRegistry returns an empty registry configured by opts.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{failOnNoHandler: true}
	for _, o := range opts {
		o(r)
	}
	return r
}

// NewDefaultRegistry returns a registry populated with the built-in handlers.
func NewDefaultRegistry(opts ...Option) *Registry {
	r := NewRegistry()
	r.register(OptionalHandler{}, PriorityOptional)
	r.register(NestedHandler{}, PriorityNested)
	r.register(SequenceHandler{}, PrioritySequence)
	r.register(LiteralHandler{}, PriorityLiteral)
	r.register(EnumHandler{}, PriorityEnum)
	r.register(NumericHandler{}, PriorityNumeric)
	r.register(StringHandler{}, PriorityString)
	for _, o := range opts {
		o(r)
	}
	return r
}

// Register adds h at the given priority.
func (r *Registry) Register(h Handler, priority int) {
	if h == nil {
		panic("bounded: Register(nil)")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(h, priority)
}

func (r *Registry) register(h Handler, priority int) {
	r.seq++
	r.entries = append(r.entries, entry{priority: priority, seq: r.seq, handler: h})
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].priority < r.entries[j].priority
	})
}

// Handlers returns the handlers in dispatch order.
func (r *Registry) Handlers() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Handler, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.handler
	}
	return out
}

// Lookup returns the first handler that can handle f.
func (r *Registry) Lookup(f Field) (Handler, bool) {
	for _, h := range r.Handlers() {
		if h.CanHandle(f) {
			if logger.IsVerbose() {
				logger.Verbose(fmt.Sprintf("bounded: field %q (%s) -> %T", f.Name(), f.Type(), h))
			}
			return h, true
		}
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("bounded: field %q (%s) has no handler", f.Name(), f.Type()))
	}
	return nil, false
}

// CheckFieldBoundedness applies o (when non-nil) and asks the first capable
// handler whether the field is bounded. A field no handler claims is an error
// or vacuously bounded depending on WithFailOnNoHandler.
func (r *Registry) CheckFieldBoundedness(f Field, o *FieldOverride) (bool, error) {
	eff := f
	if o != nil {
		eff = MergeOverride(f, *o)
	}
	h, ok := r.Lookup(eff)
	if !ok {
		if r.failOnNoHandler {
			return false, newFieldError(eff.Name(), eff.Type(), ErrUnhandledType)
		}
		return true, nil
	}
	bounded, err := h.Bounded(eff, r)
	if err != nil {
		return false, wrapField(eff, err)
	}
	return bounded, nil
}

// CheckModelBoundedness reports whether every field of s is bounded. All
// fields are evaluated so that verbose logs list each unbounded one; errors
// abort immediately.
func (r *Registry) CheckModelBoundedness(s Schema) (bool, error) {
	fields, err := s.Fields()
	if err != nil {
		return false, err
	}
	all := true
	for _, f := range fields {
		ok, err := r.CheckFieldBoundedness(f, nil)
		if err != nil {
			return false, err
		}
		if !ok {
			all = false
			if logger.IsVerbose() {
				logger.Verbose(fmt.Sprintf("bounded: %s.%s (%s) is not bounded", s.Name(), f.Name(), f.Type()))
			}
		}
	}
	return all, nil
}

// UnboundedFields lists the dot-paths of the leaf fields that keep s from
// being bounded once ov is applied. Fields pinned by an override default are
// not reported; unbounded nested schemas are descended into.
func (r *Registry) UnboundedFields(s Schema, ov Overrides) ([]string, error) {
	fields, err := s.Fields()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range fields {
		name := f.Name()
		direct, hasDirect := ov.Direct(name)
		if hasDirect && direct.HasDefault() {
			continue
		}
		nested := ov.Nested(name)
		if isNestedSchema(f) && (len(nested) > 0 || hasDirect) {
			sub, err := r.UnboundedFields(f.Type().Schema, nested)
			if err != nil {
				return nil, prefixPath(name, err)
			}
			for _, p := range sub {
				out = append(out, name+"."+p)
			}
			continue
		}
		var op *FieldOverride
		if hasDirect {
			op = &direct
		}
		ok, err := r.CheckFieldBoundedness(f, op)
		if err != nil {
			return nil, err
		}
		if ok {
			continue
		}
		if isNestedSchema(f) {
			sub, err := r.UnboundedFields(f.Type().Schema, nil)
			if err != nil {
				return nil, prefixPath(name, err)
			}
			for _, p := range sub {
				out = append(out, name+"."+p)
			}
			continue
		}
		out = append(out, name)
	}
	return out, nil
}

func isNestedSchema(f Field) bool {
	t := f.Type()
	return t.Kind == KindSchema && t.Schema != nil
}

// wrapField attaches f to err unless err already carries a field path, in
// which case the path is rebased under f.
func wrapField(f Field, err error) error {
	if _, ok := AsFieldError(err); ok {
		return prefixPath(f.Name(), err)
	}
	return newFieldError(f.Name(), f.Type(), err)
}
