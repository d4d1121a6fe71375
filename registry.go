package transcode

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps codec kinds to implementations. It is read-only once
// built; With returns a modified copy instead of mutating.
type Registry struct {
	codecs map[Kind]Codec
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// NewRegistry builds a registry from the given codecs.
// Each kind may appear once.
func NewRegistry(codecs ...Codec) (*Registry, error) {
	r := &Registry{codecs: make(map[Kind]Codec, len(codecs))}
	for _, c := range codecs {
		if !IsValidKind(c.Kind()) {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedCodec, c.Kind())
		}
		if _, dup := r.codecs[c.Kind()]; dup {
			return nil, fmt.Errorf("codec %q registered twice", c.Kind())
		}
		r.codecs[c.Kind()] = c
	}
	return r, nil
}

// DefaultRegistry returns the process-wide registry holding the prime,
// raw MIDI, and QR codecs with default options. It is built once.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = &Registry{codecs: map[Kind]Codec{
			KindPrime: NewPrimeCodec(),
			KindMIDI:  NewMIDICodec(),
			KindQR:    NewQRCodec(),
		}}
	})
	return defaultRegistry
}

// Lookup returns the codec registered for kind.
func (r *Registry) Lookup(kind Kind) (Codec, error) {
	c, ok := r.codecs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCodec, kind)
	}
	return c, nil
}

// Resolve looks up every step of a spec, failing on the first unknown kind.
func (r *Registry) Resolve(spec Spec) ([]Codec, error) {
	if len(spec) == 0 {
		return nil, ErrEmptySpec
	}
	codecs := make([]Codec, len(spec))
	for i, k := range spec {
		c, err := r.Lookup(k)
		if err != nil {
			return nil, err
		}
		codecs[i] = c
	}
	return codecs, nil
}

// With returns a copy of the registry with c replacing the codec of its kind.
func (r *Registry) With(c Codec) *Registry {
	next := &Registry{codecs: make(map[Kind]Codec, len(r.codecs)+1)}
	for k, v := range r.codecs {
		next.codecs[k] = v
	}
	next.codecs[c.Kind()] = c
	return next
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.codecs))
	for k := range r.codecs {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
