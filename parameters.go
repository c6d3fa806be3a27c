package routebind

import (
	"iter"
	"maps"
	"slices"

	"dario.cat/mergo"
)

type Param struct {
	Name  string
	Value any
}

func Arg(name string, value any) Param {
	return Param{Name: name, Value: value}
}

// Parameters is an insertion-ordered bag of named values. Order follows
// route declaration and decides which parameter scopes the next one.
type Parameters struct {
	keys   []string
	values map[string]any
}

func NewParameters(params ...Param) *Parameters {
	p := &Parameters{values: make(map[string]any, len(params))}
	for _, param := range params {
		p.Set(param.Name, param.Value)
	}
	return p
}

func (p *Parameters) Get(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

func (p *Parameters) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Set replaces the value of an existing key in place or appends a new one.
func (p *Parameters) Set(name string, value any) {
	if _, ok := p.values[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[name] = value
}

func (p *Parameters) Keys() []string {
	return slices.Clone(p.keys)
}

func (p *Parameters) Len() int {
	return len(p.keys)
}

func (p *Parameters) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range p.keys {
			if !yield(k, p.values[k]) {
				return
			}
		}
	}
}

// Before returns the entry immediately preceding name.
func (p *Parameters) Before(name string) (Param, bool) {
	i := slices.Index(p.keys, name)
	if i <= 0 {
		return Param{}, false
	}
	k := p.keys[i-1]
	return Param{Name: k, Value: p.values[k]}, true
}

func (p *Parameters) Clone() *Parameters {
	return &Parameters{
		keys:   slices.Clone(p.keys),
		values: maps.Clone(p.values),
	}
}

// Merge overlays overrides key for key. When both the current and the
// override value are map[string]any the two are merged recursively with the
// override winning.
func (p *Parameters) Merge(overrides ...Param) error {
	for _, o := range overrides {
		current, exists := p.values[o.Name]
		dst, dstIsMap := current.(map[string]any)
		src, srcIsMap := o.Value.(map[string]any)

		if !exists || !dstIsMap || !srcIsMap {
			p.Set(o.Name, o.Value)
			continue
		}

		merged := deepCopyMap(dst)
		if err := mergo.Merge(&merged, deepCopyMap(src), mergo.WithOverride); err != nil {
			return err
		}
		p.Set(o.Name, merged)
	}
	return nil
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			out[k] = deepCopyMap(nested)
			continue
		}
		out[k] = v
	}
	return out
}
