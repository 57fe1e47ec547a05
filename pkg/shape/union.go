package shape

import "reflect"

// Union is embedded by tagged-union types. The decoder fills it with the
// selected variant and, for payload variants, the decoded payload value.
type Union struct {
	Ordinal uint32 `json:"ordinal" yaml:"ordinal"`
	Name    string `json:"variant" yaml:"variant"`
	Value   any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Enum is implemented by tagged-union types to declare their variants in
// ordinal order.
type Enum interface {
	Variants() []Alt
}

// Alt declares one variant of a tagged union
type Alt struct {
	Name string
	Type reflect.Type // nil for unit variants
}

// Unit declares a variant that carries no payload
func Unit(name string) Alt {
	return Alt{Name: name}
}

// Payload declares a variant followed by one encoded T
func Payload[T any](name string) Alt {
	return Alt{Name: name, Type: reflect.TypeOf((*T)(nil)).Elem()}
}

// Is reports whether the union holds the named variant
func (u Union) Is(name string) bool {
	return u.Name == name
}
