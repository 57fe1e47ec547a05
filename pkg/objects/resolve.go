package objects

import "fmt"

// Resolver maps a message key to its display text
type Resolver interface {
	Resolve(key string) (string, error)
}

// StringResolver is implemented by records whose display strings are message
// keys
type StringResolver interface {
	ResolveStrings(r Resolver) error
}

type field struct {
	name string
	ptr  *string
}

// resolveAll resolves each non-empty key in place. An empty key stays empty.
func resolveAll(r Resolver, fields ...field) error {
	for _, f := range fields {
		if *f.ptr == "" {
			continue
		}
		text, err := r.Resolve(*f.ptr)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", f.name, err)
		}
		*f.ptr = text
	}
	return nil
}
