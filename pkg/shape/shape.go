package shape

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/ssargent/cohbin/pkg/codec"
)

// Kind identifies how a shape is laid out on the wire
type Kind uint8

const (
	Invalid Kind = iota
	Bool
	Int
	Uint
	Float32
	String
	Text
	Bytes
	Option
	Sequence
	Tuple
	Record
	UnionKind
)

var kindNames = [...]string{
	Invalid:   "invalid",
	Bool:      "bool",
	Int:       "int",
	Uint:      "uint",
	Float32:   "float32",
	String:    "string",
	Text:      "text",
	Bytes:     "bytes",
	Option:    "option",
	Sequence:  "sequence",
	Tuple:     "tuple",
	Record:    "record",
	UnionKind: "union",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Shape is the decode plan for one Go type
type Shape struct {
	Kind Kind
	Type reflect.Type
	Name string

	// Elem is the element of an option, sequence or array tuple
	Elem *Shape
	// Len is the arity of an array tuple
	Len int
	// Fields lists record and struct tuple members in wire order
	Fields []Field
	// Variants lists union alternatives by ordinal
	Variants []Variant
	// UnionIndex locates the embedded Union field of a union type
	UnionIndex []int
	// Partial suppresses trailing-bytes reports for a record
	Partial bool

	minSize int
}

// Field is one member of a record or struct tuple
type Field struct {
	Name  string
	Index []int
	Shape *Shape
}

// Variant is one alternative of a tagged union. Payload is nil for unit variants.
type Variant struct {
	Name    string
	Payload *Shape
}

// MinSize is the fewest bytes any encoding of the shape can occupy
func (s *Shape) MinSize() int {
	return s.minSize
}

func (s *Shape) String() string {
	switch s.Kind {
	case Option:
		return "option<" + s.Elem.String() + ">"
	case Sequence:
		return "sequence<" + s.Elem.String() + ">"
	case Record, UnionKind:
		return s.Kind.String() + " " + s.Name
	case Tuple:
		if s.Elem != nil {
			return fmt.Sprintf("tuple<%s x %d>", s.Elem, s.Len)
		}
		return "tuple " + s.Name
	}
	return s.Kind.String()
}

// TupleShaped marks a struct whose fields are encoded back-to-back without a
// length frame.
type TupleShaped interface {
	TupleShape()
}

// PartialShaped marks a record whose declared fields cover only a prefix of
// its wire layout.
type PartialShaped interface {
	PartialShape()
}

var (
	cache sync.Map // reflect.Type -> *Shape

	tupleType   = reflect.TypeOf((*TupleShaped)(nil)).Elem()
	partialType = reflect.TypeOf((*PartialShaped)(nil)).Elem()
	enumType    = reflect.TypeOf((*Enum)(nil)).Elem()
	unionType   = reflect.TypeOf(Union{})
	byteType    = reflect.TypeOf(byte(0))
	inlineType  = reflect.TypeOf(InlineString(""))
)

// InlineString is a string stored in place as length-prefixed text rather
// than as a pool offset. It reaches places the inline tag cannot, such as
// sequence elements.
type InlineString string

// For returns the shape of T
func For[T any]() (*Shape, error) {
	return Of(reflect.TypeOf((*T)(nil)).Elem())
}

// Of returns the shape of t, deriving and caching it on first use
func Of(t reflect.Type) (*Shape, error) {
	if s, ok := cache.Load(t); ok {
		return s.(*Shape), nil
	}

	b := &builder{seen: make(map[reflect.Type]*Shape)}
	s, err := b.build(t, false)
	if err != nil {
		return nil, err
	}
	for typ, built := range b.seen {
		cache.LoadOrStore(typ, built)
	}
	actual, _ := cache.LoadOrStore(t, s)
	return actual.(*Shape), nil
}

// UnsupportedTypeError reports a Go type with no wire representation
type UnsupportedTypeError struct {
	Type   reflect.Type
	Path   string
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	msg := fmt.Sprintf("unsupported type %s", e.Type)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *UnsupportedTypeError) Unwrap() error { return codec.ErrUnsupportedType }

type builder struct {
	seen map[reflect.Type]*Shape
	path []string
}

func (b *builder) fail(t reflect.Type, reason string) error {
	return &UnsupportedTypeError{Type: t, Path: strings.Join(b.path, "."), Reason: reason}
}

func (b *builder) build(t reflect.Type, inline bool) (*Shape, error) {
	if inline || t == inlineType {
		if t.Kind() != reflect.String {
			return nil, b.fail(t, "inline applies to string fields only")
		}
		return &Shape{Kind: Text, Type: t, minSize: 4}, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return &Shape{Kind: Bool, Type: t, minSize: 4}, nil
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return &Shape{Kind: Int, Type: t, minSize: 4}, nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return &Shape{Kind: Uint, Type: t, minSize: 4}, nil
	case reflect.Float32:
		return &Shape{Kind: Float32, Type: t, minSize: 4}, nil
	case reflect.String:
		return &Shape{Kind: String, Type: t, minSize: 4}, nil
	case reflect.Pointer:
		elem, err := b.build(t.Elem(), false)
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: Option, Type: t, Elem: elem, minSize: 4}, nil
	case reflect.Slice:
		if t.Elem() == byteType {
			return &Shape{Kind: Bytes, Type: t, minSize: 4}, nil
		}
		elem, err := b.build(t.Elem(), false)
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: Sequence, Type: t, Elem: elem, minSize: 4}, nil
	case reflect.Array:
		elem, err := b.build(t.Elem(), false)
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: Tuple, Type: t, Elem: elem, Len: t.Len(), minSize: elem.minSize * t.Len()}, nil
	case reflect.Struct:
		return b.buildStruct(t)
	}

	return nil, b.fail(t, "no wire representation for "+t.Kind().String())
}

func implements(t, iface reflect.Type) bool {
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}

func (b *builder) buildStruct(t reflect.Type) (*Shape, error) {
	if s, ok := b.seen[t]; ok {
		return s, nil
	}
	if s, ok := cache.Load(t); ok {
		return s.(*Shape), nil
	}

	s := &Shape{Type: t, Name: t.Name()}
	b.seen[t] = s

	if implements(t, enumType) {
		if err := b.fillUnion(s); err != nil {
			delete(b.seen, t)
			return nil, err
		}
		return s, nil
	}

	s.Kind = Record
	if implements(t, tupleType) {
		s.Kind = Tuple
	}
	s.Partial = implements(t, partialType)

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("bin")
		if tag == "-" || !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}

		b.path = append(b.path, t.Name()+"."+f.Name)
		fs, err := b.build(f.Type, opts == "inline")
		b.path = b.path[:len(b.path)-1]
		if err != nil {
			delete(b.seen, t)
			return nil, err
		}
		s.Fields = append(s.Fields, Field{Name: name, Index: f.Index, Shape: fs})
		s.minSize += fs.minSize
	}

	if s.Kind == Record {
		s.minSize += 4
	}
	return s, nil
}

func (b *builder) fillUnion(s *Shape) error {
	t := s.Type
	field, ok := t.FieldByName("Union")
	if !ok || !field.Anonymous || field.Type != unionType {
		return b.fail(t, "tagged unions must embed shape.Union")
	}

	var e Enum
	if t.Implements(enumType) {
		e = reflect.Zero(t).Interface().(Enum)
	} else {
		e = reflect.New(t).Interface().(Enum)
	}
	alts := e.Variants()
	if len(alts) == 0 {
		return b.fail(t, "tagged union declares no variants")
	}

	s.Kind = UnionKind
	s.UnionIndex = field.Index
	s.minSize = 4
	s.Variants = make([]Variant, len(alts))
	for i, alt := range alts {
		v := Variant{Name: alt.Name}
		if alt.Type != nil {
			b.path = append(b.path, t.Name()+"::"+alt.Name)
			payload, err := b.build(alt.Type, false)
			b.path = b.path[:len(b.path)-1]
			if err != nil {
				return err
			}
			v.Payload = payload
		}
		s.Variants[i] = v
	}
	return nil
}
