package persistence

import (
	"encoding/binary"
	"fmt"
	"reflect"
)

// Field describes one top-level field of a region.
type Field struct {
	Name   string
	Type   string
	Offset int
	Size   int
}

// Layout is the byte-exact shape of a region type.
type Layout struct {
	Type   string
	Size   int
	Fields []Field
}

// String renders the layout as an aligned table.
func (l Layout) String() string {
	s := fmt.Sprintf("%s (%d bytes)\n", l.Type, l.Size)
	for _, f := range l.Fields {
		s += fmt.Sprintf("  %4d %4d  %-10s %s\n", f.Offset, f.Size, f.Name, f.Type)
	}
	return s
}

var headerType = reflect.TypeOf(Header{})

// LayoutOf computes and checks the layout of T.
func LayoutOf[T any]() (Layout, error) {
	return LayoutFor(reflect.TypeFor[T]())
}

// LayoutFor computes and checks the layout of t.
//
// t must be a struct starting with a Header and made only of exported
// fixed-width fields. Blank fields may pad. There must be no implicit padding,
// every primitive must sit at its natural alignment and the total size must
// be a multiple of 8.
func LayoutFor(t reflect.Type) (Layout, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return Layout{}, fmt.Errorf("%w: %v is not a struct", ErrInvalidLayout, t)
	}
	if t.NumField() == 0 || t.Field(0).Type != headerType {
		return Layout{}, fmt.Errorf("%w: %v must start with persistence.Header", ErrInvalidLayout, t)
	}

	size := binary.Size(reflect.New(t).Interface())
	if size <= 0 {
		return Layout{}, fmt.Errorf("%w: %v has variable-size fields", ErrInvalidLayout, t)
	}
	if uintptr(size) != t.Size() {
		return Layout{}, fmt.Errorf("%w: %v has %d bytes of implicit padding", ErrInvalidLayout, t, int(t.Size())-size)
	}
	if size%8 != 0 {
		return Layout{}, fmt.Errorf("%w: %v size %d is not a multiple of 8", ErrInvalidLayout, t, size)
	}
	if err := checkAlign(t, 0, t.Name()); err != nil {
		return Layout{}, err
	}

	l := Layout{Type: t.String(), Size: size}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		l.Fields = append(l.Fields, Field{
			Name:   f.Name,
			Type:   f.Type.String(),
			Offset: int(f.Offset),
			Size:   int(f.Type.Size()),
		})
	}
	return l, nil
}

func checkAlign(t reflect.Type, off uintptr, path string) error {
	switch t.Kind() {
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Name != "_" && !f.IsExported() {
				return fmt.Errorf("%w: %s.%s is unexported", ErrInvalidLayout, path, f.Name)
			}
			if err := checkAlign(f.Type, off+f.Offset, path+"."+f.Name); err != nil {
				return err
			}
		}
	case reflect.Array:
		elem := t.Elem()
		n := t.Len()
		if elem.Kind() != reflect.Struct && elem.Kind() != reflect.Array {
			// Primitive element sizes are multiples of their alignment.
			n = min(n, 1)
		}
		for i := 0; i < n; i++ {
			if err := checkAlign(elem, off+uintptr(i)*elem.Size(), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	default:
		align := uintptr(t.Align())
		if off%align != 0 {
			return fmt.Errorf("%w: %s (%v) at offset %d is not %d-byte aligned", ErrInvalidLayout, path, t, off, align)
		}
	}
	return nil
}
