package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unsafe"

	"github.com/hupe1980/nvram/persistence"
)

// regionVersion must be bumped whenever Counters changes shape.
const regionVersion = 1

// Counters is the demo region.
type Counters struct {
	persistence.Header
	A, B, C int32
	_       [4]byte
	Count   uint64
	Buffer  [32]byte
}

var _ [72]byte = [unsafe.Sizeof(Counters{})]byte{}

func defaultCounters() Counters {
	return Counters{Header: persistence.NewHeader(regionVersion)}
}

// countersView is the printable form of Counters.
type countersView struct {
	A      int32  `json:"a"`
	B      int32  `json:"b"`
	C      int32  `json:"c"`
	Count  uint64 `json:"count"`
	Buffer string `json:"buffer"`
}

func (r *Counters) view() countersView {
	return countersView{
		A:      r.A,
		B:      r.B,
		C:      r.C,
		Count:  r.Count,
		Buffer: string(bytes.TrimRight(r.Buffer[:], "\x00")),
	}
}

func printCounters(w io.Writer, r *Counters) {
	v := r.view()
	fmt.Fprintf(w, "a: %d\n", v.A)
	fmt.Fprintf(w, "b: %d\n", v.B)
	fmt.Fprintf(w, "c: %d\n", v.C)
	fmt.Fprintf(w, "count: %d\n", v.Count)
	fmt.Fprintf(w, "buffer: %q\n", v.Buffer)
}

// setField assigns value to the named field.
func setField(r *Counters, field, value string) error {
	switch strings.ToLower(field) {
	case "a", "b", "c":
		n, err := strconv.ParseInt(value, 0, 32)
		if err != nil {
			return fmt.Errorf("field %s: %w", field, err)
		}
		switch strings.ToLower(field) {
		case "a":
			r.A = int32(n)
		case "b":
			r.B = int32(n)
		default:
			r.C = int32(n)
		}
	case "count":
		n, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return fmt.Errorf("field %s: %w", field, err)
		}
		r.Count = n
	case "buffer":
		if len(value) > len(r.Buffer) {
			return fmt.Errorf("field buffer: %d bytes exceeds %d", len(value), len(r.Buffer))
		}
		r.Buffer = [32]byte{}
		copy(r.Buffer[:], value)
	default:
		return fmt.Errorf("unknown field %q (want a, b, c, count or buffer)", field)
	}
	return nil
}

// assignment is one parsed field=value pair.
type assignment struct {
	field, value string
}

// parseAssignments parses field=value pairs and checks them against a
// scratch region, so bad input is rejected before the store is touched.
func parseAssignments(pairs []string) ([]assignment, error) {
	var scratch Counters
	out := make([]assignment, 0, len(pairs))
	for _, p := range pairs {
		field, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q (want field=value)", p)
		}
		if err := setField(&scratch, field, value); err != nil {
			return nil, err
		}
		out = append(out, assignment{field: field, value: value})
	}
	return out, nil
}
