package rpc

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// encoder appends protobuf fields. Zero values are skipped like proto3.
type encoder struct {
	b []byte
}

func (e *encoder) str(num protowire.Number, v string) {
	if v == "" {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendString(e.b, v)
}

func (e *encoder) integer(num protowire.Number, v int) {
	if v == 0 {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, uint64(v))
}

func (e *encoder) flag(num protowire.Number, v bool) {
	if !v {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, protowire.EncodeBool(v))
}

// msg always writes the field, so an empty nested message still marks
// presence.
func (e *encoder) msg(num protowire.Number, m Message) {
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, m.MarshalWire())
}

// packed writes a packed repeated int field.
func (e *encoder) packed(num protowire.Number, vs []int) {
	if len(vs) == 0 {
		return
	}
	var inner []byte
	for _, v := range vs {
		inner = protowire.AppendVarint(inner, uint64(v))
	}
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, inner)
}

// field is one decoded tag and its value.
type field struct {
	num    protowire.Number
	typ    protowire.Type
	varint uint64
	bytes  []byte
}

func (f field) str() string {
	if f.typ != protowire.BytesType {
		return ""
	}
	return string(f.bytes)
}

func (f field) integer() int {
	if f.typ != protowire.VarintType {
		return 0
	}
	return int(int64(f.varint))
}

func (f field) flag() bool {
	return f.typ == protowire.VarintType && protowire.DecodeBool(f.varint)
}

func (f field) msg(m Message) error {
	if f.typ != protowire.BytesType {
		return nil
	}
	return m.UnmarshalWire(f.bytes)
}

func (f field) packed() ([]int, error) {
	if f.typ == protowire.VarintType {
		return []int{f.integer()}, nil
	}
	var out []int
	b := f.bytes
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		out = append(out, int(int64(v)))
		b = b[n:]
	}
	return out, nil
}

// parse walks b calling fn for every varint and length-delimited field.
// Other wire types are skipped.
func parse(b []byte, fn func(field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			f.varint = v
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			f.bytes = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
