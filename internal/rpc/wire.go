// Package rpc holds the scheduling.v1 gRPC contract: message types with
// their protobuf wire encoding, the service descriptor and a client.
// scheduling.proto is the contract clients generate stubs from; the
// encoders here are kept to its field numbers.
package rpc

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var errParse = errors.New("rpc: malformed message")

// Message is implemented by every request and response type.
type Message interface {
	MarshalWire() ([]byte, error)
	UnmarshalWire(b []byte) error
}

// Codec encodes Message values in protobuf wire format. It is registered
// under the "proto" name so stock gRPC clients interoperate.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("rpc: cannot marshal %T", v)
	}
	return m.MarshalWire()
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("rpc: cannot unmarshal into %T", v)
	}
	return m.UnmarshalWire(data)
}

func (Codec) Name() string { return "proto" }

// field is one decoded field: val for length-delimited, num for varints.
type field struct {
	num protowire.Number
	typ protowire.Type
	val []byte
	u   uint64
}

// walk calls fn for every field in b, skipping unknown wire types.
func walk(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errParse
		}
		b = b[n:]
		f := field{num: num, typ: typ}
		switch typ {
		case protowire.BytesType:
			f.val, n = protowire.ConsumeBytes(b)
		case protowire.VarintType:
			f.u, n = protowire.ConsumeVarint(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return errParse
		}
		b = b[n:]
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func appendString(out []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return out
	}
	out = protowire.AppendTag(out, num, protowire.BytesType)
	return protowire.AppendString(out, s)
}

func appendBool(out []byte, num protowire.Number, v bool) []byte {
	if !v {
		return out
	}
	out = protowire.AppendTag(out, num, protowire.VarintType)
	return protowire.AppendVarint(out, 1)
}

func appendMessage(out []byte, num protowire.Number, inner []byte) []byte {
	out = protowire.AppendTag(out, num, protowire.BytesType)
	return protowire.AppendBytes(out, inner)
}

func appendTimestamp(out []byte, num protowire.Number, ts *timestamppb.Timestamp) []byte {
	if ts == nil {
		return out
	}
	var inner []byte
	if ts.Seconds != 0 {
		inner = protowire.AppendTag(inner, 1, protowire.VarintType)
		inner = protowire.AppendVarint(inner, uint64(ts.Seconds))
	}
	if ts.Nanos != 0 {
		inner = protowire.AppendTag(inner, 2, protowire.VarintType)
		inner = protowire.AppendVarint(inner, uint64(ts.Nanos))
	}
	return appendMessage(out, num, inner)
}

func parseTimestamp(b []byte) (*timestamppb.Timestamp, error) {
	ts := &timestamppb.Timestamp{}
	err := walk(b, func(f field) error {
		switch f.num {
		case 1:
			ts.Seconds = int64(f.u)
		case 2:
			ts.Nanos = int32(f.u)
		}
		return nil
	})
	return ts, err
}
