package rlp

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
)

func TestEncodeCanonicalForms(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want []byte
	}{
		{"zero uint", uint64(0), []byte{0x80}},
		{"small uint", uint64(0x7f), []byte{0x7f}},
		{"uint 128", uint64(0x80), []byte{0x81, 0x80}},
		{"uint multi-byte", uint64(0x0400), []byte{0x82, 0x04, 0x00}},
		{"empty bytes", []byte{}, []byte{0x80}},
		{"single low byte", []byte{0x0f}, []byte{0x0f}},
		{"single high byte", []byte{0x80}, []byte{0x81, 0x80}},
		{"short string", []byte("dog"), []byte{0x83, 'd', 'o', 'g'}},
		{"bool false", false, []byte{0x80}},
		{"bool true", true, []byte{0x01}},
		{"zero uint256", uint256.NewInt(0), []byte{0x80}},
		{"uint256", uint256.NewInt(1024), []byte{0x82, 0x04, 0x00}},
		{"empty list", []uint64{}, []byte{0xc0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EncodeToBytes(tc.in)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Fatalf("encode(%v) = %x, want %x", tc.in, got, tc.want)
			}
		})
	}
}

func TestEncodeLongString(t *testing.T) {
	in := bytes.Repeat([]byte{0xaa}, 56)
	got, err := EncodeToBytes(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := append([]byte{0xb8, 56}, in...)
	if !bytes.Equal(got, want) {
		t.Fatalf("long string header = %x, want %x", got[:2], want[:2])
	}
}

func TestByteStringRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{0x00},
		{0x7f},
		{0x80},
		[]byte("hello rlp"),
		bytes.Repeat([]byte{0x42}, 55),
		bytes.Repeat([]byte{0x42}, 56),
		bytes.Repeat([]byte{0x42}, 300),
	}
	for _, in := range cases {
		enc, err := EncodeToBytes(in)
		if err != nil {
			t.Fatalf("encode %x: %v", in, err)
		}
		var out []byte
		if err := DecodeBytes(enc, &out); err != nil {
			t.Fatalf("decode %x: %v", enc, err)
		}
		if !bytes.Equal(out, in) {
			t.Fatalf("round trip %x -> %x", in, out)
		}
	}
}

func TestUintRoundTrip(t *testing.T) {
	for _, in := range []uint64{0, 1, 127, 128, 256, 1 << 20, 1<<63 + 17} {
		enc, err := EncodeToBytes(in)
		if err != nil {
			t.Fatalf("encode %d: %v", in, err)
		}
		var out uint64
		if err := DecodeBytes(enc, &out); err != nil {
			t.Fatalf("decode %x: %v", enc, err)
		}
		if out != in {
			t.Fatalf("round trip %d -> %d", in, out)
		}
	}
}

func TestStructRoundTrip(t *testing.T) {
	type pair struct {
		A uint64
		B []byte
	}
	in := pair{A: 77, B: []byte("value")}
	enc, err := EncodeToBytes(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out pair
	if err := DecodeBytes(enc, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.A != in.A || !bytes.Equal(out.B, in.B) {
		t.Fatalf("round trip %+v -> %+v", in, out)
	}
}

func TestEncodeTupleMatchesStruct(t *testing.T) {
	type pair struct {
		A uint64
		B []byte
	}
	fromStruct, err := EncodeToBytes(pair{A: 5, B: []byte("x")})
	if err != nil {
		t.Fatalf("encode struct: %v", err)
	}
	fromTuple, err := EncodeTuple(uint64(5), []byte("x"))
	if err != nil {
		t.Fatalf("encode tuple: %v", err)
	}
	if !bytes.Equal(fromStruct, fromTuple) {
		t.Fatalf("struct encoding %x != tuple encoding %x", fromStruct, fromTuple)
	}
}

func TestTrim(t *testing.T) {
	if got := Trim([]byte{0, 0, 0xfd}); !bytes.Equal(got, []byte{0xfd}) {
		t.Fatalf("trim = %x, want fd", got)
	}
	if got := Trim(make([]byte, 32)); len(got) != 0 {
		t.Fatalf("trim of all-zero = %x, want empty", got)
	}
}

func TestDecodeRejectsNonCanonicalSingleByte(t *testing.T) {
	// 0x817f wraps 0x7f in a string prefix; the canonical form is the bare byte.
	var out []byte
	if err := DecodeBytes([]byte{0x81, 0x7f}, &out); err == nil {
		t.Fatal("expected non-canonical single-byte encoding to be rejected")
	}
}
