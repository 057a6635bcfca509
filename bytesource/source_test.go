package bytesource

import "testing"

func TestU32HonorsByteOrder(t *testing.T) {
	s := New([]byte{0x01, 0x02, 0x03, 0x04})

	s.ByteOrder = BigEndian
	got, err := s.U32()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x01020304 {
		t.Errorf("got %#x, want %#x", got, 0x01020304)
	}

	s.MoveAt(0)
	s.ByteOrder = LittleEndian
	got, err = s.U32()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x04030201 {
		t.Errorf("got %#x, want %#x", got, 0x04030201)
	}
}

func TestUnsignedLEB128Boundary(t *testing.T) {
	s := New([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F})
	got, err := s.UnsignedLEB128()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0xFFFFFFFF {
		t.Errorf("got %#x, want %#x", got, 0xFFFFFFFF)
	}
}

func TestUnsignedLEB128Overflow(t *testing.T) {
	// Ten bytes (nine with the continuation bit set) carry 70 bits of
	// payload, which cannot fit in 64 bits.
	s := New([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F})
	if _, err := s.UnsignedLEB128(); err == nil {
		t.Fatal("expected an overflow error")
	}
}

func TestSignedLEB128SignExtends(t *testing.T) {
	// -1 encoded as signed LEB128 is a single 0x7F byte.
	s := New([]byte{0x7F})
	got, err := s.SignedLEB128()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != -1 {
		t.Errorf("got %d, want -1", got)
	}
}

func TestPeekReturnsMinusOneAtEnd(t *testing.T) {
	s := New([]byte{})
	if p := s.Peek(); p != -1 {
		t.Errorf("got %d, want -1", p)
	}
}

func TestNullTerminatedString(t *testing.T) {
	s := New([]byte{'h', 'i', 0, 'x'})
	got, err := s.NullTerminatedString()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
	if s.Position() != 3 {
		t.Errorf("cursor at %d, want 3", s.Position())
	}
}

func TestNullTerminatedStringMissingTerminator(t *testing.T) {
	s := New([]byte{'h', 'i'})
	if _, err := s.NullTerminatedString(); err == nil {
		t.Fatal("expected an error for a missing terminator")
	}
}

func TestBytesStopsEarlyAtEOF(t *testing.T) {
	s := New([]byte{1, 2, 3})
	got, n := s.Bytes(10)
	if n != 3 || len(got) != 3 {
		t.Errorf("read %d bytes, want 3", n)
	}
	if !s.IsEmpty() {
		t.Error("source should be empty")
	}
}

func TestF64RoundTripsBits(t *testing.T) {
	s := New([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	s.ByteOrder = LittleEndian
	got, err := s.F64()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}
