package hasher

import "testing"

func TestStreamingIsDeterministic(t *testing.T) {
	a := New().WriteTag(3).WriteInt64(7).WriteBytes([]byte("foo")).Sum64()
	b := New().WriteTag(3).WriteInt64(7).WriteBytes([]byte("foo")).Sum64()
	if a != b {
		t.Fatalf("expected identical input to produce identical digests, got %d vs %d", a, b)
	}
}

func TestStreamingDistinguishesFieldOrder(t *testing.T) {
	a := New().WriteInt64(1).WriteInt64(2).Sum64()
	b := New().WriteInt64(2).WriteInt64(1).Sum64()
	if a == b {
		t.Fatal("expected mixing order to matter")
	}
}

func TestSum32IsLowBitsOfSum64(t *testing.T) {
	s := New().WriteTag(1).WriteUint64(42)
	if s.Sum32() != uint32(s.Sum64()) {
		t.Fatal("Sum32 should be the low 32 bits of Sum64")
	}
}
