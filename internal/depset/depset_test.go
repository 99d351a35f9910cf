package depset

import "testing"

func TestWithDoesNotMutateReceiver(t *testing.T) {
	a := Empty()
	b := a.With(5)

	if a.Contains(5) {
		t.Fatal("With should not mutate its receiver")
	}
	if !b.Contains(5) {
		t.Fatal("With should add the handle to the returned set")
	}
}

func TestUnion(t *testing.T) {
	a := Of(1, 2)
	b := Of(2, 3)
	u := a.Union(b)

	for _, want := range []uint32{1, 2, 3} {
		if !u.Contains(want) {
			t.Fatalf("expected union to contain %d", want)
		}
	}
	if u.Len() != 3 {
		t.Fatalf("expected union length 3, got %d", u.Len())
	}
}

func TestIntersects(t *testing.T) {
	a := Of(1, 2)
	b := Of(2, 3)
	c := Of(9)

	if !a.Intersects(b) {
		t.Fatal("expected a and b to intersect on 2")
	}
	if a.Intersects(c) {
		t.Fatal("expected a and c to share nothing")
	}
}

func TestSliceIsAscending(t *testing.T) {
	s := Of(5, 1, 3)
	got := s.Slice()
	want := []uint32{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %d handles, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ascending order %v, got %v", want, got)
		}
	}
}
