package store

import "testing"

func TestNewByteStore(t *testing.T) {
	cases := []int{1, 7, 64, 4096}

	for _, n := range cases {
		s, err := NewByteStore(n)
		if err != nil {
			t.Errorf("cannot create a store of %v bytes: %v", n, err)
			continue
		}

		if s.Len() != n {
			t.Errorf("expected Len to be %v, got %v", n, s.Len())
		}

		if len(s.Bytes()) != n {
			t.Errorf("expected %v bytes, got %v", n, len(s.Bytes()))
		}
	}
}

func TestNewByteStoreInvalidSize(t *testing.T) {
	for _, n := range []int{0, -1, -4096} {
		if _, err := NewByteStore(n); err == nil {
			t.Errorf("expected error creating a store of %v bytes", n)
		}
	}
}

func TestByteStoreSlice(t *testing.T) {
	b := []byte("abcd")
	s := NewByteStoreSlice(b)

	s.Bytes()[2] = 'x'
	if b[2] != 'x' {
		t.Error("store is not sharing memory with the passed slice")
	}

	if err := s.Close(); err != nil {
		t.Error(err)
	}

	if s.Len() != 0 {
		t.Errorf("expected a closed store to be empty, got %v bytes", s.Len())
	}
}
