package stream

import (
	"errors"
	"strconv"
	"testing"
)

func TestFilter(t *testing.T) {
	got, err := Collect(Filter(Just(1, 2, 3, 4, 5), func(v int) bool { return v%2 == 1 }))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 5 {
		t.Fatalf("unexpected values: %v", got)
	}
}

func TestFilterPassesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Collect(Filter(Error[int](boom), func(int) bool { return false }))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestMap(t *testing.T) {
	got, err := Collect(Map(Just(1, 2), func(v int) (string, error) { return strconv.Itoa(v * 10), nil }))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "10" || got[1] != "20" {
		t.Fatalf("unexpected values: %v", got)
	}
}

func TestMapError(t *testing.T) {
	boom := errors.New("boom")
	got, err := Collect(Map(Just(1, 2, 3), func(v int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v, nil
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 value before the error, got %v", got)
	}
}
