package osenv

import (
	"errors"
	"reflect"
	"testing"
)

func TestApplySetsAllEntries(t *testing.T) {
	fake := NewFake(nil)
	errs := Apply(map[string]string{"B": "2", "A": "1"}, fake)
	if len(errs) != 0 {
		t.Fatalf("Apply returned errors: %v", errs)
	}
	// sorted key order keeps batches deterministic
	want := []string{"A=1", "B=2"}
	if !reflect.DeepEqual(fake.Sets, want) {
		t.Fatalf("Apply sets = %v, want %v", fake.Sets, want)
	}
}

func TestApplyDoesNotRollBackOnFailure(t *testing.T) {
	fake := NewFake(nil)
	if errs := Apply(map[string]string{"A": "1"}, fake); len(errs) != 0 {
		t.Fatalf("first Apply failed: %v", errs)
	}
	fake.Err = errors.New("boom")
	errs := Apply(map[string]string{"B": "2"}, fake)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if _, ok := fake.Lookup("A"); !ok {
		t.Fatalf("earlier set was rolled back")
	}
}

func TestSplitEntry(t *testing.T) {
	tests := []struct {
		in       string
		key, val string
		ok       bool
	}{
		{"A=1", "A", "1", true},
		{"A=", "A", "", true},
		{"A=b=c", "A", "b=c", true},
		{"novalue", "", "", false},
	}
	for _, tc := range tests {
		k, v, ok := SplitEntry(tc.in)
		if k != tc.key || v != tc.val || ok != tc.ok {
			t.Fatalf("SplitEntry(%q) = (%q,%q,%v), want (%q,%q,%v)", tc.in, k, v, ok, tc.key, tc.val, tc.ok)
		}
	}
}
