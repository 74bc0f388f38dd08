package locomotion

import (
	"reflect"
	"testing"
)

func TestGroundHistoryOrder(t *testing.T) {
	h := NewGroundHistory(4)
	for _, s := range []bool{true, false, true, true, false} {
		h.Push(s)
	}
	want := []bool{false, true, true, false}
	if got := h.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("snapshot = %v, want %v", got, want)
	}
	if h.At(4) || h.At(-1) {
		t.Fatalf("out of range reads must be false")
	}
}

func TestGroundHistoryPushReturnsPrevious(t *testing.T) {
	h := NewGroundHistory(1)
	if prev := h.Push(true); prev {
		t.Fatalf("first push previous should be false")
	}
	if prev := h.Push(false); !prev {
		t.Fatalf("previous newest should be true")
	}
}

func TestGroundHistoryWindow(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		samples []bool
		any     bool
	}{
		{"empty", 3, nil, false},
		{"single_hit_inside_window", 3, []bool{true, false, false}, true},
		{"hit_aged_out", 3, []bool{true, false, false, false}, false},
		{"clamped_length", 0, []bool{true}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewGroundHistory(tc.n)
			for _, s := range tc.samples {
				h.Push(s)
			}
			if h.Any() != tc.any {
				t.Fatalf("Any() = %v, want %v", h.Any(), tc.any)
			}
			if tc.n >= 1 && h.Len() != tc.n {
				t.Fatalf("Len() = %d, want %d", h.Len(), tc.n)
			}
		})
	}
}
