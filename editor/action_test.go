package editor

import (
	"strings"
	"testing"

	"wireroute/core"
	"wireroute/diagram"
)

func TestTryMerge(t *testing.T) {
	h := handleAt(topWire, core.Loc(40, 0))
	moved := movedHandle(h, 10, 0)
	other := handleAt(sideWire, core.Loc(100, 40))

	tests := []struct {
		name       string
		prev, next Action
		wantMerged bool
		wantNil    bool
	}{
		{"same handle", NewMoveHandle(h, 10, 0), NewMoveHandle(moved, 5, 0), true, false},
		{"inverse handle move", NewMoveHandle(h, 10, 0), NewMoveHandle(moved, -10, 0), true, true},
		{"different handle", NewMoveHandle(h, 10, 0), NewMoveHandle(other, 0, 10), false, false},
		{"same components", NewTranslateComponents([]string{"A", "B"}, 1, 0),
			NewTranslateComponents([]string{"B", "A"}, 0, 1), true, false},
		{"different components", NewTranslateComponents([]string{"A"}, 1, 0),
			NewTranslateComponents([]string{"A", "B"}, 1, 0), false, false},
		{"different kinds", NewTranslateComponents([]string{"A"}, 1, 0), NewMoveHandle(h, 10, 0), false, false},
		{"handles never merge", &InsertHandle{Wire: topWire, At: core.Loc(20, 0)},
			&DeleteHandle{At: core.Loc(20, 0)}, false, false},
		{"replace never merges", &Replace{}, &Replace{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combined, merged := tryMerge(tt.prev, tt.next)
			if merged != tt.wantMerged {
				t.Fatalf("merged = %v, want %v", merged, tt.wantMerged)
			}
			if merged && (combined == nil) != tt.wantNil {
				t.Errorf("combined = %v, want nil: %v", combined, tt.wantNil)
			}
		})
	}
}

func TestMergedTranslationSums(t *testing.T) {
	combined, _ := tryMerge(
		NewTranslateComponents([]string{"A"}, 10, -20),
		NewTranslateComponents([]string{"A"}, 5, 5),
	)
	tc := combined.(*TranslateComponents)
	if tc.Dx != 15 || tc.Dy != -15 {
		t.Errorf("Sum = (%d,%d), want (15,-15)", tc.Dx, tc.Dy)
	}
}

func TestIsModification(t *testing.T) {
	nonEmpty := diagram.NewReplacementMap()
	nonEmpty.Add(topWire)

	tests := []struct {
		name   string
		action Action
		want   bool
	}{
		{"empty replace", &Replace{Map: diagram.NewReplacementMap()}, false},
		{"replace", &Replace{Map: nonEmpty}, true},
		{"zero translation", NewTranslateComponents([]string{"A"}, 0, 0), false},
		{"union of no-ops", NewUnion("", &Replace{}, NewTranslateComponents([]string{"A"}, 0, 0)), false},
		{"union with a change", NewUnion("", &Replace{}, &InsertHandle{}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.action.IsModification(); got != tt.want {
				t.Errorf("IsModification = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnionName(t *testing.T) {
	u := NewUnion("", NewTranslateComponents([]string{"U1"}, 1, 0), &Replace{})
	if u.Name() != "Move U1" {
		t.Errorf("Name = %q", u.Name())
	}
	if s := describe(u); !strings.Contains(s, "Reroute wires") {
		t.Errorf("describe = %q", s)
	}
}
