package mode

import "testing"

func TestLookup(t *testing.T) {
	m, ok := Lookup("1920x1080")
	if !ok {
		t.Fatal("1920x1080 missing from builtin table")
	}
	if m.Clock != 148500 || m.HTotal != 2200 || m.VTotal != 1125 {
		t.Fatalf("unexpected 1920x1080 timing: %+v", m)
	}
	if _, ok := Lookup("1234x567"); ok {
		t.Fatal("Lookup returned a mode for an unknown name")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 5 {
		t.Fatalf("Names returned %d entries, want 5", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestRefreshRate(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		want int
	}{
		{name: "explicit refresh wins", mode: Mode{VRefresh: 75, Clock: 1, HTotal: 1, VTotal: 1}, want: 75},
		{
			name: "computed from timing",
			mode: Mode{Clock: 148500, HTotal: 2200, VTotal: 1125},
			want: 60,
		},
		{name: "zero totals", mode: Mode{Clock: 148500}, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.mode.RefreshRate(); got != tc.want {
				t.Fatalf("RefreshRate = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestBuiltinTimingsAreConsistent(t *testing.T) {
	for _, name := range Names() {
		m, _ := Lookup(name)
		if m.HDisplay >= m.HSyncStart || m.HSyncStart >= m.HSyncEnd || m.HSyncEnd > m.HTotal {
			t.Fatalf("%s: horizontal timing out of order: %+v", name, m)
		}
		if m.VDisplay >= m.VSyncStart || m.VSyncStart >= m.VSyncEnd || m.VSyncEnd > m.VTotal {
			t.Fatalf("%s: vertical timing out of order: %+v", name, m)
		}
		declared := m.VRefresh
		m.VRefresh = 0
		if got := m.RefreshRate(); got != declared {
			t.Fatalf("%s: computed refresh %d disagrees with declared %d", name, got, declared)
		}
	}
}
