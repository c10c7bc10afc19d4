package pager

import "testing"

func TestToRelative(t *testing.T) {
	tests := []struct {
		absolute, margin, count int
		want                    int
	}{
		{0, 2, 5, 3},
		{1, 2, 5, 4},
		{2, 2, 5, 0},
		{6, 2, 5, 4},
		{7, 2, 5, 0},
		{8, 2, 5, 1},
		{0, 0, 3, 0},
		{2, 0, 3, 2},
		{-1, 0, 5, 4},
		{-7, 2, 5, 1},
		{3, 2, 0, 0},
		{3, 2, -1, 0},
	}
	for _, tt := range tests {
		if got := ToRelative(tt.absolute, tt.margin, tt.count); got != tt.want {
			t.Errorf("ToRelative(%d, %d, %d) = %d, want %d", tt.absolute, tt.margin, tt.count, got, tt.want)
		}
	}
}

func TestToAbsolute(t *testing.T) {
	tests := []struct {
		relative, margin, count int
		want                    int
	}{
		{0, 2, 5, 2},
		{4, 2, 5, 6},
		{5, 2, 5, 2},
		{-1, 2, 5, 6},
		{2, 0, 3, 2},
		{1, 2, 0, 0},
	}
	for _, tt := range tests {
		if got := ToAbsolute(tt.relative, tt.margin, tt.count); got != tt.want {
			t.Errorf("ToAbsolute(%d, %d, %d) = %d, want %d", tt.relative, tt.margin, tt.count, got, tt.want)
		}
	}
}

func TestRoundTripLandsOnCanonicalSlot(t *testing.T) {
	for count := 0; count <= 9; count++ {
		for _, margin := range []int{0, Margin} {
			size := count + 2*margin
			for abs := 0; abs < size; abs++ {
				got := ToAbsolute(ToRelative(abs, margin, count), margin, count)
				switch {
				case count == 0:
					if got != 0 {
						t.Errorf("count=0: round trip of %d = %d, want 0", abs, got)
					}
				case IsShadow(abs, margin, count):
					if got < margin || got >= margin+count {
						t.Errorf("count=%d margin=%d: shadow %d round-tripped to %d, outside canonical range", count, margin, abs, got)
					}
				default:
					if got != abs {
						t.Errorf("count=%d margin=%d: round trip of %d = %d", count, margin, abs, got)
					}
				}
			}
		}
	}
}

func TestIsShadow(t *testing.T) {
	var got []int
	for abs := 0; abs < 9; abs++ {
		if IsShadow(abs, 2, 5) {
			got = append(got, abs)
		}
	}
	want := []int{0, 1, 7, 8}
	if len(got) != len(want) {
		t.Fatalf("shadows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("shadows = %v, want %v", got, want)
		}
	}
}

func TestLockMargin(t *testing.T) {
	tests := []struct {
		count int
		wrap  bool
		want  int
	}{
		{0, true, 0},
		{3, true, 0},
		{4, true, Margin},
		{50, true, Margin},
		{4, false, 0},
		{50, false, 0},
	}
	for _, tt := range tests {
		if got := LockMargin(tt.count, tt.wrap); got != tt.want {
			t.Errorf("LockMargin(%d, %v) = %d, want %d", tt.count, tt.wrap, got, tt.want)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range []Strategy{StrategyStateful, StrategyRetain} {
		got, err := ParseStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStrategy(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStrategy("cached"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
