package pager

const (
	// Margin is the number of shadow slots added to each side of the
	// absolute index space.
	Margin = 2
	// MinSizeThreshold is the smallest page count that wraps. Smaller
	// adapters use a margin of zero and behave like a plain pager.
	MinSizeThreshold = 4
)

// ToRelative maps an absolute index to the relative index it shows.
// It returns 0 when count is not positive.
func ToRelative(absolute, margin, count int) int {
	if count <= 0 {
		return 0
	}
	return mod(absolute-margin, count)
}

// ToAbsolute maps a relative index to its canonical absolute index, the one
// outside the shadow margins. It returns 0 when count is not positive.
func ToAbsolute(relative, margin, count int) int {
	if count <= 0 {
		return 0
	}
	return mod(relative, count) + margin
}

// LockMargin returns the margin to use for count pages in a container that
// does or does not snap back from shadow slots.
func LockMargin(count int, wrapCapable bool) int {
	if count >= MinSizeThreshold && wrapCapable {
		return Margin
	}
	return 0
}

// IsShadow reports whether absolute is a duplicate of another slot.
func IsShadow(absolute, margin, count int) bool {
	return count > 0 && ToAbsolute(ToRelative(absolute, margin, count), margin, count) != absolute
}

// mod is the non-negative remainder of a / n.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
