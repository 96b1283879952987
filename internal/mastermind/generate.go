// internal/mastermind/generate.go
//
// Code space generation: the full set of legal codes for a ruleset.
// This is the one place combinatorial blow-up must be bounded — the whole
// space is materialized, so callers validate palette/pin bounds first
// (internal/rules enforces a ceiling for the drivers).

package mastermind

// Generate produces every code satisfying rs, with no duplicates.
// With repetition the result is the Cartesian product of the palette over
// the pin positions; without it, all Pins-permutations of distinct colors.
// Ordering is implementation-defined; callers may rely on membership only.
func Generate(rs Ruleset) ([]Code, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	out := make([]Code, 0, rs.SpaceSize())
	if rs.Repetition == WithRepetition {
		// Odometer over Pins digits in base Colors.
		cur := make(Code, rs.Pins)
		for {
			out = append(out, append(Code(nil), cur...))
			i := rs.Pins - 1
			for ; i >= 0; i-- {
				cur[i]++
				if cur[i] < rs.Colors {
					break
				}
				cur[i] = 0
			}
			if i < 0 {
				return out, nil
			}
		}
	}

	// Permutations of distinct colors.
	used := make([]bool, rs.Colors)
	cur := make(Code, 0, rs.Pins)
	var walk func()
	walk = func() {
		if len(cur) == rs.Pins {
			out = append(out, append(Code(nil), cur...))
			return
		}
		for c := 0; c < rs.Colors; c++ {
			if used[c] {
				continue
			}
			used[c] = true
			cur = append(cur, c)
			walk()
			cur = cur[:len(cur)-1]
			used[c] = false
		}
	}
	walk()
	return out, nil
}
