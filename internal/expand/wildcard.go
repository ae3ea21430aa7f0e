package expand

import "strings"

// Implies reports whether the wildcard permission pattern grants
// candidate. A trailing "*" segment is a subtree wildcard: "foo.*"
// implies "foo.bar" and "foo.bar.baz" alike. A "*" segment anywhere
// else matches exactly one segment of candidate. The bare "*"
// (universal wildcard) implies everything.
func Implies(pattern, candidate string) bool {
	if pattern == "*" || pattern == "'*'" {
		return true
	}
	pSegs := strings.Split(pattern, ".")
	cSegs := strings.Split(candidate, ".")

	for i, p := range pSegs {
		if p == "*" && i == len(pSegs)-1 {
			return true // subtree wildcard: matches regardless of what remains
		}
		if i >= len(cSegs) {
			return false
		}
		if p == "*" {
			continue
		}
		if !strings.EqualFold(p, cSegs[i]) {
			return false
		}
	}
	return len(pSegs) == len(cSegs)
}

// MatchPossible returns every entry of possible implied by pattern.
// Patterns with no wildcard segment at all return just the pattern
// itself (after shorthand expansion) when it's a member of possible,
// or not at all otherwise — ExportNodes decides separately whether to
// include permissions that aren't in the known set.
func MatchPossible(pattern string, possible []string) []string {
	var out []string
	for _, cand := range possible {
		if Implies(pattern, cand) {
			out = append(out, cand)
		}
	}
	return out
}
