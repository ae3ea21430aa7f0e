package expand

import "strings"

// Expander is the interface the core's ExportNodes consumes. The
// default Expander composes Shorthand and Implies; it is a struct
// rather than bare functions purely so the core can depend on an
// interface and swap in a stub during tests.
type Expander interface {
	// Expand returns every concrete permission in possible that perm
	// (after shorthand expansion) denotes, lower-cased if lower is
	// set. A perm with no wildcard segment and no shorthand group
	// that is not itself present in possible is returned as-is —
	// exported permissions aren't required to be in the known set,
	// only wildcard expansion is.
	Expand(perm string, possible []string, lower bool) []string
}

// Default is the Expander grounded on the shorthand/wildcard grammar
// in this package. Its zero value expands both shorthand and
// wildcards, matching the resolution configuration's own defaults;
// set DisableShorthand/DisableWildcards to gate either off, as the
// apply_shorthand/apply_wildcards configuration flags require.
type Default struct {
	DisableShorthand bool
	DisableWildcards bool
}

func (d Default) Expand(perm string, possible []string, lower bool) []string {
	literals := []string{perm}
	if !d.DisableShorthand {
		literals = Shorthand(perm)
	}

	var out []string
	for _, literal := range literals {
		if strings.ContainsRune(literal, '*') && !d.DisableWildcards {
			out = append(out, MatchPossible(literal, possible)...)
			continue
		}
		out = append(out, literal)
	}
	if lower {
		for i, p := range out {
			out[i] = strings.ToLower(p)
		}
	}
	return dedupe(out)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
