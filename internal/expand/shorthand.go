// Package expand implements the permission shorthand/wildcard grammar
// used by the core's export step (ExportNodes): a compact node like
// "group.{admin,mod}" or "worlds.world{1-3}.build" stands for several
// concrete permission strings, and a trailing "*" segment stands for
// every permission known to the system under that prefix. Nothing
// here knows about Node, Context, or holders — it is pure string
// transformation so the core can stay free of grammar details.
package expand

import (
	"strconv"
	"strings"
)

// Shorthand expands "{a,b,c}" and "{1-3}" groups within a permission
// string into every concrete permission they denote. A permission
// with no braces expands to itself. Multiple groups multiply out
// (cartesian product); malformed braces are left verbatim rather than
// erroring, since an export step seeing a typo'd node should still
// surface something rather than silently drop it.
func Shorthand(permission string) []string {
	start := strings.IndexByte(permission, '{')
	if start < 0 {
		return []string{permission}
	}
	end := strings.IndexByte(permission[start:], '}')
	if end < 0 {
		return []string{permission}
	}
	end += start

	prefix := permission[:start]
	body := permission[start+1 : end]
	suffix := permission[end+1:]

	options := expandGroupBody(body)
	rest := Shorthand(suffix)

	out := make([]string, 0, len(options)*len(rest))
	for _, opt := range options {
		for _, r := range rest {
			out = append(out, prefix+opt+r)
		}
	}
	return out
}

// expandGroupBody expands the inside of one {...} group: either a
// comma list ("a,b,c") or a numeric range ("1-5"), inclusive on both
// ends and zero-padded to match whichever bound has more digits.
func expandGroupBody(body string) []string {
	if lo, hi, width, ok := parseRange(body); ok {
		out := make([]string, 0, hi-lo+1)
		for i := lo; i <= hi; i++ {
			out = append(out, pad(i, width))
		}
		return out
	}
	return strings.Split(body, ",")
}

func parseRange(body string) (lo, hi, width int, ok bool) {
	parts := strings.SplitN(body, "-", 2)
	if len(parts) != 2 {
		return 0, 0, 0, false
	}
	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	if errA != nil || errB != nil {
		return 0, 0, 0, false
	}
	width = len(parts[0])
	if len(parts[1]) > width {
		width = len(parts[1])
	}
	if a > b {
		a, b = b, a
	}
	return a, b, width, true
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}
