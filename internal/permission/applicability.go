package permission

import (
	"regexp"
	"strings"
)

// regexFieldPrefix marks a server/world field as a regular expression
// instead of a literal, when regex matching is enabled in config.
const regexFieldPrefix = "R="

// shouldApplyOnServer implements §4.5's should_apply_on_server: a node
// with no server scope applies iff includeGlobal; otherwise it matches
// literally (case insensitive) or, if allowRegex is set and the node's
// server starts with "R=", via regex.
func shouldApplyOnServer(nodeServer string, requested string, includeGlobal, allowRegex bool) bool {
	if nodeServer == "" {
		return includeGlobal
	}
	if allowRegex && strings.HasPrefix(nodeServer, regexFieldPrefix) {
		return regexMatches(nodeServer[len(regexFieldPrefix):], requested)
	}
	return strings.EqualFold(nodeServer, requested)
}

// shouldApplyOnWorld is should_apply_on_server's symmetric twin for
// worlds.
func shouldApplyOnWorld(nodeWorld string, requested string, includeGlobal, allowRegex bool) bool {
	if nodeWorld == "" {
		return includeGlobal
	}
	if allowRegex && strings.HasPrefix(nodeWorld, regexFieldPrefix) {
		return regexMatches(nodeWorld[len(regexFieldPrefix):], requested)
	}
	return strings.EqualFold(nodeWorld, requested)
}

// shouldApplyWithContext implements should_apply_with_context: every
// tag key present on the node must be present in tags with an equal
// value. Extra tags on the context side are ignored.
func shouldApplyWithContext(nodeContext, tags map[string]string) bool {
	for k, v := range nodeContext {
		if tags[k] != v {
			return false
		}
	}
	return true
}

// regexMatches reports whether requested matches the given pattern,
// anchoring it the way a config field match is expected to behave
// (whole-string match, not substring search). An invalid pattern never
// matches rather than panicking — a malformed server/world regex is a
// configuration mistake, not grounds to crash a query.
func regexMatches(pattern, requested string) bool {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return false
	}
	return re.MatchString(requested)
}
