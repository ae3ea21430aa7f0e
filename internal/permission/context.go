package permission

// Context is the query-time evaluation environment (§3.4). server and
// world are carried as ordinary tags under the reserved keys
// contextServerKey/contextWorldKey; they are distinguished and
// stripped before the free-form tag predicate runs.
type Context struct {
	Tags map[string]string

	ApplyGroups bool

	IncludeGlobal      bool
	IncludeGlobalWorld bool

	ApplyGlobalGroups      bool
	ApplyGlobalWorldGroups bool

	// AllowRegex enables the "R=" server/world field prefix (§4.5).
	// It mirrors the config flag applying_regex; callers that build a
	// Context from internal/config should copy it across.
	AllowRegex bool
}

const (
	contextServerKey = "server"
	contextWorldKey  = "world"
)

// NewContext returns a Context with inheritance and global-apply flags
// all enabled, which is the permissive default most callers want; use
// the With* helpers or set fields directly to narrow it.
func NewContext() Context {
	return Context{
		ApplyGroups:            true,
		IncludeGlobal:          true,
		IncludeGlobalWorld:     true,
		ApplyGlobalGroups:      true,
		ApplyGlobalWorldGroups: true,
	}
}

// AllowAllContext returns the permissive default context (the same as
// NewContext), for callers that want inheritance and unscoped nodes
// visible. Query helpers such as InheritsPermissionInfo take their
// context from the caller instead.
func AllowAllContext() Context {
	return NewContext()
}

// WithServer returns a copy of the context scoped to the given server.
func (c Context) WithServer(server string) Context {
	c.Tags = setTag(c.Tags, contextServerKey, server)
	return c
}

// WithWorld returns a copy of the context scoped to the given world.
func (c Context) WithWorld(world string) Context {
	c.Tags = setTag(c.Tags, contextWorldKey, world)
	return c
}

// WithTag returns a copy of the context with an additional free-form
// tag set.
func (c Context) WithTag(key, value string) Context {
	c.Tags = setTag(c.Tags, key, value)
	return c
}

func setTag(tags map[string]string, key, value string) map[string]string {
	cp := make(map[string]string, len(tags)+1)
	for k, v := range tags {
		cp[k] = v
	}
	cp[key] = value
	return cp
}

// Server returns the context's server tag and whether one is set.
func (c Context) Server() (string, bool) {
	v, ok := c.Tags[contextServerKey]
	return v, ok && v != ""
}

// World returns the context's world tag and whether one is set.
func (c Context) World() (string, bool) {
	v, ok := c.Tags[contextWorldKey]
	return v, ok && v != ""
}

// strippedTags returns the free-form tags with server/world removed,
// per §4.6 step 2.
func (c Context) strippedTags() map[string]string {
	if len(c.Tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.Tags))
	for k, v := range c.Tags {
		if k == contextServerKey || k == contextWorldKey {
			continue
		}
		out[k] = v
	}
	return out
}
