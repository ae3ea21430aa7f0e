package config

import (
	"github.com/permlattice/permlattice/internal/expand"
	"github.com/permlattice/permlattice/internal/permission"
)

// BaseContext builds the permissive default Context implied by this
// configuration's resolution flags. Callers scope it further with
// Context's own With* methods per query.
func (c ResolutionConfig) BaseContext() permission.Context {
	ctx := permission.NewContext()
	ctx.IncludeGlobal = c.IncludingGlobalPerms
	ctx.IncludeGlobalWorld = c.IncludingGlobalPerms
	ctx.AllowRegex = c.ApplyingRegex
	return ctx
}

// Expander builds the expand.Expander implied by this configuration's
// apply_wildcards/apply_shorthand flags, so ExportNodes callers expand
// exactly what the configuration says to rather than hard-coding the
// defaults.
func (c ResolutionConfig) Expander() expand.Expander {
	return expand.Default{
		DisableShorthand: !c.ApplyShorthand,
		DisableWildcards: !c.ApplyWildcards,
	}
}
