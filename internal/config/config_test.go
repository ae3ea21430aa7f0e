package config

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("data-dir", "", "")
	cmd.Flags().String("log-level", "", "")
	cmd.Flags().Bool("apply-wildcards", true, "")
	cmd.Flags().Bool("apply-shorthand", true, "")
	cmd.Flags().Bool("applying-regex", false, "")
	cmd.Flags().Bool("include-global", true, "")
	return cmd
}

func TestLoadRequiresDataDir(t *testing.T) {
	cmd := newTestCommand()
	_, err := Load(cmd)
	assert.Error(t, err)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cmd := newTestCommand()
	require.NoError(t, cmd.Flags().Set("data-dir", t.TempDir()))

	cfg, err := Load(cmd)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Resolution.ApplyWildcards)
	assert.True(t, cfg.Resolution.IncludingGlobalPerms)
	assert.False(t, cfg.Resolution.ApplyingRegex)
}

func TestBaseContextMirrorsResolutionFlags(t *testing.T) {
	rc := ResolutionConfig{IncludingGlobalPerms: false, ApplyingRegex: true}
	ctx := rc.BaseContext()
	assert.False(t, ctx.IncludeGlobal)
	assert.False(t, ctx.IncludeGlobalWorld)
	assert.True(t, ctx.AllowRegex)
}

func TestExpanderHonorsResolutionFlags(t *testing.T) {
	enabled := ResolutionConfig{ApplyWildcards: true, ApplyShorthand: true}
	out := enabled.Expander().Expand("foo.*", []string{"foo.bar", "foo.baz"}, false)
	assert.ElementsMatch(t, []string{"foo.bar", "foo.baz"}, out)

	noWildcards := ResolutionConfig{ApplyWildcards: false, ApplyShorthand: true}
	out = noWildcards.Expander().Expand("foo.*", []string{"foo.bar", "foo.baz"}, false)
	assert.Equal(t, []string{"foo.*"}, out, "apply_wildcards=false must leave the wildcard literal unexpanded")
}
