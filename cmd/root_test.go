package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestBuildVersion(t *testing.T) {
	assert.Equal(t, "v1.4.0", buildVersion("v1.4.0"), "ldflags value wins")

	// Test binaries carry no module version.
	assert.Equal(t, "(devel)", buildVersion("(devel)"))
}

func TestHelpTextPunctuation(t *testing.T) {
	cmds := append([]*cobra.Command{rootCmd}, rootCmd.Commands()...)
	for _, c := range cmds {
		assert.NotContains(t, c.Short, "—", c.Name())
		assert.NotContains(t, c.Long, "—", c.Name())
	}
}
