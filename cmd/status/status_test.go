package status

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_CleanupBeforeExit(t *testing.T) {
	var events []string

	cmd := &cobra.Command{
		Use: "fail",
		Run: Run(func(cmd *cobra.Command, args []string) int {
			defer func() { events = append(events, "cleanup") }()
			return 2
		}),
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			events = append(events, "post run")
		},
	}
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, 2, Code())
	assert.Equal(t, []string{"cleanup", "post run"}, events)
}

func TestRun_Success(t *testing.T) {
	cmd := &cobra.Command{
		Use: "ok",
		Run: Run(func(cmd *cobra.Command, args []string) int { return 0 }),
	}
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Zero(t, Code())
}
