package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ski/internal/config"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(config.Default())
	require.NotNil(t, cmd)
	assert.Equal(t, "ski", cmd.Use)
	assert.Contains(t, cmd.Long, "depth budget")
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(config.Default())
	commands := []string{"demo", "reduce", "vocab", "test", "history", "replay"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand(config.Default())

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	depthFlag := cmd.PersistentFlags().Lookup("max-depth")
	require.NotNil(t, depthFlag)
	assert.Equal(t, "512", depthFlag.DefValue)
}

func TestGlobalFlagsFollowConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MaxDepth = 64
	cfg.Format = "json"
	cfg.DB = "runs.db"
	cmd := NewRootCommand(cfg)

	assert.Equal(t, "64", cmd.PersistentFlags().Lookup("max-depth").DefValue)
	assert.Equal(t, "json", cmd.PersistentFlags().Lookup("format").DefValue)

	for _, name := range []string{"demo", "reduce", "test", "history", "replay"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		dbFlag := sub.Flags().Lookup("db")
		require.NotNil(t, dbFlag, name)
		assert.Equal(t, "runs.db", dbFlag.DefValue, name)
	}
}

func TestReduceCommandFlags(t *testing.T) {
	cmd := NewRootCommand(config.Default())
	reduceCmd, _, err := cmd.Find([]string{"reduce"})
	require.NoError(t, err)

	require.NotNil(t, reduceCmd.Flags().Lookup("defs"))
	traceFlag := reduceCmd.Flags().Lookup("trace")
	require.NotNil(t, traceFlag)
	assert.Equal(t, "false", traceFlag.DefValue)
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand(config.Default())
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	require.NotNil(t, testCmd.Flags().Lookup("update"))
	require.NotNil(t, testCmd.Flags().Lookup("filter"))
}

func TestHistoryCommandFlags(t *testing.T) {
	cmd := NewRootCommand(config.Default())
	historyCmd, _, err := cmd.Find([]string{"history"})
	require.NoError(t, err)

	limitFlag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "20", limitFlag.DefValue)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand(config.Default())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "invalid", "vocab"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestNegativeMaxDepthRejected(t *testing.T) {
	cmd := NewRootCommand(config.Default())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--max-depth", "-1", "reduce", "I"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--max-depth")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRootLoggerDefaultsToDiscard(t *testing.T) {
	opts := &RootOptions{}
	require.NotNil(t, opts.Logger())
	opts.Logger().Info("dropped")
}
