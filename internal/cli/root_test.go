package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "shelf", cmd.Use)
	assert.Contains(t, cmd.Long, "0..N-1")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"test"},
		{"category"},
		{"category", "list"},
		{"category", "create"},
		{"category", "rename"},
		{"category", "delete"},
		{"category", "reorder"},
		{"category", "sort"},
		{"category", "check"},
		{"category", "collections"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "command %v should exist", path)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "shelf.cue", configFlag.DefValue)

	dbFlag := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)
}

func TestCategoryCollectionFlag(t *testing.T) {
	cmd := NewRootCommand()
	reorderCmd, _, err := cmd.Find([]string{"category", "reorder"})
	require.NoError(t, err)

	flag := reorderCmd.InheritedFlags().Lookup("collection")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	errBuf := &bytes.Buffer{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(errBuf)
	cmd.SetArgs([]string{"category", "list", "--format", "xml"})

	code := Execute(cmd, errBuf)

	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, errBuf.String(), `invalid format "xml"`)
}

func TestExecute_UnknownCommand(t *testing.T) {
	cmd := NewRootCommand()
	errBuf := &bytes.Buffer{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(errBuf)
	cmd.SetArgs([]string{"shuffle"})

	assert.Equal(t, ExitCommandError, Execute(cmd, errBuf))
	assert.Contains(t, errBuf.String(), "unknown command")
}
