package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	resetFlags(t)
	cmd, stdout, _ := newTestCmd("")
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "clai "+Version+"\n", stdout.String())
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	err := versionCmd.Args(versionCmd, []string{"extra"})
	assert.Error(t, err)
}
