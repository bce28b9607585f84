package runner_test

import (
	"testing"

	"github.com/clintolsen/pyre"
	"github.com/clintolsen/pyre/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteFindsAllMatches(t *testing.T) {
	re, err := pyre.Compile(`\d+`)
	require.NoError(t, err)

	spans := runner.Execute(re, []byte("a1 b22 c333"), false)
	assert.Equal(t, [][2]int{{1, 2}, {4, 6}, {8, 11}}, spans)
}

func TestExecuteFirstOnly(t *testing.T) {
	re, err := pyre.Compile(`\d+`)
	require.NoError(t, err)

	spans := runner.Execute(re, []byte("a1 b22 c333"), true)
	assert.Equal(t, [][2]int{{1, 2}}, spans)
}

func TestExecuteNoMatch(t *testing.T) {
	re, err := pyre.Compile(`\d+`)
	require.NoError(t, err)

	spans := runner.Execute(re, []byte("no digits here"), false)
	assert.Nil(t, spans)
}
