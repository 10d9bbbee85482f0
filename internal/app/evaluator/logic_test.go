package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogicKeywordForms(t *testing.T) {
	expr, err := ParseLogic("0 AND 1")
	require.NoError(t, err)
	v, err := expr.Eval(map[int]bool{0: true, 1: true})
	require.NoError(t, err)
	assert.True(t, v)

	v, err = expr.Eval(map[int]bool{0: true, 1: false})
	require.NoError(t, err)
	assert.False(t, v)
}

func TestParseLogicOrAndNot(t *testing.T) {
	expr, err := ParseLogic("0 OR (1 AND NOT 2)")
	require.NoError(t, err)

	v, err := expr.Eval(map[int]bool{0: false, 1: true, 2: false})
	require.NoError(t, err)
	assert.True(t, v)

	v, err = expr.Eval(map[int]bool{0: false, 1: true, 2: true})
	require.NoError(t, err)
	assert.False(t, v)
}

func TestParseLogicSymbolicForms(t *testing.T) {
	expr, err := ParseLogic("0 && !1")
	require.NoError(t, err)
	v, err := expr.Eval(map[int]bool{0: true, 1: false})
	require.NoError(t, err)
	assert.True(t, v)
}

func TestLeavesReflectsReferencedIndices(t *testing.T) {
	expr, err := ParseLogic("3 OR 1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 3}, expr.Leaves())
}

func TestEvalMissingTerminalErrors(t *testing.T) {
	expr, err := ParseLogic("0 AND 1")
	require.NoError(t, err)
	_, err = expr.Eval(map[int]bool{0: true})
	require.Error(t, err)
}

func TestParseLogicInvalidExpression(t *testing.T) {
	_, err := ParseLogic("0 AND")
	require.Error(t, err)
}
