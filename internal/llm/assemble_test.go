package llm_test

import (
	"errors"
	"testing"

	"github.com/smetj/clai/internal/llm"
	"github.com/smetj/clai/internal/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(ls ...string) llm.LineSeq {
	return func(yield func(string, error) bool) {
		for _, l := range ls {
			if !yield(l, nil) {
				return
			}
		}
	}
}

func failingLines(err error) llm.LineSeq {
	return func(yield func(string, error) bool) {
		if !yield("partial", nil) {
			return
		}
		yield("", err)
	}
}

func budget(limit int) *tokens.Budget {
	return tokens.NewBudget(tokens.WordTokenizer{}, limit)
}

func TestAssemble_Order(t *testing.T) {
	msgs, err := llm.Assemble(budget(100), "  be brief  ", []string{" first ", "second\n"}, lines(" a ", "b\n", "c"))
	require.NoError(t, err)

	assert.Equal(t, []llm.Message{
		{Role: llm.RoleSystem, Content: "be brief"},
		{Role: llm.RoleUser, Content: "first"},
		{Role: llm.RoleUser, Content: "second"},
		{Role: llm.RoleUser, Content: "abc"},
	}, msgs)
}

func TestAssemble_NoStdinLines(t *testing.T) {
	tests := []struct {
		name  string
		stdin llm.LineSeq
	}{
		{"nil", nil},
		{"empty", lines()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := llm.Assemble(budget(100), "system", []string{"prompt"}, tt.stdin)
			require.NoError(t, err)
			require.Len(t, msgs, 2)
			assert.Equal(t, llm.RoleSystem, msgs[0].Role)
			assert.Equal(t, llm.RoleUser, msgs[1].Role)
		})
	}
}

func TestAssemble_BlankLineStillProducesMessage(t *testing.T) {
	msgs, err := llm.Assemble(budget(100), "system", nil, lines("   "))
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: ""}, msgs[1])
}

func TestAssemble_Deterministic(t *testing.T) {
	a, err := llm.Assemble(budget(100), "s", []string{"p1", "p2"}, lines("x", "y"))
	require.NoError(t, err)
	b, err := llm.Assemble(budget(100), "s", []string{"p1", "p2"}, lines("x", "y"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAssemble_SystemExceedsBudget(t *testing.T) {
	msgs, err := llm.Assemble(budget(2), "you are a helpful assistant", nil, nil)
	assert.Nil(t, msgs)
	assert.ErrorIs(t, err, tokens.ErrBudgetExceeded)
}

func TestAssemble_PromptExceedsBudget(t *testing.T) {
	msgs, err := llm.Assemble(budget(3), "be brief", []string{"this one is too long"}, nil)
	assert.Nil(t, msgs)
	assert.ErrorIs(t, err, tokens.ErrBudgetExceeded)
}

func TestAssemble_StdinExceedsBudget(t *testing.T) {
	drained := 0
	stdin := func(yield func(string, error) bool) {
		for _, l := range []string{"one two", "three four", "five six"} {
			drained++
			if !yield(l, nil) {
				return
			}
		}
	}

	msgs, err := llm.Assemble(budget(5), "sys", nil, stdin)
	assert.Nil(t, msgs)

	var be *tokens.BudgetError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 5, be.Max)
	assert.Equal(t, 7, be.Total)
	assert.Equal(t, 3, drained)
}

func TestAssemble_StdinReadError(t *testing.T) {
	readErr := errors.New("read failed")
	msgs, err := llm.Assemble(budget(100), "sys", nil, failingLines(readErr))
	assert.Nil(t, msgs)
	assert.ErrorIs(t, err, readErr)
}
