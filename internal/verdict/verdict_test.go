package verdict

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	v, err := Validate(`{"answer": true, "reason": "x"}`)
	require.NoError(t, err)
	assert.True(t, v.Answer)
	assert.Equal(t, "x", v.Reason)
}

func TestValidate_FalseAnswer(t *testing.T) {
	v, err := Validate(`{"reason": "grey is not a primary colour", "answer": false}`)
	require.NoError(t, err)
	assert.False(t, v.Answer)
}

func TestValidate_SurroundingWhitespace(t *testing.T) {
	_, err := Validate("\n  {\"answer\": true, \"reason\": \"x\"}  \n")
	assert.NoError(t, err)
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "not json"},
		{"empty", ""},
		{"wrong answer type", `{"answer": "yes", "reason": "x"}`},
		{"wrong reason type", `{"answer": true, "reason": 5}`},
		{"missing reason", `{"answer": true}`},
		{"missing answer", `{"reason": "x"}`},
		{"additional property", `{"answer": true, "reason": "x", "extra": 1}`},
		{"array", `[true, "x"]`},
		{"bare boolean", `true`},
		{"tri-state text", `{"answer": "inconclusive", "reason": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchema))

			var se *SchemaError
			assert.True(t, errors.As(err, &se))
			assert.Contains(t, err.Error(), "structured output")
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(Verdict{Answer: true, Reason: "yes"}))
	assert.Equal(t, 1, ExitCode(Verdict{Answer: false, Reason: "no"}))
	assert.Equal(t, 3, ExitMalformed)
}

func TestSchema_Shape(t *testing.T) {
	s := Schema()
	assert.Equal(t, "object", s["type"])
	assert.Equal(t, false, s["additionalProperties"])
	assert.ElementsMatch(t, []any{"answer", "reason"}, s["required"])

	props, ok := s["properties"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"type": "boolean"}, props["answer"])
	assert.Equal(t, map[string]any{"type": "string"}, props["reason"])
}

func TestSchema_ReturnsCopy(t *testing.T) {
	s := Schema()
	s["type"] = "array"
	assert.Equal(t, "object", Schema()["type"])
}

func TestVerdict_JSON(t *testing.T) {
	v := Verdict{Answer: true, Reason: "mixing black and white yields grey"}
	got, err := Validate(v.JSON())
	require.NoError(t, err)
	assert.Equal(t, v, got)
}
