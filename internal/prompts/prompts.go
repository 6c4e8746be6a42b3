// Package prompts holds the instruction texts clai sends as the system message
// for each request mode.
package prompts

import "fmt"

// Mode selects the behavioral instruction for a request. Exactly one mode is
// active per invocation.
type Mode int

const (
	// ModePlain sends the instance's configured system text and returns the
	// model's answer verbatim.
	ModePlain Mode = iota
	// ModeBool replaces the system text with the boolean verdict instruction.
	ModeBool
)

// DefaultSystem is used when an instance does not configure a system text.
const DefaultSystem = "You are a helpful assistant. Answer concisely."

// boolInstruction mentions JSON explicitly because json_object response
// formats refuse requests whose messages never say "JSON".
const boolInstruction = `
    Analyze the following statement or question without inferring missing
    information and provide a structured JSON response containing two elements:
    1. answer (type: boolean) - A definitive true or false based on the given information.
    2. reason (type: string) - A brief explanation justifying both the answer and whether the context was sufficient or not.
`

var instructions = map[Mode]string{
	ModeBool: boolInstruction,
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeBool:
		return "bool"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// System returns the system text for mode. Plain mode keeps the configured
// text (or DefaultSystem when empty); every other mode uses its instruction.
func System(mode Mode, configured string) string {
	if text, ok := instructions[mode]; ok {
		return text
	}
	if configured == "" {
		return DefaultSystem
	}
	return configured
}
