package rtf

import "fmt"

// NoHit is the symbol the exporter prints for a turn where no dart scored.
const NoHit = "∅"

// NormalizationError is returned when a transcript cannot be turned into text
// at all, e.g. binary input or an undecodable encoding.
type NormalizationError struct {
	Err error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize transcript: %v", e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// group is the state carried by one level of RTF braces.
type group struct {
	skip bool
	// uc is the number of fallback characters following a \uN escape.
	uc int
}

// control is a single parsed control sequence.
type control struct {
	word     string
	param    int
	hasParam bool
	// symbol holds the character for control symbols such as \{ or \'e9.
	symbol rune
	size   int
}
