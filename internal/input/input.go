// Package input reads the text piped to clai on standard input.
package input

import (
	"bufio"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/smetj/clai/internal/llm"
)

// maxLineSize is the longest single line Lines accepts.
const maxLineSize = 1024 * 1024

// Lines returns a single-pass sequence over the lines of r. Line terminators
// are stripped. A scan failure is yielded once as the final element.
func Lines(r io.Reader) llm.LineSeq {
	return func(yield func(string, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for sc.Scan() {
			if !yield(sc.Text(), nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield("", err)
		}
	}
}

// Piped reports whether f is connected to a pipe or file rather than an
// interactive terminal.
func Piped(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}
