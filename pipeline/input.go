package pipeline

import (
	"bufio"
	"io"
	"iter"
	"os"

	"github.com/klauspost/readahead"
	"github.com/mattn/go-isatty"
)

// maxLineSize bounds the length of a single input line.
const maxLineSize = 16 << 20

// Input is the source of rows for the first pipeline segment.
type Input struct {
	r           io.Reader
	interactive bool
	err         error
}

// NewInput returns an Input reading lines from r. An interactive input is
// never read; the pipeline runs once without a row binding instead.
func NewInput(r io.Reader, interactive bool) *Input {
	return &Input{r: r, interactive: interactive}
}

// FileInput returns an Input reading from f, which is interactive when f is
// a terminal.
func FileInput(f *os.File) *Input {
	fd := f.Fd()

	return NewInput(f, isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// Interactive reports whether the input is a terminal.
func (in *Input) Interactive() bool { return in.interactive }

// Lines returns a sequence over the lines of the input without their line
// terminators. Read errors end the sequence and are reported by [Input.Err].
func (in *Input) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		if in.r == nil {
			return
		}

		// Prefetch input while earlier lines are evaluated.
		ra := readahead.NewReader(in.r)
		defer ra.Close()

		scanner := bufio.NewScanner(ra)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			in.err = ErrInput.Wrap(err)
		}
	}
}

// Err returns the error that ended the most recent iteration of Lines.
func (in *Input) Err() error { return in.err }
