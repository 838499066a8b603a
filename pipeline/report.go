package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/px/log"
	"github.com/ardnew/px/value"
)

// Outcome is the final state of one row after its last stage.
type Outcome struct {
	Value    any   // final bound value
	Prior    any   // value bound before Value was produced
	Bound    bool  // whether Value is bound at all
	HasPrior bool  // whether Prior is bound
	Err      error // row error; the other fields are unset
}

// Result returns the value a row contributes to the output, if any.
//
// Unless showBool is set, a boolean outcome acts as a filter: true passes
// the prior value through (or True when there was none) and false drops
// the row. Unbound and failed rows contribute nothing.
func (o Outcome) Result(showBool bool) (any, bool) {
	if o.Err != nil || !o.Bound {
		return nil, false
	}

	b, ok := o.Value.(bool)
	if !ok || showBool {
		return o.Value, true
	}

	switch {
	case !b:
		return nil, false
	case o.HasPrior:
		return o.Prior, true
	default:
		return true, true
	}
}

// Reporter writes row results to the output stream and row errors to the
// error stream.
type Reporter struct {
	out       io.Writer
	errOut    io.Writer
	showError bool
	showBool  bool
	styled    bool
	style     lipgloss.Style
	logger    log.Logger
	failed    bool
}

// NewReporter returns a Reporter writing to out and errOut. Errors are
// colored when errOut is a terminal.
func NewReporter(out, errOut io.Writer, opts ...Option) *Reporter {
	cfg := makeConfig(opts...)

	if out == nil {
		out = io.Discard
	}

	if errOut == nil {
		errOut = io.Discard
	}

	r := &Reporter{
		out:       out,
		errOut:    errOut,
		showError: cfg.showError,
		showBool:  cfg.showBool,
		logger:    cfg.logger,
	}

	if f, ok := errOut.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		r.styled = true
		r.style = lipgloss.NewRenderer(f).NewStyle().
			Foreground(lipgloss.Color("1"))
	}

	return r
}

// Report writes the outcome of one row. Any row error marks the run failed,
// whether or not it is shown.
func (r *Reporter) Report(ctx context.Context, o Outcome) error {
	if o.Err != nil {
		return r.reportError(ctx, o.Err)
	}

	v, ok := o.Result(r.showBool)
	if !ok {
		return nil
	}

	if _, err := fmt.Fprintln(r.out, value.Format(v)); err != nil {
		return ErrOutput.Wrap(err)
	}

	return nil
}

func (r *Reporter) reportError(ctx context.Context, err error) error {
	r.failed = true

	r.logger.DebugContext(ctx, "row failed", slog.Any("error", err))

	if !r.showError {
		return nil
	}

	msg := Message(err)
	if r.styled {
		msg = r.style.Render(msg)
	}

	if _, werr := fmt.Fprintln(r.errOut, msg); werr != nil {
		return ErrOutput.Wrap(werr)
	}

	return nil
}

// Failed reports whether any row error has been reported.
func (r *Reporter) Failed() bool { return r.failed }
