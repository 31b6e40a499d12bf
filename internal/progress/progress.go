package progress

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Indicator shows that long-running work is in progress.
// Stop must be safe to call whether or not Start succeeded.
type Indicator interface {
	Start()
	Stop()
}

// Nop is an Indicator that draws nothing. It is used when the output is
// not a terminal, so logs and redirected output stay free of control codes.
type Nop struct{}

func (Nop) Start() {}
func (Nop) Stop()  {}

// Spinner animates a braille spinner followed by a message.
type Spinner struct {
	s *spinner.Spinner
}

// New returns a Spinner writing to out when out is a terminal, and Nop
// otherwise.
func New(message string, out *os.File) Indicator {
	if out == nil || !isTerminal(out) {
		return Nop{}
	}

	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithWriter(out),
		spinner.WithSuffix(" "+message),
		spinner.WithHiddenCursor(true),
	)
	_ = s.Color("cyan")
	return &Spinner{s: s}
}

func (p *Spinner) Start() { p.s.Start() }

// Stop halts the animation and clears the spinner line.
func (p *Spinner) Stop() { p.s.Stop() }

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
