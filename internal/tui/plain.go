package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"

	"github.com/arcanaland/karuta/internal/narrator"
	"github.com/arcanaland/karuta/internal/session"
)

// Plain is a line-oriented shell for when stdin or stdout is not a terminal.
// Commands are read one per line and narration runs before the next line is
// read.
type Plain struct {
	Width int

	session  *session.Session
	narrator narrator.Narrator
	opts     narrator.Options
	out      io.Writer
	logger   *log.Logger
}

// NewPlain creates a plain shell writing to out
func NewPlain(s *session.Session, n narrator.Narrator, opts narrator.Options, out io.Writer, logger *log.Logger) *Plain {
	return &Plain{
		Width:    40,
		session:  s,
		narrator: n,
		opts:     opts,
		out:      out,
		logger:   logger.WithPrefix("plain"),
	}
}

// Run reads commands from in until quit, end of input, or ctx is done.
// Cancelling ctx returns immediately even while waiting for a line.
func (p *Plain) Run(ctx context.Context, in io.Reader) error {
	p.printUsage()

	done := make(chan struct{})
	defer close(done)
	lines, errc := readLines(in, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return <-errc
			}
			line = l
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		command := strings.ToLower(strings.TrimSpace(line))
		switch command {
		case "":
			continue
		case "n", "draw":
			p.session.DrawNext()
		case "r", "replay":
			p.session.Replay()
		case "x", "reset":
			p.session.Reset()
		case "q", "quit":
			return nil
		default:
			color.New(color.FgRed).Fprintf(p.out, "unknown command: %s\n", command)
			continue
		}

		p.render()
		p.narrate(ctx)
	}
}

// readLines scans in on its own goroutine so a blocked read never holds up
// cancellation. The lines channel is closed at end of input, after the scan
// error (or nil) has been sent on errc. The goroutine stops sending once done
// is closed.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
		close(lines)
	}()

	return lines, errc
}

func (p *Plain) printUsage() {
	fmt.Fprintf(p.out, "%s  %d まい\n", color.HiWhiteString("かるたゲーム"), p.session.Size())
	fmt.Fprintln(p.out, color.CyanString("n")+" あたらしい よみふだ  "+
		color.CyanString("r")+" もういちど よむ  "+
		color.CyanString("x")+" リセット  "+
		color.CyanString("q")+" quit")
}

func (p *Plain) render() {
	fmt.Fprintln(p.out, strings.Repeat("-", p.Width))

	c, ok := p.session.Current()
	if !ok {
		fmt.Fprintf(p.out, "%d まい\n", p.session.Size())
		return
	}

	fmt.Fprintf(p.out, "のこり: %d\n", p.session.Size())
	if p.session.Exhausted() {
		fmt.Fprintln(p.out, color.YellowString("%s", c.Prompt))
		fmt.Fprintln(p.out, color.YellowString("%s", c.Clue))
		return
	}

	fmt.Fprintln(p.out, color.HiWhiteString("# %s", c.Prompt))
	fmt.Fprintln(p.out, color.GreenString("%s", c.Clue))
}

// narrate consumes the session's audio cue and speaks it. Failures are
// reported and do not stop the shell.
func (p *Plain) narrate(ctx context.Context) {
	c, ok := p.session.ConsumeAudioCue()
	if !ok {
		return
	}

	if err := narrator.Speak(ctx, p.narrator, c, p.opts); err != nil {
		p.logger.Warn("Narration failed", "prompt", c.Prompt, "error", err)
		color.New(color.FgYellow).Fprintf(p.out, "warning: %v\n", err)
	}
}
