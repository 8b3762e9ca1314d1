package narrator

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Base values for the {wpm} and {amplitude} placeholders, matching
// espeak-ng's defaults.
const (
	baseWordsPerMinute = 175
	baseAmplitude      = 100
)

// Command narrates by running an external speech program such as espeak-ng
// or say. Each argument may contain placeholders:
//
//	{text}       text to speak
//	{lang}       configured language
//	{rate}       Options.Rate as given
//	{volume}     Options.Volume as given
//	{wpm}        Rate scaled to words per minute (175 at 1.0)
//	{amplitude}  Volume scaled to 0-100
//
// If no argument contains {text}, the text is appended as the last argument.
type Command struct {
	Name     string
	Args     []string
	Language string

	clock  quartz.Clock
	logger *log.Logger
	run    func(ctx context.Context, name string, args ...string) error
}

// NewCommand creates a Command narrator
func NewCommand(name string, args []string, language string, logger *log.Logger, clock quartz.Clock) *Command {
	return &Command{
		Name:     name,
		Args:     args,
		Language: language,
		clock:    clock,
		logger:   logger.WithPrefix("narrator"),
		run:      runCommand,
	}
}

// Available reports whether the speech program can be found in PATH
func (c *Command) Available() bool {
	_, err := exec.LookPath(c.Name)
	return err == nil
}

func (c *Command) Narrate(ctx context.Context, text string, opts Options) error {
	args := c.expand(text, opts)

	c.logger.Debug("Narrating", "command", c.Name, "args", args)
	start := c.clock.Now()
	err := c.run(ctx, c.Name, args...)
	elapsed := c.clock.Since(start)

	if err != nil {
		c.logger.Warn("Narration failed", "error", err, "elapsed", elapsed)
		return &NarrationError{Text: text, Err: err}
	}

	c.logger.Debug("Narration finished", "elapsed", elapsed)
	return nil
}

// expand substitutes placeholders in the argument template
func (c *Command) expand(text string, opts Options) []string {
	r := strings.NewReplacer(
		"{text}", text,
		"{lang}", c.Language,
		"{rate}", formatFloat(opts.Rate),
		"{volume}", formatFloat(opts.Volume),
		"{wpm}", strconv.Itoa(int(math.Round(opts.Rate*baseWordsPerMinute))),
		"{amplitude}", strconv.Itoa(int(math.Round(opts.Volume*baseAmplitude))),
	)

	args := make([]string, 0, len(c.Args)+1)
	hasText := false
	for _, arg := range c.Args {
		if strings.Contains(arg, "{text}") {
			hasText = true
		}
		args = append(args, r.Replace(arg))
	}
	if !hasText {
		args = append(args, text)
	}
	return args
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
