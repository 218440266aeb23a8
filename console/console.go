// Package console prints the server's status lines.
package console

import (
	"io"
	"log"

	"github.com/fatih/color"
)

// Logger is what the HTTP core reports through.
type Logger interface {
	Info(message string)
	Error(message string)
	Done(message string)
}

// Console writes one coloured line per message: blue [INFO], red [ERR!]
// and green [DONE].
type Console struct {
	logger *log.Logger
	info   *color.Color
	err    *color.Color
	done   *color.Color
}

// New returns a Console writing to w. Colour is dropped when noColor is set
// or when fatih/color decides the output is not a terminal.
func New(w io.Writer, noColor bool) *Console {
	c := &Console{
		logger: log.New(w, "", 0),
		info:   color.New(color.FgBlue),
		err:    color.New(color.FgRed),
		done:   color.New(color.FgGreen),
	}
	if noColor {
		c.info.DisableColor()
		c.err.DisableColor()
		c.done.DisableColor()
	}
	return c
}

func (c *Console) Info(message string)  { c.line(c.info, "INFO", message) }
func (c *Console) Error(message string) { c.line(c.err, "ERR!", message) }
func (c *Console) Done(message string)  { c.line(c.done, "DONE", message) }

func (c *Console) line(col *color.Color, level, message string) {
	c.logger.Print(col.Sprintf("[%s] %s", level, message))
}

type discard struct{}

func (discard) Info(string)  {}
func (discard) Error(string) {}
func (discard) Done(string)  {}

// Discard drops every message.
var Discard Logger = discard{}
