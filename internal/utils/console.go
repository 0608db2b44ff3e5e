package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// StatusPrinter writes short user-facing status lines, coloring them when the
// destination is an interactive terminal.
type StatusPrinter struct {
	destination io.Writer
	useColor    bool
}

// NewStatusPrinter constructs a StatusPrinter for the provided writer.
func NewStatusPrinter(destination io.Writer) *StatusPrinter {
	useColor := false
	if fileDestination, isFile := destination.(*os.File); isFile {
		descriptor := fileDestination.Fd()
		useColor = isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
	}
	return &StatusPrinter{destination: destination, useColor: useColor}
}

// Success prints a green status line.
func (printer *StatusPrinter) Success(format string, arguments ...any) {
	printer.print(color.GreenString, format, arguments...)
}

// Warning prints a yellow status line.
func (printer *StatusPrinter) Warning(format string, arguments ...any) {
	printer.print(color.YellowString, format, arguments...)
}

func (printer *StatusPrinter) print(colorize func(string, ...interface{}) string, format string, arguments ...any) {
	message := fmt.Sprintf(format, arguments...)
	if printer.useColor {
		message = colorize("%s", message)
	}
	fmt.Fprintln(printer.destination, message)
}
