package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/Columbina-Dev/vector-calculator/internal/config"
	"github.com/Columbina-Dev/vector-calculator/internal/voicebank"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func shouldColorize(writer io.Writer, mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func paint(text, color string, colorize bool) string {
	if !colorize || color == "" {
		return text
	}
	return color + text + ansiReset
}

func severityLabel(sev voicebank.Severity, colorize bool) string {
	switch sev {
	case voicebank.SeverityError:
		return paint("ERROR", ansiRed, colorize)
	case voicebank.SeverityWarning:
		return paint("WARN", ansiYellow, colorize)
	default:
		return string(sev)
	}
}

func checkLabel(ok bool, colorize bool) string {
	if ok {
		return paint("OK", ansiGreen, colorize)
	}
	return paint("MISMATCH", ansiRed, colorize)
}
