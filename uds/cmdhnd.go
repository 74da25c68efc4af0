package uds

import (
	"context"
	"io"
	"strings"
	"unicode"
)

type CmdHnd struct {
	Desc  string
	Usage string
	// RawArgs hands Fn the rest of the line after the command word as a
	// single untouched argument instead of splitting it on whitespace
	RawArgs bool
	Fn      func(ctx context.Context, args []string, w io.Writer) error
}

// splitCommand returns the command word and the remainder of a trimmed line
func splitCommand(line string) (string, string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeftFunc(line[i:], unicode.IsSpace)
}

func (h CmdHnd) args(rest string) []string {
	if !h.RawArgs {
		return strings.Fields(rest)
	}
	if rest == "" {
		return nil
	}
	return []string{rest}
}
