package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"todo/internal/errors"
)

// Shell reads commands line by line and runs them against one session
// that lives as long as the shell.
type Shell struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewShell creates a shell over app
func NewShell(app *App) *Shell {
	return &Shell{app: app, errorHandler: NewErrorHandler()}
}

// Run loops until quit, end of input or ctx is done. Command failures
// are printed and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.app.out, "todo shell. Type help for commands, quit to leave.")

	scanner := bufio.NewScanner(s.app.in)
	s.prompt()
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		args, err := splitArgs(scanner.Text())
		if err != nil {
			fmt.Fprintf(s.app.errOut, "Error: %v\n", s.errorHandler.HandleSimple(err))
			s.prompt()
			continue
		}
		if len(args) == 0 {
			s.prompt()
			continue
		}

		switch strings.ToLower(args[0]) {
		case "quit", "exit":
			return nil
		}

		slog.Debug("shell command", "command", args[0], "args", len(args)-1)
		if err := s.app.Run(ctx, args); err != nil {
			fmt.Fprintf(s.app.errOut, "Error: %v\n", s.errorHandler.HandleSimple(err))
		}
		s.prompt()
	}
	return scanner.Err()
}

func (s *Shell) prompt() {
	if user, ok := s.app.session.User(); ok {
		fmt.Fprintf(s.app.out, "todo[%s]> ", user.Username)
		return
	}
	fmt.Fprint(s.app.out, "todo> ")
}

// splitArgs splits a line on whitespace. Single or double quotes group
// words, and a backslash escapes the next character outside single quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 || escaped {
		return nil, errors.NewInvalidInputError("line", line, "unterminated quote or escape")
	}
	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}
