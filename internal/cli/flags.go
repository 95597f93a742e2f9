package cli

import (
	"io"
	"strings"

	"github.com/spf13/pflag"

	"todo/internal/errors"
)

// newFlagSet returns a quiet flag set for registry commands. Flags may
// appear anywhere among the positional arguments.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errors.NewInvalidInputError(fs.Name(), strings.Join(args, " "), err.Error())
	}
	return nil
}

// credentials splits "<username> [password]".
func credentials(command string, args []string) (string, string, error) {
	switch len(args) {
	case 1:
		return args[0], "", nil
	case 2:
		return args[0], args[1], nil
	default:
		return "", "", errors.NewInvalidInputError("command", command, "usage: "+command+" <username> [password]")
	}
}
