package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// DisallowArguments is a Cobra arguments validator that disallows positional
// arguments. It is an alternative to cobra.NoArgs, which treats arguments as
// command names and returns a somewhat cryptic error message.
func DisallowArguments(_ *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New("command does not accept arguments")
	}
	return nil
}

// RequireArguments returns a Cobra arguments validator that requires between
// minimum and maximum positional arguments. A negative maximum imposes no upper
// bound.
func RequireArguments(minimum, maximum int) cobra.PositionalArgs {
	return func(_ *cobra.Command, arguments []string) error {
		if len(arguments) < minimum {
			return errors.Errorf("command requires at least %d argument(s)", minimum)
		} else if maximum >= 0 && len(arguments) > maximum {
			return errors.Errorf("command accepts at most %d argument(s)", maximum)
		}
		return nil
	}
}
