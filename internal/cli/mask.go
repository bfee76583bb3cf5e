package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/validation"
)

// maskKeystrokes replays typed one character at a time through the masked
// number field and returns each value the field shows.
func maskKeystrokes(typed string) []string {
	var (
		field string
		steps []string
	)
	for _, r := range typed {
		field = validation.EncodeMaskedNumber(field, field+string(r))
		steps = append(steps, field)
	}
	return steps
}

// maskNumber returns the field value after typing typed.
func maskNumber(typed string) string {
	steps := maskKeystrokes(typed)
	if len(steps) == 0 {
		return ""
	}
	return steps[len(steps)-1]
}

func maskCmd() *cobra.Command {
	var showSteps bool

	cmd := &cobra.Command{
		Use:   "mask <digits>",
		Short: "Show how an account number is masked as it is typed",
		Long: `Replay keystrokes through the masked account number field. The first four
characters always show as '*' and only digits are kept after them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			steps := maskKeystrokes(args[0])
			if showSteps {
				for i, s := range steps {
					_, _ = fmt.Fprintf(w, "%2d  %s\n", i+1, s)
				}
			}

			masked := maskNumber(args[0])
			_, _ = fmt.Fprintln(w, masked)
			if err := validation.ValidateMaskedNumber(masked); err != nil {
				warn(cmd, err.Error())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSteps, "steps", false, "print the field after every keystroke")

	return cmd
}

func versionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.Build.String())
		},
	}
}
