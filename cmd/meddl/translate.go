package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/go-meddl/internal/dialect"
)

func newTranslateCmd() *cobra.Command {
	var (
		text  string
		times int
	)

	cmd := &cobra.Command{
		Use:   "translate [words...]",
		Short: "Translate one sentence (args, --text, or stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if times < 1 {
				return fmt.Errorf("--times must be at least 1")
			}

			input, err := resolveInput(text, args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			svc, err := dialect.NewService(cfg)
			if err != nil {
				return err
			}
			return runTranslate(cmd.Context(), svc, input, times, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Sentence to translate (overrides args)")
	cmd.Flags().IntVar(&times, "times", 1, "Number of independent renditions to print")

	return cmd
}

// resolveInput picks the sentence from --text, then positional args, then
// stdin.
func resolveInput(text string, args []string, stdin io.Reader) (string, error) {
	if text != "" {
		return text, nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := stdin.(*os.File); ok {
		if fi, err := f.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no input: pass words, --text, or pipe a sentence on stdin")
		}
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func runTranslate(ctx context.Context, svc *dialect.Service, input string, times int, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for range times {
		out, err := svc.Translate(ctx, input, 0)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
	return nil
}
