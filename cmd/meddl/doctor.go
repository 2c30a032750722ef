package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/go-meddl/internal/doctor"
	"github.com/example/go-meddl/internal/rules"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run rule table and configuration checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			result := doctor.Run(doctor.Config{
				LoadTable: func() (*rules.Table, string, error) {
					return rules.LoadOrDefault(cfg.Rules.Path)
				},
				ConfigFile:    cfgFile,
				Language:      cfg.Rules.Language,
				InterludeRate: cfg.Rules.InterludeRate,
			}, out)

			if result.Failed() {
				errOut := cmd.ErrOrStderr()
				for _, f := range result.Failures() {
					fmt.Fprintf(errOut, "FAIL: %s\n", f)
				}
				return errors.New("doctor checks failed")
			}

			if n := len(result.Warnings()); n > 0 {
				_, _ = fmt.Fprintf(out, "doctor checks passed with %d warning(s)\n", n)
				return nil
			}
			_, _ = fmt.Fprintln(out, "doctor checks passed")

			return nil
		},
	}
}
