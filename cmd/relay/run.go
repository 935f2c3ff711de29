package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	flags := &locationFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the workflow once and print the result envelope",
		Long: `Runs every node of the workflow in order and writes the result envelope
as JSON to stdout: {"result": ...} on success, {"error": "..."} on failure.
Logs are written to stderr. The exit status is 1 when the run fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := newRelay(flags)
			if err != nil {
				return err
			}
			r.setupLogging(cmd.ErrOrStderr())

			env := r.engine.Run(cmd.Context())
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(env); err != nil {
				return err
			}
			if env.Failed() {
				return ErrRunFailed
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
