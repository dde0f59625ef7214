package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"slate/internal/layout"
)

func newSavePathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "save-path <path>",
		Short: "Print the canonical working-file path for any pipeline file",
		Long: "Resolves where a file should be saved: snapshots, previews and " +
			"publishes map back to the working file in the step folder, with " +
			"version and state tokens stripped.",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			savePath, ok := layout.SaveFilePath(path)
			if !ok {
				return fmt.Errorf("%s is not a pipeline file name", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), savePath)
			return nil
		},
	}
}
