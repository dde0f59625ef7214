package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"slate/internal/layout"
	"slate/internal/metadata"
	"slate/internal/versions"
)

func newRestoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <version-file>",
		Short: "Reopen a version snapshot as the current working file",
		Long: "Copies a file from a _versions folder back to the working location. " +
			"The produced file is marked as restored, so the next save claims a " +
			"fresh version number instead of overwriting newer work.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if !layout.InVersionsFolder(path) {
				return fmt.Errorf("%s is not inside a _versions folder", args[0])
			}

			stepFolder := filepath.Dir(filepath.Dir(path))
			store := versions.NewStore(stepFolder, ctx.logger())

			restored, err := store.Restore(path)
			if err != nil {
				return err
			}

			meta := metadata.NewManager(ctx.logger())
			if err := meta.AppendHistory(restored, metadata.Event{
				Comment: fmt.Sprintf("restored from %s", filepath.Base(path)),
			}); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), restored)
			return nil
		},
	}
}
