package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"slate/internal/naming"
	"slate/internal/publish"
)

func newPublishesCommand(ctx *commandContext) *cobra.Command {
	var resourceFlag string
	var fileNameFlag string
	var latestOnly bool

	cmd := &cobra.Command{
		Use:   "publishes <path>",
		Short: "List the publish snapshots of a step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			pipe, err := ctx.pipeline()
			if err != nil {
				return err
			}
			item, ok := pipe.ItemFromPath(path)
			if !ok {
				return fmt.Errorf("%s is not a pipeline path", args[0])
			}
			step, ok := pipe.StepFromPath(path)
			if !ok {
				return fmt.Errorf("%s does not name a production step", args[0])
			}

			store, err := item.PublishStore(step.ShortName())
			if err != nil {
				return err
			}

			resource := naming.AnyResource
			if resourceFlag != "" {
				resource = naming.Resource(resourceFlag)
			}
			out := cmd.OutOrStdout()

			if latestOnly {
				latest, found := store.Latest(fileNameFlag, resource)
				if !found {
					fmt.Fprintln(out, "Nothing published.")
					return nil
				}
				fmt.Fprintln(out, latest)
				return nil
			}

			opts := publish.DefaultListOptions()
			opts.Resource = resource
			opts.FileName = fileNameFlag
			paths := store.List(opts)
			if len(paths) == 0 {
				fmt.Fprintln(out, "Nothing published.")
				return nil
			}

			rows := make([][]string, len(paths))
			for i, p := range paths {
				fields := naming.SplitPublishKey(filepath.Base(p))
				row := make([]string, 4)
				for n := 0; n < 3 && n < len(fields); n++ {
					row[n] = fields[n]
				}
				row[3] = p
				rows[i] = row
			}
			fmt.Fprintln(out,
				renderTable([]string{"Resource", "State", "Version", "Folder"}, rows, 2))
			return nil
		},
	}

	cmd.Flags().StringVarP(&resourceFlag, "resource", "r", "", "Only this resource")
	cmd.Flags().StringVarP(&fileNameFlag, "file", "f", "", "Only publishes containing this file")
	cmd.Flags().BoolVar(&latestOnly, "latest", false, "Print only the latest publish folder")
	return cmd
}
