package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"slate/internal/naming"
	"slate/internal/versions"
)

func newVersionsCommand(ctx *commandContext) *cobra.Command {
	var resourceFlag string
	var allResources bool

	cmd := &cobra.Command{
		Use:   "versions <path>",
		Short: "List the version snapshots of a working file or step folder",
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

			store, err := item.VersionStore(step.ShortName())
			if err != nil {
				return err
			}

			id, _ := item.Identity()
			id.Step = step.ShortName()
			sel := versions.SelectorFor(id)
			sel.Resource = resourceSelector(path, resourceFlag, allResources)

			records := store.List(sel)
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No version snapshots.")
				return nil
			}

			rows := make([][]string, len(records))
			for i, record := range records {
				rows[i] = []string{
					strconv.Itoa(record.Version),
					record.State,
					record.Resource,
					record.ModifiedAt.Format("2006-01-02 15:04"),
					filepath.Base(record.Path),
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				renderTable([]string{"Version", "State", "Resource", "Modified", "File"}, rows, 0))
			return nil
		},
	}

	cmd.Flags().StringVarP(&resourceFlag, "resource", "r", "", "Only this resource")
	cmd.Flags().BoolVarP(&allResources, "all-resources", "a", false, "Every resource of the step")
	return cmd
}

// resourceSelector builds the resource filter from the flags, falling back
// to the resource token of the path itself.
func resourceSelector(path, resourceFlag string, allResources bool) naming.ResourceFilter {
	if allResources {
		return naming.AnyResource
	}
	if resourceFlag != "" {
		return naming.Resource(resourceFlag)
	}
	if id, ok := naming.Decode(filepath.Base(path)); ok {
		return naming.Resource(id.Resource)
	}
	return naming.AnyResource
}
