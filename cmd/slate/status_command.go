package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon connectivity and pipeline info",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.daemon()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			reply, ok := client.Ping()
			if !ok || !reply.OK() {
				fmt.Fprintf(out, "Daemon: %s (%s)\n", badge("offline", ansiYellow, colorize), client.Address())
				fmt.Fprintln(out, "File and version listings still work; metadata and paths will not resolve.")
				return nil
			}

			fmt.Fprintf(out, "Daemon: %s (%s)\n", badge("online", ansiGreen, colorize), client.Address())
			if version, ok := reply.Content["version"].(string); ok && version != "" {
				fmt.Fprintf(out, "Version: %s\n", version)
			}
			if userUUID, ok := reply.Content["userUuid"].(string); ok && userUUID != "" {
				fmt.Fprintf(out, "User: %s\n", userUUID)
			}
			if root := client.RootFolder(); root != "" {
				fmt.Fprintf(out, "Storage root: %s\n", root)
			}
			return nil
		},
	}
}

func badge(label, color string, colorize bool) string {
	if !colorize {
		return label
	}
	return color + label + ansiReset
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
