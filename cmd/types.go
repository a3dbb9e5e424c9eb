package main

import (
	"fmt"

	"github.com/loopholelabs/podcomm/pkg/pod/definition"
	"github.com/spf13/cobra"
)

var (
	cmdTypes = &cobra.Command{
		Use:   "types",
		Short: "List the known message block types",
		Long:  ``,
		Run:   runTypes,
	}
)

func init() {
	rootCmd.AddCommand(cmdTypes)
}

func runTypes(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	for _, t := range definition.AllMessageBlockTypes() {
		dir := "command"
		if t.IsResponse() {
			dir = "response"
		}
		fmt.Fprintf(out, "0x%02x  %-20s %s\n", t.Tag(), t.String(), dir)
	}
}
