package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/loopholelabs/podcomm/pkg/pod/command"
	"github.com/spf13/cobra"
)

var (
	cmdDecode = &cobra.Command{
		Use:   "decode HEX...",
		Short: "Decode raw message blocks",
		Long:  `Each argument is a run of raw blocks (tag, length, payload) in hex.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDecode,
	}
)

func init() {
	rootCmd.AddCommand(cmdDecode)
}

func runDecode(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, arg := range args {
		data, err := hex.DecodeString(strings.ReplaceAll(arg, " ", ""))
		if err != nil {
			return fmt.Errorf("decode hex %q: %w", arg, err)
		}
		blocks, err := command.DecodeAll(data)
		if err != nil {
			return err
		}
		for _, mb := range blocks {
			fmt.Fprintf(out, "%s\n", mb.String())
		}
	}
	return nil
}
