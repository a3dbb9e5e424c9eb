package main

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/loopholelabs/podcomm/pkg/pod/command"
	"github.com/loopholelabs/podcomm/pkg/pod/config"
	"github.com/loopholelabs/podcomm/pkg/pod/definition"
	"github.com/spf13/cobra"
)

var (
	cmdShow = &cobra.Command{
		Use:   "show ID",
		Short: "Show an archived transcript",
		Long:  ``,
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
)

var showArchive string

func init() {
	rootCmd.AddCommand(cmdShow)
	cmdShow.Flags().StringVarP(&showArchive, "archive", "a", "sqlite", "Archive (sqlite or s3)")
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("transcript id %q: %w", args[0], err)
	}

	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	arch, err := openArchive(ctx, showArchive, env)
	if err != nil {
		return err
	}
	defer arch.Close()

	tr, err := arch.Get(ctx, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", tr.String())
	for i, raw := range tr.Blocks() {
		mb, _, err := command.Decode(raw)
		if err != nil {
			// Responses and unknown tags are shown raw
			fmt.Fprintf(out, "%3d %s %s\n", i, definition.MessageBlockType(raw[0]), hex.EncodeToString(raw))
			continue
		}
		fmt.Fprintf(out, "%3d %s\n", i, mb.String())
	}
	return nil
}
