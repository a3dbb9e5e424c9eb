package main

import (
	"encoding/hex"
	"fmt"

	"github.com/loopholelabs/podcomm/pkg/pod/command"
	"github.com/loopholelabs/podcomm/pkg/pod/config"
	"github.com/spf13/cobra"
)

var (
	cmdEncode = &cobra.Command{
		Use:   "encode",
		Short: "Encode a single message block",
		Long:  ``,
		RunE:  runEncode,
	}
)

var encodeSchema config.CommandSchema

func init() {
	rootCmd.AddCommand(cmdEncode)
	cmdEncode.Flags().StringVarP(&encodeSchema.Type, "type", "t", "assign_address", "Message block type")
	cmdEncode.Flags().StringVarP(&encodeSchema.Address, "address", "a", "", "Pod address")
	cmdEncode.Flags().StringVarP(&encodeSchema.Nonce, "nonce", "n", "", "Nonce")
	cmdEncode.Flags().StringVar(&encodeSchema.Info, "info", "", "Pod info type for get_status")
	cmdEncode.Flags().StringVar(&encodeSchema.Beep, "beep", "", "Beep type")
	cmdEncode.Flags().StringSliceVar(&encodeSchema.Delivery, "delivery", nil, "Delivery types to cancel")
	cmdEncode.Flags().IntSliceVar(&encodeSchema.Alerts, "alerts", nil, "Alert slots to acknowledge")
	cmdEncode.Flags().StringVar(&encodeSchema.Lot, "lot", "", "Lot number")
	cmdEncode.Flags().StringVar(&encodeSchema.TID, "tid", "", "TID")
	cmdEncode.Flags().StringVar(&encodeSchema.Date, "date", "", "Activation date")
	cmdEncode.Flags().IntVar(&encodeSchema.Timeout, "timeout", 0, "Packet timeout limit")
}

func runEncode(cmd *cobra.Command, _ []string) error {
	mb, err := encodeSchema.MessageBlock()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", mb.String())
	fmt.Fprintf(out, "payload %s\n", hex.EncodeToString(mb.EncodedData()))
	fmt.Fprintf(out, "raw     %s\n", hex.EncodeToString(command.Encode(mb)))
	return nil
}
