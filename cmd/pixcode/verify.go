package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Xausdorf/pixcode/internal/domain/brcode"
)

var errChecksumMismatch = errors.New("checksum mismatch")

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [payload]",
		Short: "Check the CRC16 of a BR Code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := strings.TrimSpace(args[0])
			if !brcode.ValidChecksum(payload) {
				return errChecksumMismatch
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return err
		},
	}
}
