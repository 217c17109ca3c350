package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Xausdorf/pixcode/internal/domain/brcode"
	"github.com/Xausdorf/pixcode/internal/infrastructure/qrgenerator"
)

func payloadCmd() *cobra.Command {
	var (
		charge  brcode.Charge
		amount  string
		pngPath string
		pngSize int
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Print the copy-and-paste BR Code for a static Pix charge",
		Long: `Build a static Pix BR Code and print it on stdout.

Examples:
  pixcode payload --key 11999998888 --name "Fulano de Tal" --city Brasilia --amount 10.00 --txid DEVPROPAY
  pixcode payload --key fulano@example.com --name Fulano --amount 25 --png charge.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			charge.Amount = d

			if strict {
				if err := brcode.ValidateCharge(charge); err != nil {
					return err
				}
			}

			payload, err := brcode.BuildStaticPayload(charge)
			if err != nil {
				return err
			}

			if pngPath != "" {
				png, err := qrgenerator.NewGenerator(pngSize).Generate(payload)
				if err != nil {
					return fmt.Errorf("render qr: %w", err)
				}
				if err := os.WriteFile(pngPath, png, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", pngPath, err)
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), payload)
			return err
		},
	}

	cmd.Flags().StringVarP(&charge.Key, "key", "k", "", "receiver Pix key (required)")
	cmd.Flags().StringVarP(&charge.Name, "name", "n", "", "receiver name (required)")
	cmd.Flags().StringVarP(&charge.City, "city", "c", brcode.DefaultCity, "receiver city")
	cmd.Flags().StringVarP(&amount, "amount", "a", "0", "charge amount in BRL, e.g. 10.50")
	cmd.Flags().StringVarP(&charge.TxID, "txid", "t", brcode.DefaultTxID, "reference label")
	cmd.Flags().StringVar(&pngPath, "png", "", "also write the QR code PNG to this file")
	cmd.Flags().IntVar(&pngSize, "size", 256, "PNG size in pixels")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject keys and txids that do not follow a Pix format")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
