package main

import (
	"fmt"
	"os"

	"delivery-route-sequencer/internal/intake"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	labelPayload string
	labelOut     string
	labelSize    int
)

var labelCmd = &cobra.Command{
	Use:     "label",
	Short:   "Render a QR label PNG from a single payload file",
	Example: `  routectl label --payload order.json --out label.png`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(labelPayload)
		if err != nil {
			return fmt.Errorf("read %q: %w", labelPayload, err)
		}

		order, err := intake.ParsePayload(raw)
		if err != nil {
			return err
		}

		png, err := intake.Label(order, labelSize)
		if err != nil {
			return err
		}
		if err := os.WriteFile(labelOut, png, 0o644); err != nil {
			return fmt.Errorf("write %q: %w", labelOut, err)
		}

		log.Info().Str("client", order.ClientName).Str("out", labelOut).Msg("label written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(labelCmd)

	labelCmd.Flags().StringVar(&labelPayload, "payload", "", "QR payload JSON file (required)")
	labelCmd.Flags().StringVar(&labelOut, "out", "label.png", "output PNG path")
	labelCmd.Flags().IntVar(&labelSize, "size", intake.DefaultLabelSize, "label size in pixels")
	_ = labelCmd.MarkFlagRequired("payload")
}
