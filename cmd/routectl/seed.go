package main

import (
	"delivery-route-sequencer/internal/adapters/repositories"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:     "seed",
	Short:   "Load orders from a JSON array of QR payloads",
	Example: `  routectl seed --file data/seeds/orders.json`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := seedFile
		if path == "" {
			path = cfg.SeedPath
		}

		conn, dialect, err := openDatabase()
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := repositories.InitSchema(conn, dialect); err != nil {
			return err
		}

		repo := repositories.NewSQLOrderRepository(conn, dialect)
		n, err := repositories.SeedFromJSON(cmd.Context(), repo, path)
		if err != nil {
			return err
		}
		log.Info().Int("orders", n).Str("path", path).Msg("seeding complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedFile, "file", "", "payload file (default SEED_PATH)")
}
