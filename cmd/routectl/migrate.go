package main

import (
	"delivery-route-sequencer/internal/adapters/repositories"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the orders and geocode cache tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, dialect, err := openDatabase()
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := repositories.InitSchema(conn, dialect); err != nil {
			return err
		}
		log.Info().Str("db", string(dialect)).Msg("schema ready")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
