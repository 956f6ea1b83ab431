package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"delivery-route-sequencer/internal/adapters/gps"
	"delivery-route-sequencer/internal/api/dto"
	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/intake"
	"delivery-route-sequencer/internal/services"

	"github.com/spf13/cobra"
)

var (
	planOrders  string
	planLat     float64
	planLng     float64
	planNMEA    string
	planGeoJSON bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Sequence a payload file from a starting position",
	Long: `Sequence the orders of a QR payload file with the nearest-neighbor heuristic.
Only payloads carrying LAT/LNG are routed; the rest are reported as excluded.`,
	Example: `  routectl plan --orders today.json --lat -12.0464 --lng -77.0428
  routectl plan --orders today.json --nmea '$GPRMC,...' --geojson`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planOrders, "orders", "", "JSON array of QR payloads (required)")
	planCmd.Flags().Float64Var(&planLat, "lat", 0, "origin latitude")
	planCmd.Flags().Float64Var(&planLng, "lng", 0, "origin longitude")
	planCmd.Flags().StringVar(&planNMEA, "nmea", "", "origin as an NMEA GGA/RMC sentence")
	planCmd.Flags().BoolVar(&planGeoJSON, "geojson", false, "print a GeoJSON overlay instead of a table")
	_ = planCmd.MarkFlagRequired("orders")
	planCmd.MarkFlagsMutuallyExclusive("nmea", "lat")
	planCmd.MarkFlagsMutuallyExclusive("nmea", "lng")
	planCmd.MarkFlagsRequiredTogether("lat", "lng")
}

func runPlan(cmd *cobra.Command, args []string) error {
	origin, err := planOrigin(cmd)
	if err != nil {
		return err
	}

	orders, err := readPayloads(planOrders)
	if err != nil {
		return err
	}

	res, err := services.BuildRoute(origin, orders, cfg.Policy)
	if err != nil {
		return err
	}

	plan := &services.RoutePlan{
		Sequence: res.Sequence,
		Metrics:  res.Metrics,
		Path:     res.Sequence.Points(),
	}
	for _, o := range res.Excluded {
		plan.Excluded = append(plan.Excluded, o.ID)
	}

	out := cmd.OutOrStdout()
	if planGeoJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.NewRouteOverlay(plan))
	}
	return printPlan(out, plan, res.Excluded)
}

func planOrigin(cmd *cobra.Command) (domain.GeoPoint, error) {
	if planNMEA != "" {
		return gps.ParseFix(planNMEA)
	}
	if !cmd.Flags().Changed("lat") {
		return domain.GeoPoint{}, errors.New("origin required: use --lat/--lng or --nmea")
	}
	return domain.GeoPoint{Latitude: planLat, Longitude: planLng}, nil
}

func readPayloads(path string) ([]*domain.Order, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}

	orders := make([]*domain.Order, 0, len(raws))
	for i, raw := range raws {
		o, err := intake.ParsePayload(raw)
		if err != nil {
			return nil, fmt.Errorf("payload #%d: %w", i+1, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func printPlan(out io.Writer, plan *services.RoutePlan, excluded []*domain.Order) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tCLIENT\tADDRESS\tDISTRICT\tLAT\tLNG")
	for i, s := range plan.Sequence.Stops {
		name, addr := s.ClientName, s.Address
		if s.Origin {
			name, addr = "(start)", ""
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.6f\t%.6f\n",
			i, name, addr, s.District, s.Location.Latitude, s.Location.Longitude)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	m := plan.Metrics
	fmt.Fprintf(out, "\nstops: %d  distance: %.2f km  estimated: %.0f min\n",
		m.StopCount, m.TotalDistanceKm, m.EstimatedMinutes)
	if len(excluded) > 0 {
		fmt.Fprintf(out, "excluded (no coordinates): %d\n", len(excluded))
		for _, o := range excluded {
			fmt.Fprintf(out, "  - %s, %s (%s)\n", o.ClientName, o.Address, o.District)
		}
	}
	return nil
}
