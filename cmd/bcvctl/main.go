// bcvctl inspects the BCV rates configuration from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"bcvrates-service/internal/bootstrap"
	"bcvrates-service/internal/config"
	"bcvrates-service/internal/domain"
	"bcvrates-service/internal/infrastructure/codec"
	"bcvrates-service/internal/infrastructure/provider"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "time/tzdata"
)

var (
	cfg config.Config
	loc *time.Location
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "bcvctl",
	Short:         "Inspect BCV rate extraction, history and schedule",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg = bootstrap.ProvideConfig()
		if tz, _ := cmd.Flags().GetString("timezone"); tz != "" {
			cfg.Timezone = tz
		}
		var err error
		loc, err = bootstrap.ProvideLocation(cfg)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().String("timezone", "", "override TIMEZONE")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(historialCmd)
	rootCmd.AddCommand(nextCmd)
}

// --- Fetch Command ---

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run one extraction and print the snapshot",
	Long:  "Runs the configured extractor once. Neither the cache nor the history is written.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if p, _ := cmd.Flags().GetString("provider"); p != "" {
			cfg.Provider = p
		}
		ex, err := bootstrap.ProvideExtractor(cfg, loc)
		if err != nil {
			return err
		}
		snap, err := ex.Extract(cmd.Context())
		if err == nil {
			err = snap.Validate()
		}
		if err != nil {
			return fmt.Errorf("fetch: %w", err)
		}
		if snap.FetchedAt.IsZero() {
			snap.FetchedAt = time.Now()
		}
		if snap.SourceTimestamp == "" {
			snap.SourceTimestamp = domain.FormatLocal(snap.FetchedAt, loc)
		}
		if snap.Source == "" {
			snap.Source = domain.SourceName
		}
		return printJSON(cmd, provider.StaticDocument{
			Fuente:             snap.Source,
			FechaActualizacion: snap.SourceTimestamp,
			TasaDolar:          snap.USD,
			TasaEuro:           snap.EUR,
		})
	},
}

func init() {
	fetchCmd.Flags().String("provider", "", "override PROVIDER (bcv, static, fake)")
}

// --- Historial Command ---

var historialCmd = &cobra.Command{
	Use:   "historial",
	Short: "Print the recorded daily history",
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, cleanup, err := bootstrap.ProvideHistorial(cmd.Context(), zap.NewNop(), cfg, loc)
		if err != nil {
			return err
		}
		defer cleanup()
		entries, err := storage.History.All(cmd.Context())
		if err != nil {
			return fmt.Errorf("historial: %w", err)
		}
		return printJSON(cmd, codec.FromEntries(entries, loc))
	},
}

// --- Next Command ---

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the next scheduled refresh instant",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		if at, _ := cmd.Flags().GetString("from"); at != "" {
			t, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			now = t
		}
		next := bootstrap.ProvideSchedule(cfg, loc).Next(now)
		fmt.Fprintf(cmd.OutOrStdout(), "%s (in %s)\n", next.Format(time.RFC3339), next.Sub(now).Round(time.Second))
		return nil
	},
}

func init() {
	nextCmd.Flags().String("from", "", "reference instant in RFC3339 (default: now)")
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
