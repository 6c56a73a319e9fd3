// Command probe inspects the projection database from an operator shell.
//
// Usage:
//
//	probe ping
//	probe tables
//	probe player-stats 8478402
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/nhl-fa-projections/internal/config"
	"github.com/riskibarqy/nhl-fa-projections/internal/domain/playerstats"
	"github.com/riskibarqy/nhl-fa-projections/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/database"
	"github.com/riskibarqy/nhl-fa-projections/internal/platform/logging"
)

var logger = logging.NewJSON(logging.LevelWarn, "nhl-fa-probe")

func main() {
	_ = godotenv.Load()

	var timeout time.Duration
	root := &cobra.Command{
		Use:           "probe",
		Short:         "Inspect the projection database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "Overall command timeout")
	root.AddCommand(pingCmd(&timeout), tablesCmd(&timeout), playerStatsCmd(&timeout))

	if err := root.Execute(); err != nil {
		logger.Error("probe failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func pingCmd(timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test the connection and print pool state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProvider(*timeout, func(ctx context.Context, db *database.Provider) error {
				connected := db.TestConnection(ctx)
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"success":     connected,
					"dbConnected": connected,
					"pool":        db.Stats(),
					"time":        time.Now().UTC().Format(time.RFC3339),
				})
			})
		},
	}
}

func tablesCmd(timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Describe the projected_contracts and stats tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProvider(*timeout, func(ctx context.Context, db *database.Provider) error {
				tables := make(map[string]database.TableInfo, len(database.ProjectionTables))
				for _, name := range database.ProjectionTables {
					info, err := db.DescribeTable(ctx, name)
					if err != nil {
						return err
					}
					tables[name] = info
				}
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"success": true,
					"tables":  tables,
					"time":    time.Now().UTC().Format(time.RFC3339),
				})
			})
		},
	}
}

func playerStatsCmd(timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "player-stats <player-id>",
		Short: "Dump the stored stats row of one player and its per-season expansion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || playerID <= 0 {
				return errors.Newf("invalid player id %q", args[0])
			}

			return withProvider(*timeout, func(ctx context.Context, db *database.Provider) error {
				repo := postgres.NewPlayerStatsRepository(db)
				exists, err := repo.HasPlayer(ctx, playerID)
				if err != nil {
					return err
				}
				row, _, err := repo.GetWideRow(ctx, playerID)
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), map[string]any{
					"success":      true,
					"playerId":     playerID,
					"playerExists": exists,
					"playerData":   row,
					"stats":        playerstats.ExpandWideRow(row),
					"gar":          playerstats.GarSeries(row),
					"time":         time.Now().UTC().Format(time.RFC3339),
				})
			})
		},
	}
}

func withProvider(timeout time.Duration, fn func(ctx context.Context, db *database.Provider) error) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	db := database.NewProvider(cfg.Database(), logger)
	if !db.Configured() {
		return errors.New("DATABASE_URL or DATABASE_HOST/DATABASE_USER/DATABASE_NAME is required")
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return fn(ctx, db)
}

func printJSON(w io.Writer, v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode output")
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
