package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/graeme-hill/derivstuff-go/lib"
	"github.com/spf13/cobra"
)

func main() {
	cfg := lib.ConfigFromEnv()
	addFlags := func(cmd *cobra.Command) error {
		cmd.PersistentFlags().Bool("debug", false, "log debugging information")
		cmd.PersistentFlags().Bool("log-with-shortfile", false, "log with short file name")
		cmd.PersistentFlags().Bool("log-with-timestamp", false, "log with timestamp")
		cmd.PersistentFlags().StringVar(&cfg.Driver, "driver", cfg.Driver, "store driver (sqlite or postgres)")
		cmd.PersistentFlags().StringVar(&cfg.DSN, "dsn", cfg.DSN, "store data source name")
		return nil
	}
	var cmdRoot = &cobra.Command{
		Use:   "derivstuff",
		Short: "derivative cache administration",
		Long:  `derivstuff manages the store of precomputed derivatives.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logWithShortFileName, _ := cmd.Flags().GetBool("log-with-shortfile")
			logWithTimestamp, _ := cmd.Flags().GetBool("log-with-timestamp")
			logFlags := 0
			if logWithShortFileName {
				logFlags |= log.Lshortfile
			}
			if logWithTimestamp {
				logFlags |= log.Ltime
			}
			log.SetFlags(logFlags)
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			return nil
		},
	}
	cmdRoot.AddCommand(cmdMigrate(&cfg))
	cmdRoot.AddCommand(cmdWarm(&cfg))
	cmdRoot.AddCommand(cmdVersion())
	if err := addFlags(cmdRoot); err != nil {
		log.Fatal(err)
	}

	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

func cmdMigrate(cfg *lib.StoreConfig) *cobra.Command {
	var down bool
	var cmd = &cobra.Command{
		Use:   "migrate",
		Short: "apply (or revert) store migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			storeCfg := *cfg
			storeCfg.InitSchema = false
			store, err := lib.OpenStore(ctx, storeCfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if !down {
				if err := store.Migrate(ctx); err != nil {
					return err
				}
				log.Printf("migrate: store is up to date\n")
				return nil
			}

			migrations, err := lib.EmbeddedMigrations()
			if err != nil {
				return err
			}
			name, err := lib.RevertLastMigration(ctx, store.DB(), store.Driver(), migrations)
			if err != nil {
				return err
			}
			if name == "" {
				log.Printf("migrate: nothing to revert\n")
			} else {
				log.Printf("migrate: reverted %s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "revert the most recent migration")
	return cmd
}

func cmdWarm(cfg *lib.StoreConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "warm <dir>",
		Short: "differentiate every expression file in dir into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			engine := lib.NewEngine(lib.WithLogger(slog.Default()))
			batches, err := lib.ReadBatchesFromDir(args[0], engine)
			if err != nil {
				return err
			}

			storeCfg := *cfg
			storeCfg.InitSchema = true
			store, err := lib.OpenStore(ctx, storeCfg)
			if err != nil {
				return err
			}
			defer store.Close()

			stored, err := lib.NewCachedEngine(engine, store).Warm(ctx, batches)
			if err != nil {
				return err
			}
			stats, err := store.Stats(ctx)
			if err != nil {
				return err
			}
			log.Printf("warm: stored %d derivatives from %d files (%d cached)\n", stored, len(batches), stats.Expressions)
			return nil
		},
	}
	return cmd
}

func cmdVersion() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s\n", lib.Version().Core())
		},
	}
	return cmd
}
