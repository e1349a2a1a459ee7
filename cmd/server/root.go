package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"heartsupport/internal/config"
	"heartsupport/internal/db"
	"heartsupport/internal/handlers"
	"heartsupport/internal/logging"
	"heartsupport/internal/utils"
)

const (
	envFileFlag  = "env-file"
	portFlag     = "port"
	logLevelFlag = "log-level"
)

// commonFlags are persistent on the root command and shared by every
// subcommand. They must be registered exactly once.
var commonFlags = map[string]cobraflags.Flag{
	envFileFlag: &cobraflags.StringFlag{
		Name:       envFileFlag,
		Value:      ".env",
		Usage:      "Path to a .env file (missing file is ignored)",
		Persistent: true,
	},
	portFlag: &cobraflags.StringFlag{
		Name:       portFlag,
		Value:      "",
		Usage:      "HTTP port, overrides PORT",
		Persistent: true,
	},
	logLevelFlag: &cobraflags.StringFlag{
		Name:       logLevelFlag,
		Value:      "",
		Usage:      "Log level (debug, info, warn, error), overrides LOG_LEVEL",
		Persistent: true,
	},
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "heartsupport",
		Short: "HeartSupport community forum server",
		Long: `HeartSupport is a small anonymous support forum with an admin moderation dashboard.

Running without a subcommand starts the HTTP server.`,
		SilenceUsage: true,
		RunE:         serveCommand,
	}
	cobraflags.RegisterMap(rootCmd, commonFlags)

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newInitDBCommand())
	return rootCmd
}

func newServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  serveCommand,
	}
	return serveCmd
}

func newInitDBCommand() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create tables and seed sample data when the database is empty",
		RunE:  initDBCommand,
	}
	return initCmd
}

// loadConfig reads the configuration, applies flag overrides and installs
// the process logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(commonFlags[envFileFlag].GetString())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if p := commonFlags[portFlag].GetString(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --port %q", p)
		}
		cfg.Port = port
	}
	if lvl := commonFlags[logLevelFlag].GetString(); lvl != "" {
		cfg.LogLevel = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	cfg.WarnInsecureDefaults(logger)
	return cfg, logger, nil
}

// initializer migrates the schema and seeds the admin with the configured
// credentials.
func initializer(gdb *gorm.DB, cfg *config.Config, verifier *utils.BcryptVerifier) handlers.Initializer {
	return func(ctx context.Context) (bool, error) {
		hash, err := verifier.Hash(cfg.AdminPassword)
		if err != nil {
			return false, fmt.Errorf("hash admin password: %w", err)
		}
		return db.Init(ctx, gdb, db.SeedOptions{
			AdminEmail:        cfg.AdminEmail,
			AdminPasswordHash: hash,
		})
	}
}

func initDBCommand(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}

	seeded, err := initializer(gdb, cfg, utils.NewBcryptVerifier(cfg.BcryptCost))(cmd.Context())
	if err != nil {
		return err
	}
	logger.Info("database initialized", "seeded", seeded)
	return nil
}
