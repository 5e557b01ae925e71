package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/scott198989/securepoint-sub000/internal/config"
	"github.com/scott198989/securepoint-sub000/internal/logging"
	"github.com/scott198989/securepoint-sub000/internal/output"
	"github.com/scott198989/securepoint-sub000/internal/server"
	"github.com/scott198989/securepoint-sub000/internal/store"
	"github.com/scott198989/securepoint-sub000/internal/tui"
	"github.com/scott198989/securepoint-sub000/internal/wizard"
	"github.com/spf13/cobra"
)

// openStore connects the session store named by the settings. The returned
// close function is never nil.
func openStore(ctx context.Context, s *config.Settings) (store.Store, func() error, error) {
	switch s.Store.Backend {
	case config.BackendRedis:
		rs, err := store.NewRedisStore(ctx, store.RedisOptions{
			Addr:     s.Store.Redis.Addr,
			Password: s.Store.Redis.Password,
			DB:       s.Store.Redis.DB,
			Prefix:   s.Store.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return rs, rs.Close, nil
	case config.BackendSQLite:
		ss, err := store.OpenSQLite(ctx, s.Store.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return ss, ss.Close, nil
	default:
		return store.NewMemoryStore(), func() error { return nil }, nil
	}
}

// newService builds the wizard service over the configured rules and store
func newService(ctx context.Context, cmd *cobra.Command, s *config.Settings, logger logging.Logger) (*wizard.Service, func() error, error) {
	bundle, err := loadRules(cmd, s.Rules.File)
	if err != nil {
		return nil, nil, err
	}
	st, closeStore, err := openStore(ctx, s)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", s.Store.Backend, err)
	}
	engine := bundle.NewEngine()
	engine.SetLogger(logger)
	svc := wizard.NewService(st, engine, bundle.Wizards...)
	svc.SetLogger(logger)
	return svc, closeStore, nil
}

func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	file, _ := cmd.Flags().GetString("config")
	s, err := config.LoadSettings(file)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("port") {
		s.Server.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("store") {
		s.Store.Backend, _ = cmd.Flags().GetString("store")
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		s.Log.Level = "debug"
	}
	return s, s.Validate()
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serves the questionnaire sessions, assessments and calculators over HTTP.

Settings come from milpay.yaml (or --config), then MILPAY_* environment variables,
for example MILPAY_STORE_BACKEND=redis or MILPAY_SERVER_PORT=9090.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			logger, err := logging.New(settings.Log.Level, settings.Log.Format)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			regulatory, _ := cmd.Flags().GetString("regulatory-config")
			if regulatory == "" {
				regulatory = settings.Regulatory.File
			}
			tables, err := config.LoadTables(regulatory)
			if err != nil {
				return err
			}

			svc, closeStore, err := newService(ctx, cmd, settings, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					logger.Warnf("closing store: %v", err)
				}
			}()

			logger.Infof("store backend %s, %d wizards", settings.Store.Backend, len(svc.Wizards()))
			return server.New(server.Config{
				Addr:    settings.Addr(),
				Service: svc,
				Tables:  tables,
				Logger:  logger,
			}).Run(ctx)
		},
	}
	cmd.Flags().String("config", "", "Settings file (default ./milpay.yaml)")
	cmd.Flags().Int("port", 8080, "Listen port")
	cmd.Flags().String("store", "", "Session store: memory, redis or sqlite")
	return cmd
}

func wizardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wizard [wizard-id]",
		Short: "Answer the eligibility questionnaire in the terminal",
		Long: `Walks through a questionnaire one question at a time and shows the eligibility
result at the end. The result is printed again in --format after the screen closes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Log lines would draw over the alternate screen
			svc, closeStore, err := newService(ctx, cmd, settings, nil)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			configID := "special_pays"
			if len(args) == 1 {
				configID = args[0]
			}
			if _, err := svc.Machine(configID); err != nil {
				return err
			}

			p := tea.NewProgram(
				tui.NewModel(ctx, svc, configID),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
			)
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			if m, ok := final.(tui.Model); ok && m.Result() != nil {
				return render(cmd, output.EligibilityReport(m.Result()))
			}
			return nil
		},
	}
	cmd.Flags().String("config", "", "Settings file (default ./milpay.yaml)")
	cmd.Flags().String("store", "", "Session store: memory, redis or sqlite")
	return cmd
}
