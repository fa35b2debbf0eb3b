package cli

import (
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskchat/internal/interpreter"
	"taskchat/internal/server"
	"taskchat/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat HTTP API",
		Run:   runServe,
	}
	cmd.Flags().String("listen", "", "Bind address (default from config, :8080)")
	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Listen = listen
	}

	log := newLogger(cfg.Debug)
	defer log.Sync()

	s, err := store.NewSQLiteStore(expandPath(cfg.DBPath))
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	srv := server.New(interpreter.New(s, log), log)

	log.Info("listening",
		zap.String("addr", cfg.Listen),
		zap.String("db", cfg.DBPath))
	if err := http.ListenAndServe(cfg.Listen, srv.Handler(cfg.AllowedOrigins)); err != nil {
		exitErr("serve", err)
	}
}
