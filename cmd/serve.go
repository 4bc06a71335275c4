package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fernwald/rtcgate/internal/api"
	"github.com/fernwald/rtcgate/internal/audit"
	"github.com/fernwald/rtcgate/internal/config"
	"github.com/fernwald/rtcgate/internal/core"
	"github.com/fernwald/rtcgate/internal/identity"
	"github.com/fernwald/rtcgate/internal/policy"
	"github.com/fernwald/rtcgate/internal/service"
	"github.com/fernwald/rtcgate/internal/signer"
)

var serveConfigFile string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the rtcgate server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		cfg, err := config.Load(serveConfigFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		log.Info().Str("type", cfg.Identity.Type).Msg("Initializing identity verifier...")
		verifier, err := identity.Build(cmd.Context(), cfg.Identity)
		if err != nil {
			return fmt.Errorf("building identity verifier: %w", err)
		}

		auditor, err := audit.Build(cfg.Audit)
		if err != nil {
			return fmt.Errorf("building auditor: %w", err)
		}
		defer func() {
			_ = auditor.Close()
		}()

		// without app credentials the server still starts, but every
		// credential request fails with a configuration error
		var tokenSigner core.Signer
		if cfg.App.ID != "" && cfg.App.Certificate != "" {
			s, err := signer.New(cfg.App.ID, cfg.App.Certificate)
			if err != nil {
				return fmt.Errorf("building signer: %w", err)
			}
			tokenSigner = s
		} else {
			log.Error().Msg("app id / certificate not configured, credential requests will fail")
		}

		eng := policy.New(cfg.Rules)
		svc := service.NewCredentialService(verifier, tokenSigner, eng, auditor, cfg.App.TokenTTL)
		srv := api.NewServer(verifier, svc, auditor, cfg.CORS.AllowedOrigins)

		server := &http.Server{
			Addr:    addr,
			Handler: srv.Routes(),
		}

		go func() {
			log.Info().Msgf("Starting server on %s...", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "address to listen on")
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "f", "rtcgate.yaml", "server configuration file")
}
