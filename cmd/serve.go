package cmd

import (
	"fmt"

	"pitstop/internal/apihandlers"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	serveAddr string // Listen address
	servePort string // Listen port
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chatbot HTTP API",
	Long: `Starts an HTTP server exposing POST /chat, which answers a customer message
using the store's catalog and policies, and GET /health.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		cfg := appInstance.Config

		if cfg.Log.Environment != "" && cfg.Log.Environment != "local" {
			gin.SetMode(gin.ReleaseMode)
		}

		router := apihandlers.NewRouter(apihandlers.NewAPIHandler(appInstance), cfg.Server.CORSOrigins, log.StandardLogger())

		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		listenAddr := fmt.Sprintf("%s:%s", addr, port)
		log.WithFields(log.Fields{
			"addr":     listenAddr,
			"store":    cfg.Store.Name,
			"provider": appInstance.CompletionService.Name(),
			"model":    appInstance.CompletionService.ModelName(),
		}).Info("Starting PitStop API server")

		// router.Run blocks unless an error occurs
		if err := router.Run(listenAddr); err != nil {
			log.Errorf("Failed to run API server: %v", err)
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (overrides server.addr)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides server.port / PORT)")
}
