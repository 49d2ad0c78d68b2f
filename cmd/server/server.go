package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"stackforge/cmd/root"
	"stackforge/controllers"
	"stackforge/internal/config"
	"stackforge/internal/logger"
	"stackforge/internal/middleware"
	"stackforge/internal/registry"
	"stackforge/services"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the component status server",
	Long:  "Run the HTTP status server of the generated-application runtime: health endpoints, dashboard and Prometheus metrics.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := startServer(context.Background()); err != nil {
			logger.Fatal(err)
		}
	},
}

func startServer(ctx context.Context) error {
	if config.Config.Server.Mode != "" {
		gin.SetMode(config.Config.Server.Mode)
	}

	reg, err := registry.Load(config.Config.Scaffold.RegistryOverlay)
	if err != nil {
		return fmt.Errorf("failed to load component registry: %w", err)
	}

	system := services.NewSystemService(&config.Config.Health)
	health := services.NewHealthService(system)
	services.RegisterComponentChecks(health, &config.Config)

	router := gin.Default()
	router.Use(middleware.MetricsMiddleware())

	apiController := controllers.NewAPIController(health, reg)
	apiController.RegisterRoutes(router)

	dashboardController := controllers.NewDashboardController(health)
	dashboardController.RegisterRoutes(router)

	// Scheduled health check job
	interval := time.Duration(config.Config.Health.MonitorIntervalSeconds) * time.Second
	monitor := services.NewMonitorService(health, interval)
	go monitor.Start(ctx)

	logger.Infof("Status server listening on %s", config.Config.Server.Address)
	return router.Run(config.Config.Server.Address)
}

func init() {
	root.RootCmd.AddCommand(serverCmd)
}
