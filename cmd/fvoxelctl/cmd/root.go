package cmd

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	metricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "fvoxelctl",
	Short: "Inspect and drive fVoxel worlds from the command line",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default fvoxelctl.yaml in the current directory)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address for the duration of the command")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(fillCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fvoxelctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("FVOXEL")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// startMetricsServer starts a background HTTP server exposing Prometheus
// metrics, returning the registerer to install into a World and a shutdown
// function, or a nil registerer and a no-op shutdown function if
// --metrics-addr was not set.
func startMetricsServer() (prometheus.Registerer, func()) {
	if metricsAddr == "" {
		return nil, func() {}
	}

	registry := prometheus.NewRegistry()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()

	return registry, func() { _ = srv.Close() }
}
