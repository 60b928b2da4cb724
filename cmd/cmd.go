// Package cmd defines the command-line interface for dealsense.
package cmd

import (
	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(dormancyCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(reversalCmd)
	rootCmd.AddCommand(outcomeCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(analysisCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the outcome subcommands to the parent outcome command
	outcomeCmd.AddCommand(outcomeRecordCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("now", "", "Clock override for the engine in RFC3339 or time ago")
	rootCmd.PersistentFlags().String("analysis-backend", string(schema.NoneBackend), "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("publish-brokers", "", "Comma-separated Kafka brokers for the decision stream (empty disables publishing)")
	rootCmd.PersistentFlags().String("publish-topic", contract.DefaultTopic, "Kafka topic for the decision stream")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scoreCmd to Viper
	scoreCmd.Flags().String("routing-override", "", "EAR routing thresholds (format: 'sales:70,nurture:40')")
	if err := viper.BindPFlags(scoreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding score flags", err)
	}

	// outcome record flags are read directly, not through Viper
	outcomeRecordCmd.Flags().String("outcome", "", "Outcome kind: reopened or won or lost_again or no_response")
	outcomeRecordCmd.Flags().String("strategy", "", "Strategy that was used for the attempt")
	outcomeRecordCmd.Flags().Float64("revenue", 0, "Revenue recovered by the attempt")
	outcomeRecordCmd.Flags().String("notes", "", "Free-form notes")
	outcomeRecordCmd.Flags().String("id", "", "Outcome ID (generated when empty)")
	_ = outcomeRecordCmd.MarkFlagRequired("outcome")

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultServeAddr, "Address for the HTTP decision API")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
