package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/internal/iocache"
	"github.com/huangsam/dealsense/schema"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resolveAnalysisBackend reads and validates the analysis backend settings.
func resolveAnalysisBackend() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("analysis-backend")))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", eris.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("analysis-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// analysisSetup loads minimal configuration needed for analysis operations.
// This is used by commands that need analysis access without full shared setup.
func analysisSetup() error {
	backend, connStr, err := resolveAnalysisBackend()
	if err != nil {
		return err
	}
	if _, err := contract.InitLogger(viper.GetString("log-level"), viper.GetBool("log-json")); err != nil {
		return err
	}

	// No decision stream for analysis commands
	if err := iocache.InitStores(backend, connStr, nil, ""); err != nil {
		return eris.Wrap(err, "failed to initialize analysis")
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// analysisSetupWrapper wraps analysisSetup to provide PreRunE for analysis commands.
func analysisSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisSetup()
}

// analysisMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func analysisMigrateSetup() error {
	backend, connStr, err := resolveAnalysisBackend()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetAnalysisDBFilePath()
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	return nil
}

// analysisMigrateSetupWrapper wraps analysisMigrateSetup to provide PreRunE for migrate command.
func analysisMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisMigrateSetup()
}

// requireAnalysisStore returns the configured store or exits when tracking is disabled.
func requireAnalysisStore() contract.AnalysisStore {
	store := storeManager.GetAnalysisStore()
	if store == nil {
		fatal("Analysis tracking is disabled", eris.New("set --analysis-backend to sqlite, mysql or postgresql"))
	}
	return store
}

// analysisCmd focused on analysis data management.
//
// Note: Analysis subcommands use minimal initialization (analysisSetup) instead of
// the full sharedSetup used by the decision commands. This avoids engine config
// processing for simple data management operations.
var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage decision tracking and exports",
	Long: `Manage the decision history stored by the analysis backend.

When enabled, Dealsense tracks every decision run, storing:
- Run metadata (pipeline, timestamps, engine configuration, failures)
- Every decision with its label, reason, scores and full JSON result
- Reversal outcomes recorded as feedback

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  dealsense analysis status --analysis-backend sqlite

  # Export for analysis in pandas/DuckDB
  dealsense analysis export --analysis-backend sqlite --output-file decisions`,
}

// analysisClearCmd clears the analysis data.
var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all decision tracking data",
	Long: `Drop every decision run, decision and reversal outcome.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  dealsense analysis export --analysis-backend sqlite --output-file backup
  dealsense analysis clear --analysis-backend sqlite`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Release the store's handle before dropping its tables
		iocache.CloseStores()
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
			fatal("Failed to clear analysis data", err)
		}
		fmt.Println("Analysis data cleared successfully.")
	},
}

// analysisStatusCmd shows analysis status.
var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display decision tracking statistics and connection details",
	Long: `Show detailed information about decision tracking.

Displays:
- Backend type and connection status
- Total number of decision runs stored
- Last and oldest run timestamps
- Total decisions and outcomes
- Database table sizes

Examples:
  # Check tracking status
  dealsense analysis status --analysis-backend sqlite`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := requireAnalysisStore().GetStatus()
		if err != nil {
			fatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(status)
	},
}

// analysisExportCmd exports analysis data to Parquet files.
var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export decision history to Parquet for BI tools and analytics",
	Long: `Export all stored decision data to Parquet format.

Writes three files next to the given prefix:
- <prefix>.decision_runs.parquet
- <prefix>.decisions.parquet
- <prefix>.reversal_outcomes.parquet

Requires: --output-file parameter

Examples:
  # Export all data
  dealsense analysis export --analysis-backend sqlite --output-file dealsense

  # Query with DuckDB
  duckdb -c "SELECT label, count(*) FROM read_parquet('dealsense.decisions.parquet') GROUP BY label"`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteAnalysisExport(storeManager.GetAnalysisStore(), cfg.OutputFile); err != nil {
			fatal("Failed to export analysis data", err)
		}
	},
}

// analysisMigrateCmd runs database migrations for the analysis store.
var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the decision tracking store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  dealsense analysis migrate --analysis-backend postgresql --analysis-db-connect "host=localhost dbname=dealsense"

  # Migrate to specific version
  dealsense analysis migrate --analysis-backend sqlite --target-version 1

  # Rollback to initial state
  dealsense analysis migrate --analysis-backend sqlite --target-version 0`,
	PreRunE: analysisMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateAnalysis(cfg.AnalysisBackend, cfg.AnalysisDBConnect, targetVersion); err != nil {
			fatal("Failed to run migrations", err)
		}
	},
}
