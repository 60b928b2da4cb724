package iocache

import (
	"fmt"

	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/internal/publish"
	"github.com/huangsam/dealsense/schema"
	"github.com/rotisserie/eris"
)

// Manager is the global instance shared by every command.
var Manager = &StoreManagerImpl{}

// InitStores initializes the analysis store and the decision publisher.
// The none backend leaves the analysis store unset; no brokers selects a no-op publisher.
func InitStores(backend schema.DatabaseBackend, connStr string, brokers []string, topic string) error {
	Manager.Lock()
	defer Manager.Unlock()

	if backend != schema.NoneBackend && Manager.analysis == nil {
		store, err := NewAnalysisStore(backend, connStr)
		if err != nil {
			return eris.Wrap(err, "failed to initialize analysis store")
		}
		Manager.analysis = store
	}

	if Manager.publisher == nil {
		Manager.publisher = publish.NewPublisher(brokers, topic)
	}
	return nil
}

// CloseStores closes every sink and resets the manager.
func CloseStores() {
	Manager.Lock()
	defer Manager.Unlock()

	if Manager.analysis != nil {
		if err := Manager.analysis.Close(); err != nil {
			contract.LogWarn("Failed to close analysis store", err)
		}
		Manager.analysis = nil
	}
	if Manager.publisher != nil {
		if err := Manager.publisher.Close(); err != nil {
			contract.LogWarn("Failed to close decision publisher", err)
		}
		Manager.publisher = nil
	}
}

// ClearAnalysis drops every decision tracking table for the given backend.
func ClearAnalysis(backend schema.DatabaseBackend, connStr string) error {
	if backend == schema.NoneBackend {
		return nil
	}
	db, _, err := openDatabase(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	for _, table := range analysisTables {
		if err := validateTableName(table); err != nil {
			return err
		}
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return eris.Wrapf(err, "failed to drop table %s", table)
		}
	}
	return nil
}
