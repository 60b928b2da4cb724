// Package iocache is for the decision sinks: the analysis store and the decision stream.
package iocache

import (
	"sync"

	"github.com/huangsam/dealsense/internal/contract"
)

// StoreManagerImpl manages the analysis store and the decision publisher.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the sink pointers during initialization
	analysis     contract.AnalysisStore
	publisher    contract.Publisher
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetAnalysisStore returns the analysis store, or nil when tracking is disabled.
func (mgr *StoreManagerImpl) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}

// GetPublisher returns the decision publisher. It is never nil after InitStores.
func (mgr *StoreManagerImpl) GetPublisher() contract.Publisher {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.publisher
}
