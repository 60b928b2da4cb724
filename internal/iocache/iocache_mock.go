package iocache

import (
	"context"
	"time"

	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetAnalysisStore implements the StoreManager interface.
func (m *MockStoreManager) GetAnalysisStore() contract.AnalysisStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.AnalysisStore)
	return store
}

// GetPublisher implements the StoreManager interface.
func (m *MockStoreManager) GetPublisher() contract.Publisher {
	ret := m.Called()
	pub, _ := ret.Get(0).(contract.Publisher)
	return pub
}

// MockAnalysisStore is a mock implementation of AnalysisStore for testing.
type MockAnalysisStore struct {
	mock.Mock
}

var _ contract.AnalysisStore = &MockAnalysisStore{} // Compile-time check

// BeginRun implements the AnalysisStore interface.
func (m *MockAnalysisStore) BeginRun(pipeline schema.Pipeline, startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(pipeline, startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the AnalysisStore interface.
func (m *MockAnalysisStore) EndRun(runID int64, endTime time.Time, totalEntities, totalFailed int) error {
	args := m.Called(runID, endTime, totalEntities, totalFailed)
	return args.Error(0)
}

// RecordDecision implements the AnalysisStore interface.
func (m *MockAnalysisStore) RecordDecision(runID int64, record schema.DecisionRecord) error {
	args := m.Called(runID, record)
	return args.Error(0)
}

// RecordOutcome implements the AnalysisStore interface.
func (m *MockAnalysisStore) RecordOutcome(outcome schema.ReversalOutcome) error {
	args := m.Called(outcome)
	return args.Error(0)
}

// GetStatus implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetStatus() (schema.AnalysisStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.AnalysisStatus), args.Error(1)
}

// GetAllRuns implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllRuns() ([]schema.DecisionRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.DecisionRunRecord)
	return runs, args.Error(1)
}

// GetAllDecisions implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllDecisions() ([]schema.DecisionRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.DecisionRecord)
	return records, args.Error(1)
}

// GetAllOutcomes implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllOutcomes() ([]schema.ReversalOutcomeRecord, error) {
	args := m.Called()
	outcomes, _ := args.Get(0).([]schema.ReversalOutcomeRecord)
	return outcomes, args.Error(1)
}

// Close implements the AnalysisStore interface.
func (m *MockAnalysisStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockPublisher is a mock implementation of Publisher for testing.
type MockPublisher struct {
	mock.Mock
}

var _ contract.Publisher = &MockPublisher{} // Compile-time check

// PublishDecisions implements the Publisher interface.
func (m *MockPublisher) PublishDecisions(ctx context.Context, records []schema.DecisionRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

// PublishOutcome implements the Publisher interface.
func (m *MockPublisher) PublishOutcome(ctx context.Context, outcome schema.ReversalOutcome) error {
	args := m.Called(ctx, outcome)
	return args.Error(0)
}

// Close implements the Publisher interface.
func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
