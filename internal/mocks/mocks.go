// Package mocks holds testify mocks for the collaborator interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pometrix/ledger-export/internal/domain/entity"
	"github.com/pometrix/ledger-export/internal/infrastructure/logger"
)

// MockQuoteSource mocks the QuoteSource interface.
type MockQuoteSource struct {
	mock.Mock
}

func (m *MockQuoteSource) Query(ctx context.Context, date time.Time) (*entity.ExchangeRate, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ExchangeRate), args.Error(1)
}

// MockFileStore mocks the FileStore interface.
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Put(ctx context.Context, name string, content []byte) (string, error) {
	args := m.Called(ctx, name, content)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) ListNames(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockLogger mocks the logger interface.
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) { m.Called(msg, fields) }
func (m *MockLogger) Info(msg string, fields map[string]interface{})  { m.Called(msg, fields) }
func (m *MockLogger) Warn(msg string, fields map[string]interface{})  { m.Called(msg, fields) }
func (m *MockLogger) Error(msg string, fields map[string]interface{}) { m.Called(msg, fields) }
func (m *MockLogger) Fatal(msg string, fields map[string]interface{}) { m.Called(msg, fields) }

// WithField and WithFields return the mock itself so call expectations stay
// attached regardless of context chaining.
func (m *MockLogger) WithField(key string, value interface{}) logger.Logger { return m }

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger { return m }
