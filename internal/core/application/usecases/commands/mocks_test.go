package commands_test

import (
	"context"

	"butler/internal/core/domain/model/robot"

	"github.com/stretchr/testify/mock"
)

type MockOrderBook struct{ mock.Mock }

func (m *MockOrderBook) PlaceOrders(tables []string) ([]string, error) {
	args := m.Called(tables)
	added, _ := args.Get(0).([]string)
	return added, args.Error(1)
}

func (m *MockOrderBook) AddOrders(tables []string) ([]string, error) {
	args := m.Called(tables)
	added, _ := args.Get(0).([]string)
	return added, args.Error(1)
}

func (m *MockOrderBook) RemoveOrders(tables []string) ([]string, bool) {
	args := m.Called(tables)
	removed, _ := args.Get(0).([]string)
	return removed, args.Bool(1)
}

type MockCycleStarter struct{ mock.Mock }

func (m *MockCycleStarter) StartCycle(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCanceler struct{ mock.Mock }

func (m *MockCanceler) RequestCancel(ctx context.Context, reason robot.CancelReason) error {
	args := m.Called(ctx, reason)
	return args.Error(0)
}

// tableResolver knows table1..table3.
type tableResolver struct{}

func (tableResolver) ResolveTable(id string) (string, bool) {
	switch id {
	case "1", "2", "3":
		return "table" + id, true
	default:
		return "", false
	}
}
