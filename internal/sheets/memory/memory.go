package memory

import (
	"context"
	"fmt"
	"sync"

	"hogar/internal/core"
)

// Mirror is an in-memory stand-in for the spreadsheet adapters.
type Mirror struct {
	mu       sync.Mutex
	expenses []core.Expense
	history  []core.RedemptionRecord
	passes   int
}

func New() *Mirror {
	return &Mirror{}
}

func (m *Mirror) MirrorExpenses(_ context.Context, expenses []core.Expense) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses = append([]core.Expense(nil), expenses...)
	m.passes++
	return fmt.Sprintf("mem:expenses:%d", m.passes), nil
}

func (m *Mirror) MirrorHistory(_ context.Context, records []core.RedemptionRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append([]core.RedemptionRecord(nil), records...)
	m.passes++
	return fmt.Sprintf("mem:history:%d", m.passes), nil
}

// Expenses returns the last mirrored expense list.
func (m *Mirror) Expenses() []core.Expense {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Expense(nil), m.expenses...)
}

// History returns the last mirrored redemption list.
func (m *Mirror) History() []core.RedemptionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.RedemptionRecord(nil), m.history...)
}

// Passes returns how many mirror writes have happened.
func (m *Mirror) Passes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.passes
}
