package sheets

import (
	"context"

	"hogar/internal/core"
)

// Ports for outbound adapters.
type (
	// ExpenseMirror rewrites the expense tab to match the given list.
	ExpenseMirror interface {
		MirrorExpenses(ctx context.Context, expenses []core.Expense) (ref string, err error)
	}

	// HistoryMirror rewrites the redemption history tab to match the
	// given list.
	HistoryMirror interface {
		MirrorHistory(ctx context.Context, records []core.RedemptionRecord) (ref string, err error)
	}
)
