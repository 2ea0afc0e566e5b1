package collector

import (
	"context"

	"DebtSentinel/internal/model"
)

// Source defines the interface for loading the current debt snapshot.
type Source interface {
	FetchDebts(ctx context.Context) ([]model.Debt, error)
	Name() string
}
