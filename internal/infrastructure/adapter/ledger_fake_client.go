package adapter

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// FakeLedgerClient keeps balances in memory. It backs development setups and
// tests where the real ledger service is not running.
type FakeLedgerClient struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
}

// NewFakeLedgerClient creates an empty in-memory ledger.
func NewFakeLedgerClient() *FakeLedgerClient {
	return &FakeLedgerClient{balances: make(map[string]decimal.Decimal)}
}

// IncreaseBalance implements port.LedgerClient.
func (c *FakeLedgerClient) IncreaseBalance(_ context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.balances[userID].Add(amount)
	c.balances[userID] = next
	return next, nil
}

// Balance returns the current balance for a user.
func (c *FakeLedgerClient) Balance(userID string) decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balances[userID]
}
