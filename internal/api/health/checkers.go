package health

import (
	"context"
	"fmt"
)

// Pinger is implemented by storage backends.
type Pinger interface {
	Ping(ctx context.Context) error
	Backend() string
}

// StorageChecker checks document store connectivity.
type StorageChecker struct {
	store Pinger
}

// NewStorageChecker creates a new storage health checker.
func NewStorageChecker(store Pinger) *StorageChecker {
	return &StorageChecker{store: store}
}

// Name returns "storage".
func (c *StorageChecker) Name() string {
	return "storage"
}

// Describe records the backend ("sqlite" or "mongodb").
func (c *StorageChecker) Describe(report *Report) {
	if c.store != nil {
		report.Storage = c.store.Backend()
	}
}

// Check verifies the store answers a ping.
func (c *StorageChecker) Check(ctx context.Context) error {
	if c.store == nil {
		return fmt.Errorf("storage not configured")
	}
	return c.store.Ping(ctx)
}

// AssistChecker reports which assist provider is answering. It never fails:
// the gateway degrades to templates on its own.
type AssistChecker struct {
	provider func() string
}

// NewAssistChecker creates a checker that reports provider().
func NewAssistChecker(provider func() string) *AssistChecker {
	return &AssistChecker{provider: provider}
}

// Name returns "assist".
func (c *AssistChecker) Name() string {
	return "assist"
}

// Describe records the answering source ("remote" or "template").
func (c *AssistChecker) Describe(report *Report) {
	report.Assist = c.provider()
}

// Check always succeeds.
func (c *AssistChecker) Check(context.Context) error {
	return nil
}
