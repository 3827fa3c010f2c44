package paymentgateway

import (
	"context"
	"fmt"
)

const CaptureStatusCompleted = "COMPLETED"

type CreateOrderInput struct {
	Amount      int64
	Currency    string
	Description string
}

type CreateOrderResult struct {
	OrderID     string
	ApprovalURL string
}

type CaptureResult struct {
	Status string
}

func (r CaptureResult) Completed() bool {
	return r.Status == CaptureStatusCompleted
}

// Adapter normalizes a payment gateway behind create and capture operations.
type Adapter interface {
	Name() string
	CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}

// Factory resolves the adapter for a gateway name.
type Factory struct {
	adapters map[string]Adapter
}

func CreateFactory(adapters ...Adapter) *Factory {
	factory := &Factory{
		adapters: make(map[string]Adapter),
	}
	for _, adapter := range adapters {
		factory.adapters[adapter.Name()] = adapter
	}
	return factory
}

func (f *Factory) Get(name string) (Adapter, error) {
	adapter, exists := f.adapters[name]
	if !exists {
		return nil, fmt.Errorf("no payment gateway configured with name: %s", name)
	}
	return adapter, nil
}
