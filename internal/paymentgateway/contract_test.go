package paymentgateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedAdapter struct {
	Adapter
	name string
}

func (a namedAdapter) Name() string { return a.name }

func TestFactoryGet(t *testing.T) {
	paypal := namedAdapter{name: "paypal"}
	midtrans := namedAdapter{name: "midtrans"}
	factory := CreateFactory(paypal, midtrans)

	adapter, err := factory.Get("paypal")
	require.NoError(t, err)
	assert.Equal(t, "paypal", adapter.Name())

	adapter, err = factory.Get("midtrans")
	require.NoError(t, err)
	assert.Equal(t, "midtrans", adapter.Name())

	_, err = factory.Get("stripe")
	require.Error(t, err)
}

func TestCaptureResultCompleted(t *testing.T) {
	assert.True(t, CaptureResult{Status: "COMPLETED"}.Completed())
	assert.False(t, CaptureResult{Status: "DECLINED"}.Completed())
	assert.False(t, CaptureResult{}.Completed())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "5.00", formatAmount(500))
	assert.Equal(t, "0.99", formatAmount(99))
	assert.Equal(t, "12.05", formatAmount(1205))
	assert.Equal(t, "0.00", formatAmount(0))
}
