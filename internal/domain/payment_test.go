package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusTerminal(t *testing.T) {
	assert.False(t, PaymentStatusCreated.Terminal())
	assert.False(t, PaymentStatusProcessing.Terminal())
	assert.True(t, PaymentStatusCompleted.Terminal())
	assert.True(t, PaymentStatusFailed.Terminal())
	assert.True(t, PaymentStatusCancelled.Terminal())
}

func TestSubscriptionActive(t *testing.T) {
	sub := Subscription{ExpiresAt: 100}
	assert.True(t, sub.Active(99))
	assert.False(t, sub.Active(100))
	assert.False(t, sub.Active(101))
}
