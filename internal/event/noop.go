package event

import "github.com/rs/zerolog/log"

// NoopPublisher logs instead of publishing. Used by the dev profile when no
// broker is available.
type NoopPublisher struct{}

func CreateNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) Publish(event PaymentEvent) error {
	log.Info().
		Str("payment_id", event.PaymentID).
		Str("pack_id", event.PackID).
		Str("component", "Publish").
		Msg("payment event discarded by noop publisher")
	return nil
}
