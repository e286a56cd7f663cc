package notify

import "github.com/rs/zerolog/log"

// ConsoleSender writes notifications to the log. Used when no SendGrid
// key is configured (local development).
type ConsoleSender struct{}

var _ Sender = ConsoleSender{}

func (ConsoleSender) Send(msg Message) error {
	log.Info().
		Str("recipient", msg.RecipientEmail).
		Str("title", msg.Title).
		Msg("course update notification (console)")
	return nil
}
