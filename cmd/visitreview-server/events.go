package main

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehr/visitreview/internal/domain/review"
	"github.com/ehr/visitreview/internal/platform/websocket"
)

// sessionTopic is the hub topic a front-end subscribes to for one review
// session.
func sessionTopic(id uuid.UUID) string {
	return "review-session:" + id.String()
}

// hubEmitters routes every review session's events to its hub topic and to
// the log.
func hubEmitters(pub websocket.Publisher, logger zerolog.Logger) review.EmitterFactory {
	return func(id uuid.UUID) review.Emitter {
		topic := sessionTopic(id)
		return review.Emitters{
			review.EmitterFunc(func(e review.Event) {
				logger.Info().
					Str("session_id", id.String()).
					Str("visit_id", e.VisitID).
					Str("event", string(e.Type)).
					Str("section", string(e.Section)).
					Msg("review event")
			}),
			review.EmitterFunc(func(e review.Event) {
				data, err := json.Marshal(e)
				if err != nil {
					logger.Error().Err(err).Str("event", string(e.Type)).Msg("marshal review event")
					return
				}
				err = pub.Publish(context.Background(), websocket.Event{
					Type:      string(e.Type),
					Topic:     topic,
					Timestamp: e.At,
					Data:      data,
				})
				if err != nil {
					logger.Error().Err(err).Str("event", string(e.Type)).Str("topic", topic).Msg("publish review event")
				}
			}),
		}
	}
}
