package notify

import (
	"context"
	"fmt"

	"github.com/pusher/pusher-http-go/v5"

	"github.com/iliyamo/cinema-booking/internal/model"
)

// Triggerer is the subset of *pusher.Client used here.
type Triggerer interface {
	Trigger(channel string, eventName string, data interface{}) error
}

// NewPusherClient builds a Pusher REST client. It returns nil when appID or
// key is empty so callers can treat Pusher as optional.
func NewPusherClient(appID, key, secret, cluster string) *pusher.Client {
	if appID == "" || key == "" {
		return nil
	}
	return &pusher.Client{
		AppID:   appID,
		Key:     key,
		Secret:  secret,
		Cluster: cluster,
		Secure:  true,
	}
}

// PusherSink triggers seat events on the per-screening channel
// "screening-<id>".
type PusherSink struct {
	client Triggerer
}

func NewPusherSink(client Triggerer) *PusherSink {
	return &PusherSink{client: client}
}

func (p *PusherSink) Name() string { return "pusher" }

// Send ignores ctx; the Pusher client has its own HTTP timeout.
func (p *PusherSink) Send(_ context.Context, event string, payload model.SeatsChanged) error {
	return p.client.Trigger(ScreeningChannel(payload.ScreeningID), event, payload)
}

// ScreeningChannel names the Pusher channel for a screening.
func ScreeningChannel(screeningID uint64) string {
	return fmt.Sprintf("screening-%d", screeningID)
}
