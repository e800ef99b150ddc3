// Package broadcast republishes ledger events to NATS subjects.
package broadcast

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/wavesplatform/gomint/pkg/events"
)

const SubjectPrefix = "gomint.events."

func Subject(kind events.Kind) string {
	return SubjectPrefix + string(kind)
}

// Publisher sends every delivered event as a JSON envelope to the subject of its kind.
type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

func NewPublisher(nc *nats.Conn, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{nc: nc, logger: logger}
}

// Attach subscribes the publisher to all events of the feed.
func (p *Publisher) Attach(feed *events.Feed) error {
	return feed.SubscribeAll(p.Handle)
}

func (p *Publisher) Handle(env events.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		p.logger.Error("Failed to encode event", zap.Uint64("seq", env.Seq), zap.Error(err))
		return
	}
	subject := Subject(env.Event.Kind())
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
