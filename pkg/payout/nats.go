package payout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wavesplatform/gomint/pkg/escrow"
	"github.com/wavesplatform/gomint/pkg/proto"
)

const (
	Subject        = "gomint.payouts"
	TimeoutDefault = 5 * time.Second

	replyOK = "ok"
)

type Request struct {
	To     proto.Address `json:"to"`
	Amount proto.Amount  `json:"amount"`
}

// NATSTransferer requests payouts from a remote payer. Only the reply "ok" confirms the payout.
// Any other reply and a request nobody received are rejections. A request left without a reply
// is reported as unconfirmed.
type NATSTransferer struct {
	nc      *nats.Conn
	subject string
	timeout time.Duration
}

func NewNATSTransferer(nc *nats.Conn, timeout time.Duration) *NATSTransferer {
	if timeout <= 0 {
		timeout = TimeoutDefault
	}
	return &NATSTransferer{nc: nc, subject: Subject, timeout: timeout}
}

func (t *NATSTransferer) Transfer(ctx context.Context, to proto.Address, amount proto.Amount) error {
	data, err := json.Marshal(Request{To: to, Amount: amount})
	if err != nil {
		return errors.Wrap(err, "failed to encode payout request")
	}
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	msg, err := t.nc.RequestWithContext(ctx, t.subject, data)
	if err != nil {
		err = errors.Wrapf(err, "payout request on subject %s failed", t.subject)
		if delivered(err) {
			// The payer may have paid and failed to reply in time.
			return escrow.Unconfirmed(err)
		}
		return err
	}
	if reply := string(msg.Data); reply != replyOK {
		return errors.Errorf("payout rejected: %s", reply)
	}
	return nil
}

// delivered reports whether a failed request may have reached a payer.
func delivered(err error) bool {
	switch {
	case errors.Is(err, nats.ErrNoResponders),
		errors.Is(err, nats.ErrConnectionClosed),
		errors.Is(err, nats.ErrInvalidConnection),
		errors.Is(err, nats.ErrInvalidContext):
		return false
	default:
		return true
	}
}

// Serve answers payout requests by transferring through the transferer. Rejections are replied
// with the error text.
func Serve(nc *nats.Conn, tr escrow.Transferer, logger *zap.Logger) (*nats.Subscription, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return nc.Subscribe(Subject, func(m *nats.Msg) {
		reply := replyOK
		var req Request
		if err := json.Unmarshal(m.Data, &req); err != nil {
			reply = "malformed request: " + err.Error()
		} else if err := tr.Transfer(context.Background(), req.To, req.Amount); err != nil {
			reply = err.Error()
		}
		if reply != replyOK {
			logger.Warn("Payout rejected", zap.String("reason", reply))
		}
		if err := m.Respond([]byte(reply)); err != nil {
			logger.Error("Failed to respond to payout request", zap.Error(err))
		}
	})
}
