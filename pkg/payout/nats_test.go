package payout

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavesplatform/gomint/pkg/broadcast"
	"github.com/wavesplatform/gomint/pkg/escrow"
	"github.com/wavesplatform/gomint/pkg/proto"
)

func connect(t *testing.T) *nats.Conn {
	s, err := broadcast.StartEmbeddedServer(broadcast.ServerOptions{Port: server.RANDOM_PORT})
	require.NoError(t, err)
	t.Cleanup(func() {
		broadcast.ShutdownServer(s)
	})
	nc, err := nats.Connect(s.ClientURL())
	require.NoError(t, err)
	t.Cleanup(nc.Close)
	return nc
}

func TestNATSTransferer(t *testing.T) {
	nc := connect(t)
	book := NewBook()
	sub, err := Serve(nc, book, nil)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, sub.Unsubscribe())
	}()
	require.NoError(t, nc.Flush())

	to := payee(t)
	tr := NewNATSTransferer(nc, time.Second)
	require.NoError(t, tr.Transfer(context.Background(), to, 2_000_000))
	assert.Equal(t, proto.Amount(2_000_000), book.Balance(to))

	book.Freeze(to)
	err = tr.Transfer(context.Background(), to, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrAccountFrozen.Error())
	assert.Equal(t, proto.Amount(2_000_000), book.Balance(to))
}

func TestNATSTransfererNoResponders(t *testing.T) {
	nc := connect(t)
	tr := NewNATSTransferer(nc, 200*time.Millisecond)
	err := tr.Transfer(context.Background(), payee(t), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, nats.ErrNoResponders)
	assert.NotErrorIs(t, err, escrow.ErrUnconfirmed)
}

func TestNATSTransfererRejectsUnexpectedReply(t *testing.T) {
	nc := connect(t)
	sub, err := nc.Subscribe(Subject, func(m *nats.Msg) {
		_ = m.Respond([]byte("maybe"))
	})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, sub.Unsubscribe())
	}()
	require.NoError(t, nc.Flush())

	err = NewNATSTransferer(nc, time.Second).Transfer(context.Background(), payee(t), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maybe")
	assert.NotErrorIs(t, err, escrow.ErrUnconfirmed)
}

func TestNATSTransfererLateReply(t *testing.T) {
	nc := connect(t)
	book := NewBook()
	sub, err := nc.Subscribe(Subject, func(m *nats.Msg) {
		var req Request
		if err := json.Unmarshal(m.Data, &req); err != nil {
			_ = m.Respond([]byte(err.Error()))
			return
		}
		if err := book.Transfer(context.Background(), req.To, req.Amount); err != nil {
			_ = m.Respond([]byte(err.Error()))
			return
		}
		time.Sleep(300 * time.Millisecond)
		_ = m.Respond([]byte(replyOK))
	})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, sub.Unsubscribe())
	}()
	require.NoError(t, nc.Flush())

	to := payee(t)
	err = NewNATSTransferer(nc, 100*time.Millisecond).Transfer(context.Background(), to, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, escrow.ErrUnconfirmed)
	assert.Equal(t, proto.Amount(5), book.Balance(to))
}
