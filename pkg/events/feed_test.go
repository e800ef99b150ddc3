package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wavesplatform/gomint/pkg/proto"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu   sync.Mutex
	envs []Envelope
}

func (r *recorder) handle(e Envelope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.envs = append(r.envs, e)
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.envs)
}

func (r *recorder) seqs() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]uint64, len(r.envs))
	for i, e := range r.envs {
		res[i] = e.Seq
	}
	return res
}

func runFeed(t *testing.T, f *Feed) func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()
	return func() {
		cancel()
		require.NoError(t, <-done)
	}
}

func TestFeedDeliversInOrder(t *testing.T) {
	f := NewFeed(nil)
	issued, all := new(recorder), new(recorder)
	require.NoError(t, f.Subscribe(KindAssetIssued, issued.handle))
	require.NoError(t, f.SubscribeAll(all.handle))
	stop := runFeed(t, f)
	defer stop()

	f.Publish(AssetIssued{ID: 1}, PriceChanged{Price: 5})
	f.Publish()
	f.Publish(AssetIssued{ID: 2}, PausedChanged{Paused: true})

	require.Eventually(t, func() bool { return all.len() == 4 }, time.Second, time.Millisecond)
	assert.Equal(t, []uint64{1, 2, 3, 4}, all.seqs())
	assert.Equal(t, []uint64{1, 3}, issued.seqs())
	assert.Equal(t, AssetIssued{ID: 2}, issued.envs[1].Event)
	assert.Equal(t, 0, f.Pending())
}

func TestFeedDrainsOnStop(t *testing.T) {
	f := NewFeed(nil)
	all := new(recorder)
	require.NoError(t, f.SubscribeAll(all.handle))
	f.Publish(PriceChanged{Price: 1}, PriceChanged{Price: 2}, PriceChanged{Price: 3})
	assert.Equal(t, 3, f.Pending())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, f.Run(ctx))
	assert.Equal(t, []uint64{1, 2, 3}, all.seqs())
}

func TestFeedSurvivesPanickingHandler(t *testing.T) {
	f := NewFeed(nil)
	all := new(recorder)
	require.NoError(t, f.Subscribe(KindWithdrawn, func(Envelope) { panic("boom") }))
	require.NoError(t, f.SubscribeAll(all.handle))
	stop := runFeed(t, f)
	defer stop()

	f.Publish(Withdrawn{Amount: 1}, PausedChanged{Paused: false})
	require.Eventually(t, func() bool { return all.len() == 2 }, time.Second, time.Millisecond)
}

func TestFeedRejectsNilHandler(t *testing.T) {
	f := NewFeed(nil)
	assert.Error(t, f.Subscribe(KindAssetIssued, nil))
	assert.Error(t, f.SubscribeAll(nil))
}

func TestEnvelopeJSON(t *testing.T) {
	owner, err := proto.NewAddressFromString("3NBVqYXrapgJP9atQccdBPAgJPwHDKkh6A8")
	require.NoError(t, err)
	js, err := json.Marshal(Envelope{Seq: 7, Event: AssetIssued{ID: 2, Owner: owner, Metadata: "b2"}})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"seq":7,"kind":"asset_issued","event":{"id":2,"owner":"3NBVqYXrapgJP9atQccdBPAgJPwHDKkh6A8","metadata":"b2"}}`,
		string(js))
}
