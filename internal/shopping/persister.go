package shopping

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/store"
)

// persister writes snapshots from a single goroutine. Snapshots that arrive
// while a write is in flight collapse into the newest one, so the last
// write always carries the latest list.
type persister struct {
	kv  store.KV
	key string
	log *zap.Logger

	mu      sync.Mutex
	latest  Items
	want    uint64        // version of latest
	written uint64        // version last written (or attempted)
	notify  chan struct{} // closed and replaced whenever written advances

	wake    chan struct{}
	stop    chan struct{}
	exited  chan struct{}
	stopped sync.Once
}

func newPersister(kv store.KV, key string, log *zap.Logger) *persister {
	p := &persister{
		kv:     kv,
		key:    key,
		log:    log,
		notify: make(chan struct{}),
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *persister) dispatch(snap Items) {
	p.mu.Lock()
	p.latest = snap
	p.want++
	p.mu.Unlock()
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *persister) loop() {
	defer close(p.exited)
	for {
		select {
		case <-p.stop:
			return
		case <-p.wake:
		}

		p.mu.Lock()
		snap, ver := p.latest, p.want
		skip := ver == p.written
		p.mu.Unlock()
		if skip {
			continue
		}

		if err := store.SaveItems(context.Background(), p.kv, p.key, snap); err != nil {
			p.log.Warn("save shopping list", zap.String("key", p.key), zap.Error(err))
		}

		p.mu.Lock()
		p.written = ver
		close(p.notify)
		p.notify = make(chan struct{})
		p.mu.Unlock()
	}
}

func (p *persister) flush(ctx context.Context) error {
	p.mu.Lock()
	target := p.want
	for p.written < target {
		ch := p.notify
		p.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.exited:
			return nil
		case <-ch:
		}
		p.mu.Lock()
	}
	p.mu.Unlock()
	return nil
}

func (p *persister) close(ctx context.Context) error {
	err := p.flush(ctx)
	p.stopped.Do(func() { close(p.stop) })
	<-p.exited
	return err
}
