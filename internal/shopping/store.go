package shopping

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
)

// Store holds the in-memory list and mirrors every applied change to a
// durable slot. The in-memory list is the source of truth for the session:
// failed writes are logged and otherwise ignored.
//
// Mutators are meant to be called from one goroutine (the UI loop);
// Items may be called from anywhere.
type Store struct {
	kv   store.KV
	key  string
	ids  IDGenerator
	log  *zap.Logger
	sync bool

	mu    sync.Mutex
	items Items

	p *persister
}

type Option func(*Store)

func WithIDGenerator(g IDGenerator) Option { return func(s *Store) { s.ids = g } }
func WithKey(key string) Option            { return func(s *Store) { s.key = key } }
func WithLogger(l *zap.Logger) Option      { return func(s *Store) { s.log = l } }

// WithSync makes every mutation wait for its write. One-shot CLI commands
// use it; the TUI keeps the default fire-and-forget writes.
func WithSync() Option { return func(s *Store) { s.sync = true } }

func New(kv store.KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		key:   store.DefaultKey,
		ids:   UUIDGenerator{},
		log:   zap.NewNop(),
		items: Items{},
	}
	for _, o := range opts {
		o(s)
	}
	if !s.sync {
		s.p = newPersister(kv, s.key, s.log)
	}
	return s
}

// Load reads the durable slot once and replaces the list with it.
// Unreadable or unparsable data means an empty list.
func (s *Store) Load(ctx context.Context) {
	items, err := store.LoadItems(ctx, s.kv, s.key)
	if err != nil {
		s.log.Warn("load shopping list; starting empty", zap.String("key", s.key), zap.Error(err))
	}
	s.ReplaceAll(items)
	s.log.Debug("shopping list loaded", zap.Int("items", len(items)))
}

// ReplaceAll overwrites the list without writing it back.
func (s *Store) ReplaceAll(items []model.ShoppingItem) {
	next := ReplaceAll(items)
	s.mu.Lock()
	s.items = next
	s.mu.Unlock()
}

// Items returns a copy of the current list.
func (s *Store) Items() Items {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.clone()
}

func (s *Store) Add(name, quantity string) (model.ShoppingItem, bool) {
	if strings.TrimSpace(name) == "" {
		return model.ShoppingItem{}, false
	}
	id := s.ids.NewID()
	ok := s.apply(func(it Items) (Items, bool) { return Add(it, id, name, quantity) })
	if !ok {
		s.log.Warn("add declined", zap.String("id", id))
		return model.ShoppingItem{}, false
	}
	s.log.Debug("item added", zap.String("id", id))
	item, _ := Find(s.Items(), id)
	return item, true
}

func (s *Store) Edit(id, name, quantity string) bool {
	ok := s.apply(func(it Items) (Items, bool) { return Edit(it, id, name, quantity) })
	if ok {
		s.log.Debug("item edited", zap.String("id", id))
	}
	return ok
}

func (s *Store) Delete(id string) bool {
	ok := s.apply(func(it Items) (Items, bool) { return Delete(it, id) })
	if ok {
		s.log.Debug("item deleted", zap.String("id", id))
	}
	return ok
}

func (s *Store) TogglePurchased(id string) bool {
	ok := s.apply(func(it Items) (Items, bool) { return TogglePurchased(it, id) })
	if ok {
		s.log.Debug("item toggled", zap.String("id", id))
	}
	return ok
}

// ClearPurchased removes purchased items and reports how many went.
func (s *Store) ClearPurchased() int {
	before := len(s.Items())
	if !s.apply(ClearPurchased) {
		return 0
	}
	n := before - len(s.Items())
	s.log.Debug("purchased items cleared", zap.Int("removed", n))
	return n
}

// Save writes the current list regardless of whether anything changed.
// Used after ReplaceAll when the replacement itself should be kept (import).
func (s *Store) Save() {
	s.persist(s.Items())
}

// Flush blocks until every write dispatched so far has finished.
func (s *Store) Flush(ctx context.Context) error {
	if s.p == nil {
		return nil
	}
	return s.p.flush(ctx)
}

// Close flushes pending writes and stops the background writer.
func (s *Store) Close(ctx context.Context) error {
	if s.p == nil {
		return nil
	}
	return s.p.close(ctx)
}

func (s *Store) apply(tr func(Items) (Items, bool)) bool {
	s.mu.Lock()
	next, ok := tr(s.items)
	if ok {
		s.items = next
	}
	s.mu.Unlock()
	if ok {
		// next is never mutated again; transitions always copy.
		s.persist(next)
	}
	return ok
}

func (s *Store) persist(snap Items) {
	if s.p != nil {
		s.p.dispatch(snap)
		return
	}
	if err := store.SaveItems(context.Background(), s.kv, s.key, snap); err != nil {
		s.log.Warn("save shopping list", zap.String("key", s.key), zap.Error(err))
	}
}
