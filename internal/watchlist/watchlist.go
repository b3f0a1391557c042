package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/trogers1052/stock-dashboard/internal/models"
)

// DefaultKey is the storage key holding the serialized watchlist
const DefaultKey = "stockWatchlist"

// ErrInvalidSymbol is returned when an entry has no symbol
var ErrInvalidSymbol = errors.New("symbol is required")

// Backend persists a single text value per key
type Backend interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Put(ctx context.Context, key, value string) error
}

// Publisher is notified after each successful mutation
type Publisher interface {
	PublishWatchlistAdded(ctx context.Context, stock *models.Stock) error
	PublishWatchlistRemoved(ctx context.Context, symbol string) error
}

// Watchlist is an ordered set of stock snapshots keyed by symbol. Every
// mutation rewrites the full list.
type Watchlist struct {
	backend   Backend
	key       string
	publisher Publisher
	logger    *slog.Logger

	mu sync.Mutex
}

// Option configures a Watchlist
type Option func(*Watchlist)

// WithKey overrides the storage key
func WithKey(key string) Option {
	return func(w *Watchlist) {
		if key != "" {
			w.key = key
		}
	}
}

// WithPublisher sets where change events go
func WithPublisher(p Publisher) Option {
	return func(w *Watchlist) {
		w.publisher = p
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watchlist) {
		w.logger = logger
	}
}

// New creates a Watchlist over backend
func New(backend Backend, opts ...Option) *Watchlist {
	w := &Watchlist{
		backend: backend,
		key:     DefaultKey,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Load returns the persisted entries. A missing or unreadable document is an
// empty watchlist; corruption is logged, not returned.
func (w *Watchlist) Load(ctx context.Context) ([]models.Stock, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.load(ctx)
}

// Add stores a snapshot of stock. An entry with the same symbol is replaced
// in place, so adding twice keeps one entry.
func (w *Watchlist) Add(ctx context.Context, stock models.Stock) ([]models.Stock, error) {
	if stock.Symbol == "" {
		return nil, ErrInvalidSymbol
	}
	snapshot := stock.Clone()

	w.mu.Lock()
	entries, err := w.load(ctx)
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}

	replaced := false
	for i := range entries {
		if entries[i].Symbol == snapshot.Symbol {
			entries[i] = snapshot
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, snapshot)
	}

	if err := w.save(ctx, entries); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.mu.Unlock()

	w.logger.Info("added to watchlist", "symbol", snapshot.Symbol, "replaced", replaced, "size", len(entries))

	if w.publisher != nil {
		if err := w.publisher.PublishWatchlistAdded(ctx, &snapshot); err != nil {
			w.logger.Error("failed to publish watchlist event", "symbol", snapshot.Symbol, "error", err)
		}
	}
	return entries, nil
}

// Remove drops every entry with symbol
func (w *Watchlist) Remove(ctx context.Context, symbol string) ([]models.Stock, error) {
	if symbol == "" {
		return nil, ErrInvalidSymbol
	}

	w.mu.Lock()
	entries, err := w.load(ctx)
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}

	kept := make([]models.Stock, 0, len(entries))
	for _, e := range entries {
		if e.Symbol != symbol {
			kept = append(kept, e)
		}
	}

	if err := w.save(ctx, kept); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.mu.Unlock()

	w.logger.Info("removed from watchlist", "symbol", symbol, "removed", len(entries)-len(kept), "size", len(kept))

	if w.publisher != nil {
		if err := w.publisher.PublishWatchlistRemoved(ctx, symbol); err != nil {
			w.logger.Error("failed to publish watchlist event", "symbol", symbol, "error", err)
		}
	}
	return kept, nil
}

// Contains reports whether symbol is on the watchlist
func (w *Watchlist) Contains(ctx context.Context, symbol string) (bool, error) {
	entries, err := w.Load(ctx)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.Symbol == symbol {
			return true, nil
		}
	}
	return false, nil
}

func (w *Watchlist) load(ctx context.Context) ([]models.Stock, error) {
	raw, found, err := w.backend.Get(ctx, w.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist: %w", err)
	}
	if !found || raw == "" {
		return []models.Stock{}, nil
	}

	var entries []models.Stock
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		w.logger.Warn("watchlist state is corrupted, treating as empty", "key", w.key, "error", err)
		return []models.Stock{}, nil
	}
	if entries == nil {
		entries = []models.Stock{}
	}
	return entries, nil
}

func (w *Watchlist) save(ctx context.Context, entries []models.Stock) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal watchlist: %w", err)
	}
	if err := w.backend.Put(ctx, w.key, string(data)); err != nil {
		return fmt.Errorf("failed to write watchlist: %w", err)
	}
	return nil
}
