package calculator

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/calcdesk/pkg/logger"
)

// Registry keeps one Desk per session ID in process memory. Desks with no
// open stream are evicted after the idle timeout; their state survives in
// the session store.
type Registry struct {
	cfg Config
	tag language.Tag
	log *slog.Logger

	mu     sync.Mutex
	desks  map[string]*Desk
	closed bool

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewRegistry validates cfg and starts the eviction loop.
func NewRegistry(cfg Config, log *slog.Logger) (*Registry, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	tag, _ := cfg.languageTag()
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	r := &Registry{
		cfg:   cfg,
		tag:   tag,
		log:   log,
		desks: make(map[string]*Desk),
		stop:  make(chan struct{}),
	}
	r.wg.Add(1)
	go r.sweepLoop()
	return r, nil
}

// Desk returns the desk for id, creating it on first use. A desk removed
// after it was returned reports ErrDeskClosed; callers fetch it again.
func (r *Registry) Desk(id string) (*Desk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrDeskClosed
	}
	d, ok := r.desks[id]
	if !ok {
		d = newDesk(r.cfg, r.tag, r.log.With(logger.SessionID(id)))
		r.desks[id] = d
	}
	// Touched under r.mu so Sweep cannot evict a desk it just handed out.
	d.touch()
	return d, nil
}

// Remove closes and forgets the desk for id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	d, ok := r.desks[id]
	delete(r.desks, id)
	r.mu.Unlock()

	if ok {
		d.Close()
	}
}

// Len returns the number of live desks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.desks)
}

// Sweep evicts desks idle at now and returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	var idle []*Desk
	for id, d := range r.desks {
		if d.idle(now, r.cfg.DeskIdleTimeout) {
			idle = append(idle, d)
			delete(r.desks, id)
		}
	}
	r.mu.Unlock()

	for _, d := range idle {
		d.Close()
	}
	return len(idle)
}

// Close stops the eviction loop and closes every desk. Later calls are no-ops.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.stop)
	desks := r.desks
	r.desks = make(map[string]*Desk)
	r.mu.Unlock()

	r.wg.Wait()
	for _, d := range desks {
		d.Close()
	}
	return nil
}

func (r *Registry) sweepLoop() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.cfg.DeskSweep)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				r.log.Debug("evicted idle desks",
					logger.Component("registry"),
					slog.Int("count", n),
				)
			}
		}
	}
}
