package services

import (
	"context"
	"sync"

	"swapnstay/internal/domain"
	applog "swapnstay/internal/log"
)

// RepositoryPool keeps one ProductRepository per signed-in session. Signed-out
// visitors share a repository that only ever holds the demo set.
type RepositoryPool struct {
	store DocumentStore
	opts  Options

	mu       sync.Mutex
	sessions map[string]*ProductRepository
	anon     *ProductRepository
}

func NewRepositoryPool(store DocumentStore, opts Options) *RepositoryPool {
	anon := NewProductRepository(store, opts)
	anon.LoadDemo()
	return &RepositoryPool{
		store:    store,
		opts:     opts,
		sessions: map[string]*ProductRepository{},
		anon:     anon,
	}
}

// For returns the repository serving sid. A session signed in before this
// process started gets a repository loaded on first use.
func (p *RepositoryPool) For(ctx context.Context, sid string, user *domain.SessionUser) *ProductRepository {
	if sid == "" || user == nil {
		return p.anon
	}
	p.mu.Lock()
	r, ok := p.sessions[sid]
	if !ok {
		r = NewProductRepository(p.store, p.opts)
		p.sessions[sid] = r
	}
	p.mu.Unlock()
	r.ensureLoaded(ctx)
	return r
}

// HandleAuthEvent is registered with the session provider: sign-in starts the
// session's repository from a fresh reload, sign-out drops it.
func (p *RepositoryPool) HandleAuthEvent(ctx context.Context, ev AuthEvent) {
	if ev.SessionID == "" {
		return
	}
	if ev.User == nil {
		p.mu.Lock()
		delete(p.sessions, ev.SessionID)
		p.mu.Unlock()
		applog.Info(nil, "products.session.cleared", map[string]any{"sid": ev.SessionID})
		return
	}
	r := NewProductRepository(p.store, p.opts)
	p.mu.Lock()
	p.sessions[ev.SessionID] = r
	p.mu.Unlock()
	r.ensureLoaded(ctx)
	applog.Info(nil, "products.session.loaded", map[string]any{"user_id": ev.User.ID, "count": len(r.Products())})
}

// Len is the number of signed-in sessions with a repository.
func (p *RepositoryPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}
