package handlers

import (
	"swapnstay/internal/config"
	"swapnstay/internal/repos"
	"swapnstay/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth  *services.AuthService
	Pool  *services.RepositoryPool
	Store *repos.DocStore

	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	AdminHandler   *AdminHandler
}

// NewDeps wires the session provider, the per-session product repositories
// and the handlers on top of db.
func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	store := repos.NewDocStore(db)
	userRepo := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(userRepo, store)
	pool := services.NewRepositoryPool(store, services.Options{
		StrictNumbers:    cfg.StrictNumbers,
		GuardReentry:     cfg.GuardReentry,
		EnforceOwnership: cfg.EnforceOwnership,
		StoreTimeout:     cfg.StoreTimeout,
	})
	authSvc.OnAuthStateChanged(pool.HandleAuthEvent)

	return &Deps{
		Auth:           authSvc,
		Pool:           pool,
		Store:          store,
		AuthHandler:    &AuthHandler{Auth: authSvc},
		ProductHandler: &ProductHandler{Pool: pool},
		AdminHandler:   &AdminHandler{Pool: pool, Store: store, Users: userRepo},
	}
}
