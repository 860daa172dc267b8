package controllers

import (
	"library-lending/app"
	"library-lending/cache"
	"library-lending/db"
	"library-lending/lending"
)

// Srv aggregates what the controllers need: the record stores, the lending
// engine and the catalog cache. Cache may be nil (e.g. in tests); every
// cache call tolerates that.
type Srv struct {
	Store  lending.Store
	Engine *lending.Engine
	Cache  *cache.CatalogCache
}

func GetSrv(a *app.App) *Srv {
	store := db.NewRepo(a.DB)
	return &Srv{
		Store:  store,
		Engine: lending.NewEngine(store),
		Cache:  cache.NewCatalogCache(a.RDB, a.Config.CacheTTL),
	}
}
