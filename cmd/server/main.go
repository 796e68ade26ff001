package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"

	"github.com/almostburnout/abo/internal/api"
	"github.com/almostburnout/abo/internal/cache"
	"github.com/almostburnout/abo/internal/config"
	dbstore "github.com/almostburnout/abo/internal/db"
	"github.com/almostburnout/abo/internal/middleware"
	"github.com/almostburnout/abo/internal/services"
	"github.com/almostburnout/abo/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	commit := utils.SafeEnv("ABO_COMMIT", "")
	buildTime := utils.SafeEnv("ABO_BUILD_TIME", "")

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	routerCfg := api.RouterConfig{
		SiteURL:   cfg.SiteURL,
		Gateway:   services.NewTossGateway(cfg.TossSecretKey),
		SignToken: middleware.SignToken,
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		routerCfg.ShareStore = cache.NewShareCache(api.NewShareStoreAdapter(store), rdb)
		log.Printf("share cache enabled via redis at %s", cfg.RedisAddr)
	}

	mux := http.NewServeMux()
	api.NewRouter(store, routerCfg).Register(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		locale := middleware.LocaleFromContext(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"name":   "AlmostBurnOut API",
			"locale": locale,
			"msg":    utils.T(locale, "health.ok"),
		})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	handler := middleware.CORS(
		middleware.SecureHeaders(
			middleware.NoStore(
				middleware.LocaleMiddleware(
					middleware.WithAuth(mux)))))

	log.Printf("AlmostBurnOut server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore picks SQLite when a path is configured and falls back to the
// in-memory store otherwise. A JSON snapshot at store_path is imported into a
// fresh SQLite file exactly once.
func openStore(cfg *config.Config) (api.Store, error) {
	if cfg.SQLitePath == "" {
		if cfg.StorePath != "" {
			if s, err := api.NewMemoryStoreFromPath(cfg.StorePath); err == nil {
				log.Printf("loaded snapshot from %s", cfg.StorePath)
				return s, nil
			} else if !os.IsNotExist(err) {
				return nil, fmt.Errorf("load snapshot: %w", err)
			}
		}
		log.Printf("no sqlite_path configured, using in-memory store")
		return api.NewMemoryStore(), nil
	}

	firstRun := false
	if _, err := os.Stat(cfg.SQLitePath); os.IsNotExist(err) {
		firstRun = true
	}
	if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(cfg.SQLitePath))
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := dbstore.RunMigrations(conn); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	store, err := dbstore.NewStore(conn)
	if err != nil {
		return nil, err
	}

	if firstRun && cfg.StorePath != "" {
		if err := importSnapshot(cfg.StorePath, store); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// importSnapshot performs the one-time import of a pre-database JSON dump.
func importSnapshot(path string, dst api.Store) error {
	legacy, err := api.NewMemoryStoreFromPath(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load snapshot: %w", err)
	}
	snap := api.MemoryStoreSnapshot(legacy)
	if snap == nil {
		return nil
	}
	log.Printf("first run, importing snapshot from %s", path)
	for _, u := range snap.Users {
		dst.AddUser(u)
	}
	for _, r := range snap.Results {
		dst.AddResult(r)
	}
	for _, o := range snap.Orders {
		dst.AddOrder(o)
	}
	for _, p := range snap.Payments {
		dst.AddPayment(p)
	}
	for _, sh := range snap.Shares {
		dst.AddShare(sh)
	}
	for _, a := range snap.Applications {
		dst.AddApplication(a)
	}
	log.Printf("snapshot import completed")
	return nil
}
