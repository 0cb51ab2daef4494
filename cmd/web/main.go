// cmd/web/main.go
//
// Contact service – HTTP entry point.
//
// Start-up sequence
// -----------------
//
//  1. Load layered config (.env → conf/global.yaml → CONTACT_* env).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Open the optional GeoLite2 database for request enrichment.
//
//  4. Build the session store and CSRF signer, then register the contact
//     component.
//
//  5. Build the chi router: security headers → request info → components,
//     plus Prometheus /metrics, all wrapped by the optional HTTPS redirect.
//
//  6. Run the server and a signal watcher in one errgroup.  SIGINT or
//     SIGTERM triggers a graceful shutdown bounded by shutdownGrace.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/contact/components/contact"
	"github.com/yanizio/contact/internal/component"
	"github.com/yanizio/contact/internal/config"
	"github.com/yanizio/contact/internal/form"
	"github.com/yanizio/contact/internal/logger"
	"github.com/yanizio/contact/internal/middleware"
	"github.com/yanizio/contact/internal/requestinfo"
	"github.com/yanizio/contact/internal/server"
	"github.com/yanizio/contact/internal/session"
)

const shutdownGrace = 10 * time.Second

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	// Bootstrap console logger so config errors surface before the file
	// logger exists.
	boot, _ := zap.NewDevelopment()
	zap.ReplaceGlobals(boot)

	//
	// ── 1.  Config ──────────────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	//
	// ── 2.  Logger ──────────────────────────────────────────────────────
	//
	logOut, err := logger.New(cfg.Paths.Root, cfg.Log.Tee && runningInTTY(), cfg.Log.Level)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	if err := run(cfg, logOut); err != nil {
		logOut.Fatalw("contact service stopped", "err", err)
	}
	logOut.Infow("contact service stopped cleanly")
}

func run(cfg *config.Config, logOut *zap.SugaredLogger) error {
	//
	// ── 3.  GeoIP (optional) ────────────────────────────────────────────
	//
	if err := requestinfo.InitGeo(cfg.GeoIP.DBPath); err != nil {
		return err
	}
	defer func() { _ = requestinfo.CloseGeo() }()

	//
	// ── 4.  Session store, CSRF signer, components ─────────────────────
	//
	store, err := session.NewStore(cfg.Session.MaxEntries)
	if err != nil {
		return err
	}

	secret, err := form.DecodeSecret(cfg.Security.CSRFKey)
	if err != nil {
		return err
	}
	if secret == nil {
		logOut.Warnw("security.csrf_key not set, using random per-process key")
	}
	tokens, err := form.NewTokenSigner(secret, cfg.Security.TokenMaxAge)
	if err != nil {
		return err
	}

	component.Register(contact.New(logOut, store, session.Cookies{Secure: cfg.Session.CookieSecure}, tokens))

	//
	// ── 5.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Security)
	r.Use(requestinfo.Enrich)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/contact", http.StatusFound)
	})
	if err := component.Mount(r); err != nil {
		return err
	}

	srv := server.New(cfg.HTTP, middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS, r))

	//
	// ── 6.  Serve until signalled ───────────────────────────────────────
	//
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logOut.Infow("shutting down", "grace", shutdownGrace)
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
