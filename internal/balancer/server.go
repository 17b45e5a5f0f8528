package balancer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	lberrors "github.com/rileyhilliard/lbdash/internal/errors"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Handler returns the balancer's HTTP routes:
//
//	GET|POST /   307 to the next backend
//	GET /stats   the snapshot document, rate limited per client
//	GET /healthz liveness
func (b *Balancer) Handler() http.Handler {
	engine := gin.New()
	engine.Use(gin.Recovery(), b.requestLog())

	engine.GET("/", b.handleRedirect)
	engine.POST("/", b.handleRedirect)
	engine.GET("/stats", b.limiter.Middleware(), b.handleStats)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return engine
}

func (b *Balancer) handleRedirect(c *gin.Context) {
	target := b.Next()
	c.Redirect(http.StatusTemporaryRedirect, target+"/")
}

func (b *Balancer) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, b.Snapshot())
}

// requestLog writes one debug line per request through the balancer's logger.
func (b *Balancer) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		b.log.Debug("%s %s %d %s", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start).Round(time.Microsecond))
	}
}

// Serve binds the configured listen address and serves until ctx is done.
func (b *Balancer) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", b.cfg.Listen)
	if err != nil {
		return lberrors.WrapWithCode(err, lberrors.ErrBalance,
			fmt.Sprintf("Can't listen on %s", b.cfg.Listen),
			"Another process may own the port. Pick a different one with --listen.")
	}
	return b.ServeListener(ctx, ln)
}

// ServeListener probes every backend once, then serves on ln and keeps
// probing in the background. When ctx is done the server is shut down
// gracefully, waiting up to five seconds for in-flight requests.
func (b *Balancer) ServeListener(ctx context.Context, ln net.Listener) error {
	b.ProbeAll(ctx)

	probeCtx, stopProbes := context.WithCancel(ctx)
	defer stopProbes()
	go b.RunProbes(probeCtx)

	srv := &http.Server{
		Handler:           b.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	b.log.Info("balancing %d backends on %s", len(b.backends), ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return lberrors.WrapWithCode(err, lberrors.ErrBalance,
			"Balancer stopped unexpectedly", "")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return lberrors.WrapWithCode(err, lberrors.ErrBalance,
			"Balancer did not shut down cleanly", "")
	}
	b.log.Info("balancer stopped")
	return nil
}
