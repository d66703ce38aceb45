// Package app owns the lifetime of the HTTP server and the session sweeper.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/handlers"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	log    *logrus.Logger
	config config.Config
	store  *session.Store
	jwt    *config.JWT
	ws     *config.WebSocket

	// set by Start once the listener is bound
	addr chan net.Addr
}

func New(log *logrus.Logger, c config.Config) (*App, error) {
	j, err := config.NewJWT(c.Jwt)
	if err != nil {
		return nil, err
	}
	if c.Jwt.Secret == "" {
		log.Warn("no JWT secret configured, tokens will not survive a restart")
	}
	return &App{
		log:    log,
		config: c,
		store:  session.NewStore(log, c.Session.TTL.Duration),
		jwt:    j,
		ws:     config.NewWebSocket(),
		addr:   make(chan net.Addr, 1),
	}, nil
}

func (a *App) Handler() http.Handler {
	game := handlers.NewGameHandler(a.log, a.store, a.jwt, a.ws, a.config.Session.MaxSize)
	return handlers.Routes(a.log, game, a.jwt, a.config.Development())
}

// Addr blocks until the server is listening and returns its address.
func (a *App) Addr() net.Addr {
	addr := <-a.addr
	a.addr <- addr
	return addr
}

// Start serves until ctx is done, then shuts the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", a.config.Addr)
	if err != nil {
		return err
	}
	a.addr <- l.Addr()

	server := &http.Server{
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	a.log.Infof("ready to serve @ %s", l.Addr())

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(l); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.store.Run(gCtx, a.config.Session.SweepEvery.Duration)
	})

	return g.Wait()
}
