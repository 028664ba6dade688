package app

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-press/inkwell/internal/inkwell/api/server"
	cr "github.com/inkwell-press/inkwell/internal/inkwell/repository/contentrepo/postgres"
	sr "github.com/inkwell-press/inkwell/internal/inkwell/repository/sessionrepo/redis"
	ur "github.com/inkwell-press/inkwell/internal/inkwell/repository/userrepo/postgres"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/authservice"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/blogservice"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/socialservice"
	"github.com/inkwell-press/inkwell/internal/inkwell/view"
	"github.com/inkwell-press/inkwell/internal/pkg/config"
	"github.com/inkwell-press/inkwell/pkg/logger"
)

type Server interface {
	Start(context.Context) error
	Shutdown(context.Context) error
}

type InkwellApp struct {
	s   Server
	lg  logger.Logger
	cfg config.Config
}

func New(ctx context.Context, cfg config.Config) (InkwellApp, error) {
	lg, err := logger.New(cfg.Logger)
	if err != nil {
		return InkwellApp{}, fmt.Errorf("can't get logger error: %w", err)
	}

	// The user repo connects first: it owns the schema migration.
	userRepo, err := ur.New(ctx, cfg.PostgresDB)
	if err != nil {
		return InkwellApp{}, fmt.Errorf("postgres user repo initializing error: %w", err)
	}

	contentRepo, err := cr.New(ctx, cfg.PostgresDB)
	if err != nil {
		return InkwellApp{}, fmt.Errorf("postgres content repo initializing error: %w", err)
	}

	sessionStore, err := sr.New(ctx, cfg.RedisSessions, cfg.Auth.SessionTTL)
	if err != nil {
		return InkwellApp{}, fmt.Errorf("redis session store initializing error: %w", err)
	}

	authService := authservice.New(userRepo, cfg.Auth)
	blogService := blogservice.New(contentRepo, cfg.Blog, lg)
	socialService := socialservice.New(userRepo, cfg.Blog, lg)

	templates, err := view.NewEngine()
	if err != nil {
		return InkwellApp{}, fmt.Errorf("template engine initializing error: %w", err)
	}

	s := server.New(cfg.Server, cfg.Auth, authService, blogService, socialService, sessionStore, templates, lg)

	return InkwellApp{
		s:   s,
		lg:  lg,
		cfg: cfg,
	}, nil
}

func (ia *InkwellApp) Run(ctx context.Context) {
	ia.lg.Infof("STARTED SERVER ON %s", ia.cfg.Server.Addr)

	go func() {
		if err := ia.s.Start(ctx); err != nil {
			ia.lg.Errorf("server start error: %s", err.Error())
			ctx.Done()

			return
		}
	}()

	<-ctx.Done()

	ctxS, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
	defer cancel()

	if err := ia.Stop(ctxS); err != nil { //nolint:contextcheck
		ia.lg.Errorf("server shutdown error: %s", err.Error())
	}
}

func (ia *InkwellApp) Stop(ctx context.Context) error {
	if err := ia.s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	ia.lg.Info("Shutdowned successfully")

	return nil
}
