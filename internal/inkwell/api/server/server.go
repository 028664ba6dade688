package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/sessionrepo"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/authservice"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/blogservice"
	"github.com/inkwell-press/inkwell/internal/inkwell/services/socialservice"
	"github.com/inkwell-press/inkwell/internal/inkwell/view"
	"github.com/inkwell-press/inkwell/internal/pkg/config"
	"github.com/inkwell-press/inkwell/pkg/logger"
)

type Server struct {
	serv          *http.Server
	authService   AuthService
	blogService   BlogService
	socialService SocialService
	sessions      *sessionManager
	templates     *view.Engine
	validate      *validator.Validate
	lg            logger.Logger
}

type AuthService interface {
	Register(context.Context, authservice.RegisterRequest) (string, error)
	Login(ctx context.Context, username, password string) (models.User, error)
	Confirm(context.Context, models.User, string) error
	UserByID(context.Context, int64) (models.User, error)
	UserByUsername(context.Context, string) (models.User, error)
	UpdateProfile(context.Context, models.User, authservice.ProfileRequest) error
	AdminUpdateProfile(context.Context, int64, authservice.AdminProfileRequest) error
	Roles(context.Context) ([]models.Role, error)
}

type BlogService interface {
	Feed(context.Context, blogservice.FeedRequest) (blogservice.FeedPage, error)
	CreatePost(ctx context.Context, author models.User, body string) (int64, error)
	PostView(ctx context.Context, postID int64, page int) (blogservice.PostView, error)
	AddComment(ctx context.Context, author models.User, postID int64, body string) error
	EditPost(ctx context.Context, actor models.User, postID int64, body string) error

	CreateTaxonomy(ctx context.Context, author models.User, category string) (int64, error)
	Taxonomy(context.Context, int64) (models.Taxonomy, error)
	Taxonomies(context.Context) ([]models.Taxonomy, error)
	EditTaxonomy(ctx context.Context, actor models.User, id int64, category string) error
	DeleteTaxonomy(ctx context.Context, actor models.User, id int64) error

	ModerationQueue(ctx context.Context, page int) (blogservice.CommentPage, error)
	EnableComment(context.Context, int64) error
	DisableComment(context.Context, int64) error

	Shutdown(context.Context) error
}

type SocialService interface {
	Follow(ctx context.Context, follower models.User, targetUsername string) (models.User, error)
	Unfollow(ctx context.Context, follower models.User, targetUsername string) (models.User, error)
	IsFollowing(ctx context.Context, follower *models.User, targetID int64) bool
	Followers(ctx context.Context, username string, page int) (socialservice.EdgePage, error)
	FollowedBy(ctx context.Context, username string, page int) (socialservice.EdgePage, error)
}

type SessionStore interface {
	Save(context.Context, sessionrepo.Session) error
	Get(context.Context, string) (sessionrepo.Session, error)
	Delete(context.Context, string) error
}

func New(cfg config.Server, authCfg config.Auth, as AuthService, bs BlogService,
	ss SocialService, store SessionStore, templates *view.Engine, lg logger.Logger,
) *Server {
	s := Server{
		authService:   as,
		blogService:   bs,
		socialService: ss,
		sessions:      newSessionManager(store, authCfg.SecureCookies),
		templates:     templates,
		validate:      validator.New(),
		lg:            lg,
	}

	serv := &http.Server{ //nolint:exhaustruct
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	s.serv = serv

	return &s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(secureHeaders())
	r.Use(loggingMiddleware(s.lg))
	r.Use(s.withSession)

	r.Get("/", s.index)
	r.With(s.requirePermission(models.PermWriteArticles)).Post("/", s.createPost)

	r.With(s.requireAuthenticated).Get("/all", s.showAll)
	r.With(s.requireAuthenticated).Get("/followed", s.showFollowed)

	r.Get("/user/{username}", s.profile)
	r.With(s.requireAuthenticated).Get("/edit-profile", s.editProfileForm)
	r.With(s.requireAuthenticated).Post("/edit-profile", s.editProfile)
	r.With(s.requirePermission(models.PermAdminister)).Get("/edit-profile/{id}", s.editProfileAdminForm)
	r.With(s.requirePermission(models.PermAdminister)).Post("/edit-profile/{id}", s.editProfileAdmin)

	r.Get("/post/{id}", s.post)
	r.With(s.requirePermission(models.PermComment)).Post("/post/{id}", s.addComment)
	r.With(s.requireAuthenticated).Get("/edit/{id}", s.editPostForm)
	r.With(s.requireAuthenticated).Post("/edit/{id}", s.editPost)

	r.Get("/taxonomy", s.taxonomies)
	r.With(s.requirePermission(models.PermWriteArticles)).Post("/taxonomy", s.createTaxonomy)
	r.With(s.requireAuthenticated).Get("/edit-tax/{id}", s.editTaxonomyForm)
	r.With(s.requireAuthenticated).Post("/edit-tax/{id}", s.editTaxonomy)
	r.With(s.requireAuthenticated).Get("/del-tax/{id}", s.deleteTaxonomy)

	r.With(s.requirePermission(models.PermFollow)).Get("/follow/{username}", s.follow)
	r.With(s.requirePermission(models.PermFollow)).Get("/unfollow/{username}", s.unfollow)
	r.Get("/followers/{username}", s.followers)
	r.Get("/followed-by/{username}", s.followedBy)

	r.With(s.requirePermission(models.PermModerateComments)).Get("/moderate", s.moderate)
	r.With(s.requirePermission(models.PermModerateComments)).Get("/moderate/enable/{id}", s.moderateEnable)
	r.With(s.requirePermission(models.PermModerateComments)).Get("/moderate/disable/{id}", s.moderateDisable)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/register", s.registerForm)
		r.Get("/login", s.loginForm)
		r.Get("/logout", s.logout)
		r.With(s.requireAuthenticated).Get("/confirm/{token}", s.confirm)

		limit := httprate.LimitByIP(10, time.Minute)
		r.With(limit).Post("/register", s.register)
		r.With(limit).Post("/login", s.login)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, "Page not found.")
	})

	return r
}

func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error)

	go func() {
		if err := s.serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			close(errCh)
		}
	}()

	select {
	case <-ctx.Done():
		ctxS, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
		defer cancel()

		if err := s.Shutdown(ctxS); err != nil { //nolint:contextcheck
			return fmt.Errorf("context error: %w server error %w", ctxS.Err(), err)
		}

		if !errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("context cancelled error: %w", ctx.Err())
		}

		return nil
	case err := <-errCh:
		return fmt.Errorf("listen and serve error: %w", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctxS, cancel := context.WithTimeout(ctx, s.serv.IdleTimeout)
	defer cancel()

	if err := s.serv.Shutdown(ctxS); err != nil {
		return fmt.Errorf("shutdown server error: %w", err)
	}

	return nil
}
