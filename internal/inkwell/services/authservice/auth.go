package authservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/internal/inkwell/repository/userrepo"
	"github.com/inkwell-press/inkwell/internal/pkg/config"
	"github.com/inkwell-press/inkwell/internal/pkg/jwtauth"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid confirmation token")
)

// lastSeenGranularity bounds how often a page view writes last_seen back.
const lastSeenGranularity = time.Minute

type Repository interface {
	CreateUser(context.Context, models.User) (int64, error)
	GetUserByUsername(context.Context, string) (models.User, error)
	GetUserByID(context.Context, int64) (models.User, error)
	UpdateUser(context.Context, models.User) error
	GetRoleByID(context.Context, int64) (models.Role, error)
	GetDefaultRole(context.Context) (models.Role, error)
	ListRoles(context.Context) ([]models.Role, error)
}

type AuthService struct {
	userRepo Repository
	cfg      config.Auth
}

func New(userRepo Repository, cfg config.Auth) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register creates an unconfirmed account with the default role and
// returns the confirmation token that would go out by mail.
func (as *AuthService) Register(ctx context.Context, req RegisterRequest) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("generate from password error: %w", err)
	}

	role, err := as.userRepo.GetDefaultRole(ctx)
	if err != nil {
		return "", fmt.Errorf("get default role error: %w", err)
	}

	now := time.Now()

	u := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		MemberSince:  now,
		LastSeen:     now,
	}

	id, err := as.userRepo.CreateUser(ctx, u)
	if err != nil {
		return "", fmt.Errorf("create user error: %w", err)
	}

	token, err := jwtauth.NewToken(id, jwtauth.PurposeConfirm, as.cfg.ConfirmTTL, as.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("can't get token error: %w", err)
	}

	return token, nil
}

func (as *AuthService) Login(ctx context.Context, username, password string) (models.User, error) {
	u, err := as.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}

		return models.User{}, fmt.Errorf("get user error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// Confirm validates a confirmation token for the given user and flips
// the confirmed flag. Confirming twice is a no-op.
func (as *AuthService) Confirm(ctx context.Context, user models.User, token string) error {
	id, err := jwtauth.ParseToken(token, jwtauth.PurposeConfirm, as.cfg.Secret)
	if err != nil || id != user.ID {
		return ErrInvalidToken
	}

	if user.Confirmed {
		return nil
	}

	user.Confirmed = true

	if err := as.userRepo.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user error: %w", err)
	}

	return nil
}

// UserByID resolves the session's user and refreshes last_seen when it
// has gone stale.
func (as *AuthService) UserByID(ctx context.Context, id int64) (models.User, error) {
	u, err := as.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if time.Since(u.LastSeen) > lastSeenGranularity {
		u.LastSeen = time.Now()
		if err := as.userRepo.UpdateUser(ctx, u); err != nil {
			return models.User{}, fmt.Errorf("update last seen error: %w", err)
		}
	}

	return u, nil
}

func (as *AuthService) UserByUsername(ctx context.Context, username string) (models.User, error) {
	return as.userRepo.GetUserByUsername(ctx, username)
}

func (as *AuthService) UpdateProfile(ctx context.Context, user models.User, req ProfileRequest) error {
	user.Name = req.Name
	user.Location = req.Location
	user.AboutMe = req.AboutMe

	if err := as.userRepo.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user error: %w", err)
	}

	return nil
}

// AdminUpdateProfile overwrites every profile field of the target user,
// including email, username, confirmation flag and role.
func (as *AuthService) AdminUpdateProfile(ctx context.Context, id int64, req AdminProfileRequest) error {
	user, err := as.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	role, err := as.userRepo.GetRoleByID(ctx, req.RoleID)
	if err != nil {
		return err
	}

	user.Email = req.Email
	user.Username = req.Username
	user.Confirmed = req.Confirmed
	user.Role = role
	user.Name = req.Name
	user.Location = req.Location
	user.AboutMe = req.AboutMe

	if err := as.userRepo.UpdateUser(ctx, user); err != nil {
		return err
	}

	return nil
}

func (as *AuthService) Roles(ctx context.Context) ([]models.Role, error) {
	return as.userRepo.ListRoles(ctx)
}
