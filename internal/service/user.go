package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restohub/bistro_backend/internal/events"
	"github.com/restohub/bistro_backend/internal/logging"
	"github.com/restohub/bistro_backend/internal/models"
)

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	InsertUser(ctx context.Context, user *models.User) error
	PromoteUser(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (int64, error)
}

type UserService struct {
	Store  UserStore
	Events events.Publisher
}

// Register inserts the user record unless the email is already known.
// First sign-in creates the record; later sign-ins are a no-op conflict.
func (s *UserService) Register(ctx context.Context, user *models.User) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.register", "email", user.Email)

	if user.Email == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}

	if _, err := s.Store.FindUserByEmail(ctx, user.Email); err == nil {
		return nil, fmt.Errorf("%w: email already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register_error", "error", err)
		return nil, err
	}

	if err := s.Store.InsertUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already exists", ErrConflict)
		}
		l.Error("register_error", "error", err)
		return nil, err
	}

	if s.Events != nil {
		event := map[string]interface{}{
			"type":  "user_registered",
			"id":    user.ID,
			"email": user.Email,
		}
		if err := s.Events.PublishEvent(ctx, "user_events", user.ID.String(), event); err != nil {
			l.Error("event_publish_failed", "error", err)
		}
	}

	return user, nil
}

// IsAdmin reports whether the email owns an admin-flagged record. An unknown
// email is simply not an admin.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.Store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin(), nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Store.ListUsers(ctx)
}

func (s *UserService) Promote(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.Store.PromoteUser(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.Store.DeleteUser(ctx, id)
}
