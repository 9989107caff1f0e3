package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/auth"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/repository"
)

const (
	MinPasswordLength = 6
	mailTimeout       = 10 * time.Second
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Answer   string
}

type ProfileInput struct {
	Name     string
	Password string
	Phone    string
	Address  string
}

type LoginResult struct {
	Token string
	User  entity.UserProfile
}

type AuthService struct {
	users   repository.UserRepository
	tokens  auth.TokenIssuer
	hasher  auth.PasswordHasher
	events  EventPublisher
	mailer  Mailer
	metrics *metrics.Metrics
	log     logger.Logger
}

// NewAuthService wires the account use cases. mailer may be nil.
func NewAuthService(
	users repository.UserRepository,
	tokens auth.TokenIssuer,
	hasher auth.PasswordHasher,
	events EventPublisher,
	mailer Mailer,
	m *metrics.Metrics,
	log logger.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		hasher:  hasher,
		events:  events,
		mailer:  mailer,
		metrics: m,
		log:     log.Named("AuthService"),
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if len(in.Password) > auth.MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrAlreadyRegistered
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Phone:    in.Phone,
		Address:  in.Address,
		Answer:   in.Answer,
		Role:     entity.RoleUser,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.UsersRegistered.Inc()
	s.publish(ctx, SubjectUserRegistered, UserRegisteredEvent{UserID: user.ID, Name: user.Name, Email: user.Email})
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.LoginsTotal.WithLabelValues("unknown_email").Inc()
			return nil, ErrEmailNotRegistered
		}
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &LoginResult{Token: token, User: user.Profile()}, nil
}

// ForgotPassword resets the password of the user matching both email and answer.
func (s *AuthService) ForgotPassword(ctx context.Context, email, answer, newPassword string) error {
	if len(newPassword) > auth.MaxPasswordBytes {
		return ErrPasswordTooLong
	}

	user, err := s.users.FindByEmailAndAnswer(ctx, email, answer)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWrongEmailOrAnswer
		}
		return fmt.Errorf("lookup user by email and answer: %w", err)
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.users.UpdateByID(ctx, user.ID, repository.UpdateUserParams{Password: &hashed}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.notifyPasswordReset(ctx, user)
	return nil
}

// UpdateProfile keeps the stored value for every field left empty.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user by id: %w", err)
	}

	if in.Password != "" && len(in.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	password := user.Password
	if in.Password != "" {
		password, err = s.hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}
	name := orDefault(in.Name, user.Name)
	phone := orDefault(in.Phone, user.Phone)
	address := orDefault(in.Address, user.Address)

	updated, err := s.users.UpdateByID(ctx, user.ID, repository.UpdateUserParams{
		Name:     &name,
		Password: &password,
		Phone:    &phone,
		Address:  &address,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func (s *AuthService) publish(ctx context.Context, subject string, event interface{}) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.Publish(pubCtx, subject, event); err != nil {
		s.log.Warnf("failed to publish %s: %v", subject, err)
	}
}

func (s *AuthService) notifyPasswordReset(ctx context.Context, user *entity.User) {
	if s.mailer == nil {
		return
	}
	mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailTimeout)
	defer cancel()

	body := fmt.Sprintf("Hello %s,\n\nThe password of your account was just reset. If this wasn't you, contact support.", user.Name)
	if err := s.mailer.Send(mailCtx, []string{user.Email}, "Your password was reset", "", body); err != nil {
		s.log.Warnf("failed to send password reset notice to user %s: %v", user.ID, err)
	}
}
