package service

import (
	"context"
	"errors"

	commoncrypto "github.com/AlibekovAA/task-manager/internal/common/crypto"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
	userrepo "github.com/AlibekovAA/task-manager/internal/user/repository"
)

type AuthService struct {
	repo   userrepo.Repository
	hasher commoncrypto.PasswordHasher
	tokens *TokenIssuer
	log    *logger.Logger
}

func NewAuthService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	tokens *TokenIssuer,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		log:    log,
	}
}

type SignupInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	User  userdomain.User
	Token string
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "signup_attempt",
	}).Info("signup attempt")

	_, err := s.repo.FindByUsername(ctx, input.Username)
	switch {
	case err == nil:
		recordAuthAttempt("signup", "conflict")
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_username_exists",
		}).Warn("signup failed: already exists")
		return AuthResult{}, ErrUsernameTaken
	case !errors.Is(err, userrepo.ErrUserNotFound):
		recordAuthAttempt("signup", "error")
		return AuthResult{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		recordAuthAttempt("signup", "error")
		return AuthResult{}, newInternalError("HASH_FAILED", "failed to hash password", err)
	}

	user, err := s.repo.Create(ctx, input.Username, hash)
	if err != nil {
		if errors.Is(err, userrepo.ErrUsernameAlreadyExists) {
			recordAuthAttempt("signup", "conflict")
			return AuthResult{}, ErrUsernameTaken
		}
		recordAuthAttempt("signup", "error")
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		return AuthResult{}, err
	}

	token, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		recordAuthAttempt("signup", "error")
		return AuthResult{}, newInternalError("TOKEN_ISSUE_FAILED", "failed to issue token", err)
	}

	recordAuthAttempt("signup", "success")
	s.log.WithFields(ctx, logger.Fields{
		"user_id": int64(user.ID),
		"action":  "signup_success",
	}).Info("user signed up")

	return AuthResult{User: user, Token: token}, nil
}

// Login reports unknown usernames and wrong passwords with the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			recordAuthAttempt("login", "invalid_credentials")
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_unknown_user",
			}).Warn("login failed: invalid credentials")
			return AuthResult{}, ErrInvalidCredentials
		}
		recordAuthAttempt("login", "error")
		return AuthResult{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		if !errors.Is(err, commoncrypto.ErrPasswordMismatch) {
			recordAuthAttempt("login", "error")
			return AuthResult{}, newInternalError("HASH_COMPARE_FAILED", "failed to verify password", err)
		}
		recordAuthAttempt("login", "invalid_credentials")
		s.log.WithFields(ctx, logger.Fields{
			"user_id": int64(user.ID),
			"action":  "login_wrong_password",
		}).Warn("login failed: invalid credentials")
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		recordAuthAttempt("login", "error")
		return AuthResult{}, newInternalError("TOKEN_ISSUE_FAILED", "failed to issue token", err)
	}

	recordAuthAttempt("login", "success")
	return AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) Me(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return userdomain.User{}, ErrUserNotFound
		}
		return userdomain.User{}, err
	}
	return user, nil
}
