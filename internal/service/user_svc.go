package service

import (
	"context"

	"github.com/you/eventpass/internal/domain"
	"github.com/you/eventpass/pkg/logger"
	"github.com/you/eventpass/pkg/validate"
)

type UserSvc struct {
	repo UserRepository
	log  logger.Logger
}

func NewUserSvc(repo UserRepository, log logger.Logger) *UserSvc {
	return &UserSvc{repo: repo, log: log}
}

type CreateUserInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	SocialHandle *string
	Profession   *int
	Age          *int
	Gender       *bool
}

// Create validates contact fields, rejects duplicates by email and inserts a
// new user. Validation runs before any storage access.
func (s *UserSvc) Create(ctx context.Context, in CreateUserInput) (string, error) {
	if !validate.BDPhoneNumber(in.Phone) {
		return "", ErrInvalidPhone
	}
	if !validate.Email(in.Email) {
		return "", ErrInvalidEmail
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return "", NewError(CodeStorage, "Failed to check existing user: "+err.Error())
	}
	if existing != nil {
		return "", ErrDuplicateUser
	}

	u := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		SocialHandle: in.SocialHandle,
		Profession:   in.Profession,
		Age:          in.Age,
		Gender:       in.Gender,
	}
	if err := s.repo.Insert(ctx, u); err != nil {
		return "", NewError(CodeStorage, "Failed to create user: "+err.Error())
	}
	s.log.Info("user created", "user_id", u.ID)
	return u.ID, nil
}

// GetByEmail returns (nil, nil) when the email is unknown.
func (s *UserSvc) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserSvc) ByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.ByID(ctx, id)
}

// CreateOrReuse resolves a user id by email, creating the user on first
// contact. Creation failures propagate verbatim.
func (s *UserSvc) CreateOrReuse(ctx context.Context, in CreateUserInput) (string, error) {
	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return "", NewError(CodeStorage, "Failed to check existing user: "+err.Error())
	}
	if existing != nil {
		return existing.ID, nil
	}
	return s.Create(ctx, in)
}
