package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bookshelf/internal/confirm"
	apperrors "bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/repository"
	"bookshelf/internal/tasks"
	"bookshelf/internal/validation"
)

const bcryptCost = 10

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	FullName        string
	Email           string
	Password        string
	PasswordConfirm string
}

// RegisteredUser is the public projection returned after registration.
type RegisteredUser struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// UpdateProfileInput carries a partial profile update; nil means unchanged.
type UpdateProfileInput struct {
	FullName *string
	Email    *string
}

// UserService covers registration, email confirmation and profile management.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisteredUser, error)
	ConfirmEmail(ctx context.Context, user *model.User, code int) (string, error)
	ChangePassword(ctx context.Context, user *model.User, old, newPassword, newPasswordConfirm string) (string, error)
	UpdateProfile(ctx context.Context, user *model.User, in UpdateProfileInput) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type userService struct {
	repo       repository.UserRepository
	codes      confirm.Store
	dispatcher tasks.Dispatcher
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, codes confirm.Store, dispatcher tasks.Dispatcher) UserService {
	return &userService{repo: repo, codes: codes, dispatcher: dispatcher}
}

// Register validates the form as a whole, creates the user in unconfirmed
// state and queues the confirmation email. All invalid fields are reported
// together. The response never waits on the email being sent.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*RegisteredUser, error) {
	fieldErrs := validation.Errors{}

	if in.FullName == "" {
		fieldErrs.Add("full_name", validation.MsgRequired)
	}

	switch {
	case in.Email == "":
		fieldErrs.Add("email", validation.MsgRequired)
	case !validation.ValidEmail(in.Email):
		fieldErrs.Add("email", validation.MsgEmailInvalid)
	default:
		if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
			fieldErrs.Add("email", validation.MsgEmailTaken)
		}
	}

	switch {
	case in.Password == "":
		fieldErrs.Add("password", validation.MsgRequired)
	case !validation.ValidPassword(in.Password):
		fieldErrs.Add("password", validation.MsgPasswordPolicy)
	}
	if in.Password != in.PasswordConfirm {
		fieldErrs.Add("password", validation.MsgPasswordMismatch)
	}

	if !fieldErrs.Empty() {
		return nil, fieldErrs
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FullName:       in.FullName,
		Email:          in.Email,
		PasswordHash:   string(hashed),
		EmailConfirmed: false,
		IsActive:       true,
	}

	// The unique index is the real uniqueness check; the FindByEmail above
	// only exists so the failure aggregates with the other field errors.
	if err := s.repo.CreateUnique(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			return nil, validation.Errors{"email": {validation.MsgEmailTaken}}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Fire-and-forget: a dispatch failure must not roll back the creation.
	if err := s.dispatcher.EnqueueConfirmationEmail(ctx, user.Email); err != nil {
		log.Printf("enqueue confirmation email for %s: %v", user.Email, err)
	}

	return &RegisteredUser{FullName: user.FullName, Email: user.Email}, nil
}

// ConfirmEmail flips the user to confirmed when the submitted code matches
// the live code stored under the user's email. Absent, expired and wrong
// codes are indistinguishable to the caller. Re-confirming with a still-valid
// code succeeds again.
func (s *userService) ConfirmEmail(ctx context.Context, user *model.User, code int) (string, error) {
	if code < confirm.CodeMin || code > confirm.CodeMax {
		return "", validation.Errors{"code": {validation.MsgInvalidCode}}
	}

	stored, ok := s.codes.Get(ctx, user.Email)
	if !ok || stored != strconv.Itoa(code) {
		return "", validation.Errors{"code": {validation.MsgInvalidCode}}
	}

	user.EmailConfirmed = true
	if err := s.repo.Save(ctx, user); err != nil {
		return "", fmt.Errorf("save user: %w", err)
	}
	return fmt.Sprintf("%s подтвержден.", user.Email), nil
}

// ChangePassword verifies the old password and replaces it with the new one.
func (s *userService) ChangePassword(ctx context.Context, user *model.User, old, newPassword, newPasswordConfirm string) (string, error) {
	fieldErrs := validation.Errors{}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(old)) != nil {
		fieldErrs.Add("password", validation.MsgWrongOldPassword)
	}
	if newPassword != "" && !validation.ValidPassword(newPassword) {
		fieldErrs.Add("new_password", validation.MsgPasswordPolicy)
	}
	if newPassword == "" || newPassword != newPasswordConfirm {
		fieldErrs.Add("message", validation.MsgNewPasswordMismatch)
	}
	if !fieldErrs.Empty() {
		return "", fieldErrs
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	if err := s.repo.Save(ctx, user); err != nil {
		return "", fmt.Errorf("save user: %w", err)
	}
	return "Пароль успешно изменен", nil
}

// UpdateProfile applies a partial update with the same email validation as
// registration.
func (s *userService) UpdateProfile(ctx context.Context, user *model.User, in UpdateProfileInput) (*model.User, error) {
	fieldErrs := validation.Errors{}

	if in.Email != nil && *in.Email != user.Email {
		switch {
		case !validation.ValidEmail(*in.Email):
			fieldErrs.Add("email", validation.MsgEmailInvalid)
		default:
			if _, err := s.repo.FindByEmail(ctx, *in.Email); err == nil {
				fieldErrs.Add("email", validation.MsgEmailTaken)
			}
		}
	}
	if !fieldErrs.Empty() {
		return nil, fieldErrs
	}

	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// FindByEmail resolves a user record, typically from token claims.
func (s *userService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
