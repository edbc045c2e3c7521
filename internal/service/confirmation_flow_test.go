package service

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/tasks"
)

// memoryUserRepository is a map-backed UserRepository for flow tests.
type memoryUserRepository struct {
	nextID uint
	users  map[string]*model.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{nextID: 1, users: map[string]*model.User{}}
}

func (r *memoryUserRepository) CreateUnique(_ context.Context, user *model.User) error {
	if _, exists := r.users[user.Email]; exists {
		return apperrors.ErrDuplicateEmail
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uint) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryUserRepository) Save(_ context.Context, user *model.User) error {
	for email, u := range r.users {
		if u.ID == user.ID {
			if email != user.Email {
				delete(r.users, email)
			}
			copied := *user
			r.users[user.Email] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// recordingMailer captures sent messages.
type recordingMailer struct {
	to       []string
	subjects []string
	bodies   []string
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.to = append(m.to, to)
	m.subjects = append(m.subjects, subject)
	m.bodies = append(m.bodies, body)
	return nil
}

// inlineDispatcher runs the worker-side handler synchronously, standing in
// for the redis queue.
type inlineDispatcher struct {
	handler *tasks.Handler
}

func (d *inlineDispatcher) EnqueueConfirmationEmail(ctx context.Context, email string) error {
	task, err := tasks.NewConfirmationEmailTask(email)
	if err != nil {
		return err
	}
	return d.handler.ProcessTask(ctx, task)
}

func TestRegistrationToConfirmationFlow(t *testing.T) {
	ctx := context.Background()

	repo := newMemoryUserRepository()
	codes := newFakeCodeStore()
	mailer := &recordingMailer{}
	dispatcher := &inlineDispatcher{handler: tasks.NewHandler(codes, mailer)}

	svc := NewUserService(repo, codes, dispatcher)

	created, err := svc.Register(ctx, RegisterInput{
		FullName:        "Николай",
		Email:           "nick@gmail.com",
		Password:        "kLmN0PzzZ",
		PasswordConfirm: "kLmN0PzzZ",
	})
	require.NoError(t, err)
	assert.Equal(t, &RegisteredUser{FullName: "Николай", Email: "nick@gmail.com"}, created)

	// The task ran: a code is live under the email and the mail contains it.
	code, ok := codes.Get(ctx, "nick@gmail.com")
	require.True(t, ok)
	require.Len(t, mailer.to, 1)
	assert.Equal(t, "nick@gmail.com", mailer.to[0])
	assert.Equal(t, "Письмо с подтверждением регистрации", mailer.subjects[0])
	assert.Contains(t, mailer.bodies[0], code)

	user, err := repo.FindByEmail(ctx, "nick@gmail.com")
	require.NoError(t, err)
	assert.False(t, user.EmailConfirmed)

	// A wrong 6-digit value is rejected.
	wrong, _ := strconv.Atoi(code)
	if wrong == 999999 {
		wrong--
	} else {
		wrong++
	}
	_, err = svc.ConfirmEmail(ctx, user, wrong)
	assert.Error(t, err)
	assert.False(t, user.EmailConfirmed)

	// The mailed code confirms the account.
	submitted, err := strconv.Atoi(strings.TrimSpace(code))
	require.NoError(t, err)
	message, err := svc.ConfirmEmail(ctx, user, submitted)
	require.NoError(t, err)
	assert.Equal(t, "nick@gmail.com подтвержден.", message)

	stored, err := repo.FindByEmail(ctx, "nick@gmail.com")
	require.NoError(t, err)
	assert.True(t, stored.EmailConfirmed)

	// Second registration with the same email fails and leaves the record alone.
	_, err = svc.Register(ctx, RegisterInput{
		FullName:        "Кто-то другой",
		Email:           "nick@gmail.com",
		Password:        "kLmN0PzzZ",
		PasswordConfirm: "kLmN0PzzZ",
	})
	assert.Error(t, err)
	again, err := repo.FindByEmail(ctx, "nick@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "Николай", again.FullName)
	assert.True(t, again.EmailConfirmed)
	assert.Len(t, mailer.to, 1)
}
