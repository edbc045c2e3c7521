package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "bookshelf/internal/errors"
	"bookshelf/internal/model"
)

// MockBookRepository is a mock implementation of BookRepository.
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookRepository) Save(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestBookService_CRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Book")).Return(nil)

		svc := NewBookService(mockRepo, nil)
		created, err := svc.CreateBook(ctx, &model.Book{Author: "Достоевский", Title: "Идиот"})

		assert.NoError(t, err)
		assert.Equal(t, "Идиот", created.Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("get missing maps to not found", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewBookService(mockRepo, nil)
		_, err := svc.GetBook(ctx, 42)

		assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
	})

	t.Run("list", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("List", mock.Anything).Return([]model.Book{
			{ID: 1, Author: "Достоевский", Title: "Идиот"},
			{ID: 2, Author: "Толстой", Title: "Война и мир"},
		}, nil)

		svc := NewBookService(mockRepo, nil)
		books, err := svc.ListBooks(ctx)

		assert.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("update", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).
			Return(&model.Book{ID: 1, Author: "Достоевский", Title: "Идиот"}, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Book")).Return(nil)

		author := "Ф. М. Достоевский"
		title := "Идиот"

		svc := NewBookService(mockRepo, nil)
		updated, err := svc.UpdateBook(ctx, 1, &author, &title)

		assert.NoError(t, err)
		assert.Equal(t, "Ф. М. Достоевский", updated.Author)
		mockRepo.AssertExpectations(t)
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).
			Return(&model.Book{ID: 1, Author: "Достоевский", Title: "Идиот"}, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Book")).Return(nil)

		title := "Бесы"

		svc := NewBookService(mockRepo, nil)
		updated, err := svc.UpdateBook(ctx, 1, nil, &title)

		assert.NoError(t, err)
		assert.Equal(t, "Достоевский", updated.Author)
		assert.Equal(t, "Бесы", updated.Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("delete missing maps to not found", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewBookService(mockRepo, nil)
		assert.ErrorIs(t, svc.DeleteBook(ctx, 42), apperrors.ErrBookNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).
			Return(&model.Book{ID: 1, Author: "Достоевский", Title: "Идиот"}, nil)
		mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

		svc := NewBookService(mockRepo, nil)
		assert.NoError(t, svc.DeleteBook(ctx, 1))
		mockRepo.AssertExpectations(t)
	})
}
