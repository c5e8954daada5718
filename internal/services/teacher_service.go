package services

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"homeschool/internal/apperrors"
	"homeschool/internal/models"
	"homeschool/internal/repositories"
	"homeschool/internal/storage"
)

type TeacherService struct {
	userRepo *repositories.UserRepository
	store    storage.Store
}

func NewTeacherService(userRepo *repositories.UserRepository, store storage.Store) *TeacherService {
	return &TeacherService{userRepo: userRepo, store: store}
}

func (s *TeacherService) Get(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("teacher")
	}
	return user, nil
}

type UpdateTeacherInput struct {
	FirstName *string
	LastName  *string
}

func (s *TeacherService) Update(id uuid.UUID, input UpdateTeacherInput) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	user.Prepare()

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetProfileImage stores the uploaded image and records its URL.
func (s *TeacherService) SetProfileImage(ctx context.Context, id uuid.UUID, fileName string, r io.Reader) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("profiles/%s/%s%s", id, uuid.NewString(), path.Ext(fileName))
	url, err := s.store.Upload(ctx, key, r)
	if err != nil {
		return nil, err
	}

	user.ProfileImageURL = &url
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
