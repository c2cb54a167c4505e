package usecase

import (
	"context"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/internal/infrastructure/firebase"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
)

type UserUseCase struct {
	userRepo   repository.UserRepository
	authClient *firebase.FirebaseAuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, authClient *firebase.FirebaseAuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		authClient: authClient,
	}
}

type UpdateProfileInput struct {
	DisplayName *string
	PhotoURL    *string
	Location    *string
	Bio         *string
}

// GetMe returns the caller's profile, creating it from the identity
// provider's record on first access.
func (uc *UserUseCase) GetMe(ctx context.Context, uid string) (*entity.UserProfile, error) {
	profile, err := uc.userRepo.GetByUID(ctx, uid)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	record, err := uc.authClient.GetUser(ctx, uid)
	if err != nil {
		return nil, errors.Internal("Failed to load identity record", err)
	}

	profile = &entity.UserProfile{
		UID:         uid,
		Email:       record.Email,
		DisplayName: record.DisplayName,
		PhotoURL:    record.PhotoURL,
		IsVerified:  record.EmailVerified,
	}

	if err := uc.userRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	logger.Info("Created profile for user %s", uid)

	return profile, nil
}

func (uc *UserUseCase) UpdateMe(ctx context.Context, uid string, input UpdateProfileInput) (*entity.UserProfile, error) {
	profile, err := uc.GetMe(ctx, uid)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		profile.DisplayName = *input.DisplayName
	}
	if input.PhotoURL != nil {
		profile.PhotoURL = *input.PhotoURL
	}
	if input.Location != nil {
		profile.Location = *input.Location
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}

	if err := uc.userRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// GetProfile is the public view of another user's profile.
func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.UserProfile, error) {
	return uc.userRepo.GetByUID(ctx, uid)
}
