package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"warranty-hub-backend/domain"
	"warranty-hub-backend/entities"
	"warranty-hub-backend/internal/utils/mailing"
	"warranty-hub-backend/internal/utils/storage"
	"warranty-hub-backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetStoreProfile(ctx context.Context, userID string) (domain.StoreProfileResponse, error)
		UpdateStoreProfile(ctx context.Context, userID string, req domain.UpdateStoreProfileRequest) (domain.StoreProfileResponse, error)
		UploadStoreLogo(ctx context.Context, userID string, req domain.UploadStoreLogoRequest) (domain.StoreProfileResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		s3             storage.AwsS3
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, s3 storage.AwsS3) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		s3:             s3,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	if req.Role != domain.RoleStore && req.Role != domain.RoleCustomer {
		return domain.RegisterResponse{}, domain.ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepository.CheckEmailExists(ctx, email)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if exists {
		return domain.RegisterResponse{}, domain.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	newUser := &entities.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		Name:     req.Name,
		Role:     req.Role,
	}
	if err := s.userRepository.CreateUser(ctx, newUser); err != nil {
		return domain.RegisterResponse{}, err
	}

	if newUser.Role == domain.RoleStore {
		profile := &entities.StoreProfile{
			ID:                  uuid.New(),
			UserID:              newUser.ID,
			StoreName:           newUser.Name,
			NotifyDaysInAdvance: domain.DefaultNotifyDays,
		}
		if err := s.userRepository.CreateStoreProfile(ctx, profile); err != nil {
			return domain.RegisterResponse{}, err
		}
	}

	// Welcome mail is fire-and-forget: account creation must not depend on
	// transport availability.
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your account has been created. Welcome to Warranty Hub.</p>",
		newUser.Name,
	)
	mailing.SendMailAsync(newUser.Email, "Welcome to Warranty Hub", body)

	return domain.RegisterResponse{
		ID:    newUser.ID.String(),
		Email: newUser.Email,
		Name:  newUser.Name,
		Role:  newUser.Role,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	account, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(account.ID.String(), account.Role)
	return domain.LoginResponse{
		Token: token,
		Role:  account.Role,
		Name:  account.Name,
	}, nil
}

func (s *userService) GetStoreProfile(ctx context.Context, userID string) (domain.StoreProfileResponse, error) {
	profile, err := s.userRepository.GetStoreProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.StoreProfileResponse{}, domain.ErrStoreProfileNotFound
		}
		return domain.StoreProfileResponse{}, err
	}
	return mapStoreProfile(profile), nil
}

func (s *userService) UpdateStoreProfile(ctx context.Context, userID string, req domain.UpdateStoreProfileRequest) (domain.StoreProfileResponse, error) {
	profile, err := s.userRepository.GetStoreProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.StoreProfileResponse{}, domain.ErrStoreProfileNotFound
		}
		return domain.StoreProfileResponse{}, err
	}

	if req.StoreName != "" {
		profile.StoreName = req.StoreName
	}
	if req.Address != "" {
		profile.Address = req.Address
	}
	if req.ContactNumber != "" {
		profile.ContactNumber = req.ContactNumber
	}
	if req.NotifyDaysInAdvance != nil {
		profile.NotifyDaysInAdvance = *req.NotifyDaysInAdvance
	}

	if err := s.userRepository.UpdateStoreProfile(ctx, profile); err != nil {
		return domain.StoreProfileResponse{}, err
	}
	return mapStoreProfile(profile), nil
}

func (s *userService) UploadStoreLogo(ctx context.Context, userID string, req domain.UploadStoreLogoRequest) (domain.StoreProfileResponse, error) {
	profile, err := s.userRepository.GetStoreProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.StoreProfileResponse{}, domain.ErrStoreProfileNotFound
		}
		return domain.StoreProfileResponse{}, err
	}

	var objectKey string
	if existing := s.s3.GetObjectKeyFromLink(profile.LogoURL); existing != "" {
		objectKey, err = s.s3.UpdateFile(existing, req.Logo, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile("store-logo-"+userID, req.Logo, "store-logos", storage.AllowImage...)
	}
	if err != nil {
		return domain.StoreProfileResponse{}, err
	}

	profile.LogoURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.userRepository.UpdateStoreProfile(ctx, profile); err != nil {
		return domain.StoreProfileResponse{}, err
	}
	return mapStoreProfile(profile), nil
}

func mapStoreProfile(profile *entities.StoreProfile) domain.StoreProfileResponse {
	return domain.StoreProfileResponse{
		StoreName:           profile.StoreName,
		Address:             profile.Address,
		ContactNumber:       profile.ContactNumber,
		LogoURL:             profile.LogoURL,
		NotifyDaysInAdvance: profile.NotifyDaysInAdvance,
	}
}
