package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessRegister      = "account registered successfully"
	MessageSuccessLogin         = "login successful"
	MessageSuccessGetProfile    = "store profile retrieved successfully"
	MessageSuccessUpdateProfile = "store profile updated successfully"
	MessageSuccessUploadLogo    = "store logo uploaded successfully"

	MessageFailedRegister      = "failed to register account"
	MessageFailedLogin         = "failed to login"
	MessageFailedGetProfile    = "failed to retrieve store profile"
	MessageFailedUpdateProfile = "failed to update store profile"
	MessageFailedUploadLogo    = "failed to upload store logo"

	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrInvalidRole          = errors.New("invalid role")
	ErrCredentialsInvalid   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrStoreProfileNotFound = errors.New("store profile not found")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Name     string `json:"name" validate:"required"`
		Role     string `json:"role" validate:"required,oneof=STORE CUSTOMER"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
		Name  string `json:"name"`
	}

	UpdateStoreProfileRequest struct {
		StoreName           string `json:"store_name" validate:"omitempty"`
		Address             string `json:"address" validate:"omitempty"`
		ContactNumber       string `json:"contact_number" validate:"omitempty"`
		NotifyDaysInAdvance *int   `json:"notify_days_in_advance" validate:"omitempty,min=0"`
	}

	UploadStoreLogoRequest struct {
		Logo *multipart.FileHeader `json:"logo" form:"logo" validate:"required"`
	}

	StoreProfileResponse struct {
		StoreName           string `json:"store_name"`
		Address             string `json:"address"`
		ContactNumber       string `json:"contact_number"`
		LogoURL             string `json:"logo_url,omitempty"`
		NotifyDaysInAdvance int    `json:"notify_days_in_advance"`
	}
)
