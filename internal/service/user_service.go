package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"social-service/internal/models"
	"social-service/internal/repository"
	"social-service/pkg/response"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	profilePictureFolder = "profile_picture"
	coverImageFolder     = "cover_image"
	presignExpiry        = 15 * time.Minute
)

// ImageStore is the object-storage surface the user service needs.
type ImageStore interface {
	UploadImage(ctx context.Context, username, folder string, file *multipart.FileHeader) (string, error)
	PresignedLink(ctx context.Context, key string, expiry time.Duration) (string, error)
	RemoveObject(ctx context.Context, key string) error
}

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserPrivatePayload, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	GetPublicByUsername(ctx context.Context, username string) (*models.UserPublicPayload, error)
	GetPrivateByUsername(ctx context.Context, username string) (*models.UserPrivatePayload, error)
	GetByEmail(ctx context.Context, email string) (*models.UserPrivatePayload, error)
	SaveProfilePicture(ctx context.Context, username string, file *multipart.FileHeader) (*response.Payload, error)
	GetProfilePictureLink(ctx context.Context, username string) (string, error)
	RemoveProfilePicture(ctx context.Context, username string) (*response.Payload, error)
	SaveCoverImage(ctx context.Context, username string, file *multipart.FileHeader) (*response.Payload, error)
	GetCoverImageLink(ctx context.Context, username string) (string, error)
	RemoveCoverImage(ctx context.Context, username string) (*response.Payload, error)
}

type userService struct {
	repo       repository.UserRepository
	images     ImageStore
	jwtSecret  string
	jwtExpires time.Duration
}

func NewUserService(repo repository.UserRepository, images ImageStore, jwtSecret string, jwtExpires time.Duration) UserService {
	return &userService{
		repo:       repo,
		images:     images,
		jwtSecret:  jwtSecret,
		jwtExpires: jwtExpires,
	}
}

func (s *userService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.jwtExpires).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserPrivatePayload, error) {
	if existing, _ := s.repo.FindByEmail(ctx, req.Email); existing != nil {
		return nil, response.NewError(http.StatusBadRequest, "Email already in use")
	}
	if existing, _ := s.repo.FindByUsername(ctx, req.Username); existing != nil {
		return nil, response.NewError(http.StatusBadRequest, "Username already in use")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: string(hashedPassword),
		Role:     "USER",
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return privatePayload(user), nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", response.NewError(http.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", response.NewError(http.StatusUnauthorized, "Invalid credentials")
	}
	return s.generateJWT(user)
}

func (s *userService) findByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewError(http.StatusNotFound,
				fmt.Sprintf("User with username %s not found", username))
		}
		return nil, fmt.Errorf("looking up user %s: %w", username, err)
	}
	return user, nil
}

func (s *userService) GetPublicByUsername(ctx context.Context, username string) (*models.UserPublicPayload, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return &models.UserPublicPayload{
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) GetPrivateByUsername(ctx context.Context, username string) (*models.UserPrivatePayload, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return privatePayload(user), nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.UserPrivatePayload, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewError(http.StatusNotFound,
				fmt.Sprintf("User with email %s not found", email))
		}
		return nil, fmt.Errorf("looking up user by email: %w", err)
	}
	return privatePayload(user), nil
}

func (s *userService) SaveProfilePicture(ctx context.Context, username string, file *multipart.FileHeader) (*response.Payload, error) {
	return s.saveImage(ctx, username, profilePictureFolder, file)
}

func (s *userService) SaveCoverImage(ctx context.Context, username string, file *multipart.FileHeader) (*response.Payload, error) {
	return s.saveImage(ctx, username, coverImageFolder, file)
}

func (s *userService) saveImage(ctx context.Context, username, folder string, file *multipart.FileHeader) (*response.Payload, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	key, err := s.images.UploadImage(ctx, username, folder, file)
	if err != nil {
		return nil, fmt.Errorf("uploading image: %w", err)
	}

	// Replace the previous object after a successful upload.
	var previous string
	if folder == profilePictureFolder {
		previous = user.ProfilePictureKey
		user.ProfilePictureKey = key
	} else {
		previous = user.CoverImageKey
		user.CoverImageKey = key
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user image key: %w", err)
	}
	if previous != "" {
		if err := s.images.RemoveObject(ctx, previous); err != nil {
			// The new image is already live; losing the old object only
			// leaks storage.
			return response.Ok(fmt.Sprintf("Image uploaded at key %s (previous object not removed)", key)), nil
		}
	}

	return response.Ok(fmt.Sprintf("Image uploaded at key %s", key)), nil
}

func (s *userService) GetProfilePictureLink(ctx context.Context, username string) (string, error) {
	return s.imageLink(ctx, username, profilePictureFolder)
}

func (s *userService) GetCoverImageLink(ctx context.Context, username string) (string, error) {
	return s.imageLink(ctx, username, coverImageFolder)
}

func (s *userService) imageLink(ctx context.Context, username, folder string) (string, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	key := user.ProfilePictureKey
	if folder == coverImageFolder {
		key = user.CoverImageKey
	}
	if key == "" {
		return "", response.NewError(http.StatusNotFound,
			fmt.Sprintf("No image found (for %s)", username))
	}

	link, err := s.images.PresignedLink(ctx, key, presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning image link: %w", err)
	}
	return link, nil
}

func (s *userService) RemoveProfilePicture(ctx context.Context, username string) (*response.Payload, error) {
	return s.removeImage(ctx, username, profilePictureFolder)
}

func (s *userService) RemoveCoverImage(ctx context.Context, username string) (*response.Payload, error) {
	return s.removeImage(ctx, username, coverImageFolder)
}

func (s *userService) removeImage(ctx context.Context, username, folder string) (*response.Payload, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	var key string
	if folder == profilePictureFolder {
		key = user.ProfilePictureKey
		user.ProfilePictureKey = ""
	} else {
		key = user.CoverImageKey
		user.CoverImageKey = ""
	}
	if key == "" {
		return nil, response.NewError(http.StatusNotFound,
			fmt.Sprintf("No image found (for %s)", username))
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("clearing user image key: %w", err)
	}
	if err := s.images.RemoveObject(ctx, key); err != nil {
		return nil, fmt.Errorf("removing image object: %w", err)
	}

	return response.Ok(fmt.Sprintf("Image removed (for %s)", username)), nil
}

func privatePayload(user *models.User) *models.UserPrivatePayload {
	return &models.UserPrivatePayload{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
