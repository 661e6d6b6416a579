package user

import (
	"context"
	"errors"
	"fmt"
	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils"
	"foodgram/internal/utils/mailing"
	"foodgram/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Logout(ctx context.Context, token string) error
		SetPassword(ctx context.Context, req domain.SetPasswordRequest, userID uuid.UUID) error
		Me(ctx context.Context, userID uuid.UUID) (domain.User, error)
		GetUser(ctx context.Context, viewer domain.Viewer, id uuid.UUID) (domain.User, error)
		GetUsers(ctx context.Context, viewer domain.Viewer, page domain.Pagination) (domain.Page[domain.User], error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, mailer mailing.Mailer) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	fields := map[string]string{}

	if !utils.ValidUsername(req.Username) {
		fields["username"] = "invalid username"
	} else if exists, err := s.userRepository.UsernameExists(ctx, req.Username); err != nil {
		return domain.User{}, err
	} else if exists {
		fields["username"] = "a user with this username is already registered"
	}

	if exists, err := s.userRepository.EmailExists(ctx, req.Email); err != nil {
		return domain.User{}, err
	} else if exists {
		fields["email"] = "a user with this email is already registered"
	}

	if len(fields) > 0 {
		return domain.User{}, domain.NewValidationError(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := &entities.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		// A concurrent registration won the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.User{}, domain.NewValidationError(map[string]string{
				"email": "a user with this email or username is already registered",
			})
		}
		return domain.User{}, err
	}

	body := fmt.Sprintf("<p>Hello, %s!</p><p>Your Foodgram account <b>%s</b> is ready.</p>", user.FirstName, user.Username)
	if err := s.mailer.SendMail(user.Email, "Welcome to Foodgram", body); err != nil {
		log.Warnf("failed to send welcome mail to %s: %v", user.Email, err)
	}

	return ToUser(user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	return domain.LoginResponse{AuthToken: token}, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrTokenNotFound
	}
	return s.jwtService.RevokeToken(ctx, token)
}

func (s *userService) SetPassword(ctx context.Context, req domain.SetPasswordRequest, userID uuid.UUID) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrWrongCurrentPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, userID, string(hash))
}

func (s *userService) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	return ToUser(user, false), nil
}

func (s *userService) GetUser(ctx context.Context, viewer domain.Viewer, id uuid.UUID) (domain.User, error) {
	if viewer.IsAnonymous() {
		return domain.User{}, domain.ErrTokenNotFound
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	followed, err := s.userRepository.FollowedAuthorIDs(ctx, viewer.UserID, []uuid.UUID{id})
	if err != nil {
		return domain.User{}, err
	}
	return ToUser(user, followed[id]), nil
}

func (s *userService) GetUsers(ctx context.Context, viewer domain.Viewer, page domain.Pagination) (domain.Page[domain.User], error) {
	page = page.Normalize(6)
	users, count, err := s.userRepository.GetUsers(ctx, page.Limit, page.Offset)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}

	followed := map[uuid.UUID]bool{}
	if !viewer.IsAnonymous() {
		ids := make([]uuid.UUID, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		followed, err = s.userRepository.FollowedAuthorIDs(ctx, viewer.UserID, ids)
		if err != nil {
			return domain.Page[domain.User]{}, err
		}
	}

	result := make([]domain.User, 0, len(users))
	for _, u := range users {
		result = append(result, ToUser(u, followed[u.ID]))
	}
	return domain.Page[domain.User]{Count: count, Results: result}, nil
}

func (s *userService) getUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ToUser projects an entity for a viewer whose subscription state is known.
func ToUser(u *entities.User, subscribed bool) domain.User {
	return domain.User{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}
