package service

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/unilife-dev/unilife/internal/domain"
	"github.com/unilife-dev/unilife/internal/errors"
	"github.com/unilife-dev/unilife/internal/identity"
	"github.com/unilife-dev/unilife/internal/jwt"
	"github.com/unilife-dev/unilife/internal/logger"
)

// Directory resolves users by identity key. Index builds the
// key -> user map once per request for bulk joins (feed enrichment),
// avoiding one full scan per record.
type Directory interface {
	ByIdentity(raw string) (domain.User, error)
	Index() map[identity.Key]domain.User
}

type UserService interface {
	Directory
	Register(data RegistrationData) (domain.User, error)
	Login(email, password string) (domain.User, string, error)
	SetAvatar(raw string, avatarPath string) (domain.User, error)
}

type RegistrationData struct {
	Nickname string
	Email    string
	Password string
	Area     string
	Degree   string
}

type UserStorage interface {
	LoadUsers() []domain.User
	UpdateUsers(fn func([]domain.User) ([]domain.User, error)) error
}

type Users struct {
	storage UserStorage
	jwt     jwt.Service
}

func NewUsers(storage UserStorage, jwt jwt.Service) *Users {
	return &Users{storage: storage, jwt: jwt}
}

// Register creates an account. Uniqueness is keyed on the normalized
// email and checked inside the collection's update cycle, since the
// store itself enforces nothing.
func (s *Users) Register(data RegistrationData) (domain.User, error) {
	email := identity.Normalize(data.Email)
	if email == "" || data.Password == "" {
		return domain.User{}, &errors.ErrorWithStatusCode{Message: "Email and password are required", StatusCode: http.StatusBadRequest}
	}

	nickname := strings.TrimSpace(data.Nickname)
	if nickname == "" {
		nickname, _, _ = strings.Cut(email, "@")
	}

	user := domain.User{
		Id:       uuid.NewString(),
		Nickname: nickname,
		Email:    email,
		Password: data.Password, // stored as-is, login compares plain equality
		Area:     data.Area,
		Degree:   data.Degree,
	}

	err := s.storage.UpdateUsers(func(users []domain.User) ([]domain.User, error) {
		for _, u := range users {
			if identity.Normalize(u.Email) == email {
				return nil, &errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusConflict}
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return domain.User{}, err
	}

	logger.Log.Info("user registered", "email", email)
	return user, nil
}

// Login matches credentials and mints a session token carrying the
// normalized identity key.
func (s *Users) Login(email, password string) (domain.User, string, error) {
	key := identity.Normalize(email)

	for _, u := range s.storage.LoadUsers() {
		if identity.Normalize(u.Email) == key && u.Password == password {
			token, err := s.jwt.NewToken(key)
			if err != nil {
				return domain.User{}, "", err
			}
			return u, token, nil
		}
	}
	return domain.User{}, "", &errors.ErrorWithStatusCode{Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
}

func (s *Users) ByIdentity(raw string) (domain.User, error) {
	key := identity.Normalize(raw)
	if key != "" {
		for _, u := range s.storage.LoadUsers() {
			if identity.Normalize(u.Email) == key {
				return u, nil
			}
		}
	}
	return domain.User{}, &errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
}

func (s *Users) Index() map[identity.Key]domain.User {
	users := s.storage.LoadUsers()
	index := make(map[identity.Key]domain.User, len(users))
	for _, u := range users {
		index[identity.Normalize(u.Email)] = u
	}
	return index
}

func (s *Users) SetAvatar(raw string, avatarPath string) (domain.User, error) {
	key := identity.Normalize(raw)
	if key == "" {
		return domain.User{}, &errors.ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized}
	}

	var updated domain.User
	err := s.storage.UpdateUsers(func(users []domain.User) ([]domain.User, error) {
		for i, u := range users {
			if identity.Normalize(u.Email) == key {
				users[i].AvatarPath = avatarPath
				updated = users[i]
				return users, nil
			}
		}
		return nil, &errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
	})
	if err != nil {
		return domain.User{}, err
	}
	return updated, nil
}
