package account

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lms-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/lms-platform/internal/lib/password"
	"github.com/magabrotheeeer/lms-platform/internal/lib/validation"
	"github.com/magabrotheeeer/lms-platform/internal/models"
	"github.com/magabrotheeeer/lms-platform/internal/storage"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateAccount(ctx context.Context, user models.User, activationKey string) (string, error) {
	args := m.Called(ctx, user, activationKey)
	return args.String(0), args.Error(1)
}

func (m *mockRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) GetRegistrationByKey(ctx context.Context, activationKey string) (*models.Registration, error) {
	args := m.Called(ctx, activationKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Registration), args.Error(1)
}

func (m *mockRepository) ActivateUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *mockRepository) CreatePasswordResetToken(ctx context.Context, username, token string) error {
	args := m.Called(ctx, username, token)
	return args.Error(0)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendPasswordResetLink(email, username, link string) error {
	args := m.Called(email, username, link)
	return args.Error(0)
}

type mockMaker struct {
	mock.Mock
}

func (m *mockMaker) GenerateToken(username, email string) (string, error) {
	args := m.Called(username, email)
	return args.String(0), args.Error(1)
}

func (m *mockMaker) ParseToken(tokenStr string) (*jwt.CustomClaims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.CustomClaims), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateAccount(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		password   string
		email      string
		setupMock  func(repo *mockRepository)
		wantErr    error
		wantKeySet bool
	}{
		{
			name:     "Успешное создание",
			username: "frank",
			password: "totally-secret",
			email:    "frank@example.com",
			setupMock: func(repo *mockRepository) {
				repo.On("CreateAccount", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Username == "frank" && u.Email == "frank@example.com" && !u.IsActive
				}), mock.AnythingOfType("string")).Return("uid-1", nil)
			},
			wantKeySet: true,
		},
		{
			name:     "Слишком короткое имя пользователя",
			username: "a",
			password: "secret",
			email:    "a@example.com",
			wantErr:  validation.ErrUsernameInvalid,
		},
		{
			name:     "Пароль совпадает с именем пользователя",
			username: "frank",
			password: "frank",
			email:    "frank@example.com",
			wantErr:  validation.ErrPasswordInvalid,
		},
		{
			name:     "Первой сообщается ошибка имени пользователя",
			username: "тест",
			password: "",
			email:    "not-an-email",
			wantErr:  validation.ErrUsernameInvalid,
		},
		{
			name:     "Некорректная почта",
			username: "frank",
			password: "secret",
			email:    "not-an-email",
			wantErr:  validation.ErrEmailInvalid,
		},
		{
			name:     "Имя или почта уже заняты",
			username: "frank",
			password: "secret",
			email:    "frank@example.com",
			setupMock: func(repo *mockRepository) {
				repo.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything).
					Return("", storage.ErrConflict)
			},
			wantErr: ErrAccountExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}
			svc := New(repo, nil, nil, discardLogger())

			key, err := svc.CreateAccount(context.Background(), tt.username, tt.password, tt.email)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tt.wantKeySet {
				assert.NotEmpty(t, key)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestCheckAccountExists(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		email     string
		setupMock func(repo *mockRepository)
		want      []string
	}{
		{
			name:     "Оба поля свободны",
			username: "frank",
			email:    "frank@example.com",
			setupMock: func(repo *mockRepository) {
				repo.On("EmailExists", mock.Anything, "frank@example.com").Return(false, nil)
				repo.On("UsernameExists", mock.Anything, "frank").Return(false, nil)
			},
			want: nil,
		},
		{
			name:     "Занята только почта",
			username: "frank",
			email:    "frank@example.com",
			setupMock: func(repo *mockRepository) {
				repo.On("EmailExists", mock.Anything, "frank@example.com").Return(true, nil)
				repo.On("UsernameExists", mock.Anything, "frank").Return(false, nil)
			},
			want: []string{"email"},
		},
		{
			name:     "Заняты оба поля",
			username: "frank",
			email:    "frank@example.com",
			setupMock: func(repo *mockRepository) {
				repo.On("EmailExists", mock.Anything, "frank@example.com").Return(true, nil)
				repo.On("UsernameExists", mock.Anything, "frank").Return(true, nil)
			},
			want: []string{"email", "username"},
		},
		{
			name:     "Пустые параметры не проверяются",
			username: "",
			email:    "",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}
			svc := New(repo, nil, nil, discardLogger())

			got, err := svc.CheckAccountExists(context.Background(), tt.username, tt.email)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			repo.AssertExpectations(t)
		})
	}
}

func TestActivateAccount(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		setupMock func(repo *mockRepository)
		wantErr   error
	}{
		{
			name: "Успешная активация",
			key:  "known-key",
			setupMock: func(repo *mockRepository) {
				repo.On("GetRegistrationByKey", mock.Anything, "known-key").
					Return(&models.Registration{Username: "frank", ActivationKey: "known-key"}, nil)
				repo.On("ActivateUser", mock.Anything, "frank").Return(nil)
			},
		},
		{
			name: "Неизвестный ключ",
			key:  "bogus",
			setupMock: func(repo *mockRepository) {
				repo.On("GetRegistrationByKey", mock.Anything, "bogus").
					Return(nil, storage.ErrNotFound)
			},
			wantErr: ErrNotAuthorized,
		},
		{
			name: "Повторная активация проходит успешно",
			key:  "used-key",
			setupMock: func(repo *mockRepository) {
				repo.On("GetRegistrationByKey", mock.Anything, "used-key").
					Return(&models.Registration{Username: "frank", ActivationKey: "used-key"}, nil)
				repo.On("ActivateUser", mock.Anything, "frank").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			tt.setupMock(repo)
			svc := New(repo, nil, nil, discardLogger())

			err := svc.ActivateAccount(context.Background(), tt.key)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestRequestPasswordChange(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		isSecure  bool
		setupMock func(repo *mockRepository, sender *mockSender)
		wantErr   error
	}{
		{
			name:  "Ссылка отправлена по http",
			email: "frank@example.com",
			setupMock: func(repo *mockRepository, sender *mockSender) {
				repo.On("GetUserByEmail", mock.Anything, "frank@example.com").
					Return(&models.User{Username: "frank", Email: "frank@example.com"}, nil)
				repo.On("CreatePasswordResetToken", mock.Anything, "frank", mock.AnythingOfType("string")).
					Return(nil)
				sender.On("SendPasswordResetLink", "frank@example.com", "frank", mock.MatchedBy(func(link string) bool {
					return len(link) > len("http://lms.example.com/password_reset_confirm/") &&
						link[:7] == "http://"
				})).Return(nil)
			},
		},
		{
			name:     "Ссылка отправлена по https",
			email:    "frank@example.com",
			isSecure: true,
			setupMock: func(repo *mockRepository, sender *mockSender) {
				repo.On("GetUserByEmail", mock.Anything, "frank@example.com").
					Return(&models.User{Username: "frank", Email: "frank@example.com"}, nil)
				repo.On("CreatePasswordResetToken", mock.Anything, "frank", mock.AnythingOfType("string")).
					Return(nil)
				sender.On("SendPasswordResetLink", "frank@example.com", "frank", mock.MatchedBy(func(link string) bool {
					return link[:8] == "https://"
				})).Return(nil)
			},
		},
		{
			name:  "Почта никому не принадлежит",
			email: "ghost@example.com",
			setupMock: func(repo *mockRepository, sender *mockSender) {
				repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
					Return(nil, storage.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			sender := new(mockSender)
			tt.setupMock(repo, sender)
			svc := New(repo, nil, sender, discardLogger())

			err := svc.RequestPasswordChange(context.Background(), tt.email, "lms.example.com", tt.isSecure)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
			sender.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := password.GetHash("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name      string
		username  string
		password  string
		setupMock func(repo *mockRepository, maker *mockMaker)
		wantToken string
		wantErr   error
	}{
		{
			name:     "Успешный вход",
			username: "frank",
			password: "correct-password",
			setupMock: func(repo *mockRepository, maker *mockMaker) {
				repo.On("GetUserByUsername", mock.Anything, "frank").
					Return(&models.User{Username: "frank", Email: "frank@example.com", PasswordHash: hash}, nil)
				maker.On("GenerateToken", "frank", "frank@example.com").Return("jwt-token", nil)
			},
			wantToken: "jwt-token",
		},
		{
			name:     "Неверный пароль",
			username: "frank",
			password: "wrong",
			setupMock: func(repo *mockRepository, maker *mockMaker) {
				repo.On("GetUserByUsername", mock.Anything, "frank").
					Return(&models.User{Username: "frank", PasswordHash: hash}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "Пользователь не найден",
			username: "ghost",
			password: "whatever",
			setupMock: func(repo *mockRepository, maker *mockMaker) {
				repo.On("GetUserByUsername", mock.Anything, "ghost").
					Return(nil, storage.ErrNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			maker := new(mockMaker)
			tt.setupMock(repo, maker)
			svc := New(repo, maker, nil, discardLogger())

			token, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}
			repo.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}
