package authenticating

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/buckii/bi-forecast-sub000/infrastructure/repository/mocks"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	userRepo := mocks.NewMockUserRepository(ctrl)
	cfg := &config.Config{
		Auth: config.Auth{
			Secret:           "test-secret",
			TokenTTLMinutes:  60,
			PasswordMinChars: 8,
		},
	}

	return &Service{userRepo: userRepo, cfg: cfg}, userRepo
}

func activeUser(password string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:           7,
		Name:         "Jordan",
		Email:        "jordan@buckii.com",
		PasswordHash: string(hash),
		Active:       true,
		RoleID:       RoleMember,
		CompanyID:    "comp-1",
	}
}

func TestService_LoginUser_IssuesValidToken(t *testing.T) {
	svc, userRepo := newTestService(t)

	userRepo.EXPECT().
		GetUserByEmail(gomock.Any(), "jordan@buckii.com").
		Return(activeUser("Sup3rSecret"), nil)

	token, err := svc.LoginUser(context.Background(), " Jordan@Buckii.com ", "Sup3rSecret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "comp-1", claims.CompanyID)
	assert.Equal(t, RoleMember, claims.UserRoleID)
}

func TestService_LoginUser_Failures(t *testing.T) {
	tests := []struct {
		name         string
		email        string
		password     string
		storedUser   *domain.User
		repoErr      error
		expectedCode string
		skipRepo     bool
	}{
		{
			name:         "missing credentials",
			email:        "",
			password:     "whatever",
			skipRepo:     true,
			expectedCode: ErrMissingRequiredData.Error(),
		},
		{
			name:         "unknown user",
			email:        "ghost@buckii.com",
			password:     "Sup3rSecret",
			storedUser:   nil,
			expectedCode: ErrUserNotFound.Error(),
		},
		{
			name:     "wrong password",
			email:    "jordan@buckii.com",
			password: "WrongPass1",
			storedUser: func() *domain.User {
				return activeUser("Sup3rSecret")
			}(),
			expectedCode: ErrInvalidCredentials.Error(),
		},
		{
			name:     "disabled account",
			email:    "jordan@buckii.com",
			password: "Sup3rSecret",
			storedUser: func() *domain.User {
				u := activeUser("Sup3rSecret")
				u.Active = false
				return u
			}(),
			expectedCode: ErrUserDisabled.Error(),
		},
		{
			name:     "deleted account",
			email:    "jordan@buckii.com",
			password: "Sup3rSecret",
			storedUser: func() *domain.User {
				u := activeUser("Sup3rSecret")
				u.Deleted = true
				return u
			}(),
			expectedCode: ErrUserNotFound.Error(),
		},
		{
			name:         "repository failure",
			email:        "jordan@buckii.com",
			password:     "Sup3rSecret",
			repoErr:      errors.New("connection refused"),
			expectedCode: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo := newTestService(t)

			if !tt.skipRepo {
				userRepo.EXPECT().
					GetUserByEmail(gomock.Any(), gomock.Any()).
					Return(tt.storedUser, tt.repoErr)
			}

			token, err := svc.LoginUser(context.Background(), tt.email, tt.password)

			assert.Empty(t, token)
			require.Error(t, err)

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Contains(t, err.Error(), tt.expectedCode)
		})
	}
}

func TestService_ValidateToken_RejectsTamperedToken(t *testing.T) {
	svc, userRepo := newTestService(t)

	userRepo.EXPECT().
		GetUserByEmail(gomock.Any(), gomock.Any()).
		Return(activeUser("Sup3rSecret"), nil)

	token, err := svc.LoginUser(context.Background(), "jordan@buckii.com", "Sup3rSecret")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token + "x")
	assert.Nil(t, claims)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestService_CreateUser(t *testing.T) {
	svc, userRepo := newTestService(t)

	userRepo.EXPECT().
		GetUserByEmail(gomock.Any(), "new@buckii.com").
		Return(nil, nil)
	userRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
			// The stored hash must verify against the original password and
			// never equal it
			assert.NotEqual(t, "Sup3rSecret", user.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Sup3rSecret")))
			assert.Equal(t, RoleMember, user.RoleID)

			created := *user
			created.ID = 42
			return &created, nil
		})

	created, err := svc.CreateUser(context.Background(), &domain.User{
		Name:         "New",
		Email:        "New@Buckii.com",
		PasswordHash: "Sup3rSecret",
		CompanyID:    "comp-1",
	})

	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)
	assert.Empty(t, created.PasswordHash)
}

func TestService_CreateUser_DuplicateEmail(t *testing.T) {
	svc, userRepo := newTestService(t)

	userRepo.EXPECT().
		GetUserByEmail(gomock.Any(), "taken@buckii.com").
		Return(&domain.User{ID: 1}, nil)

	created, err := svc.CreateUser(context.Background(), &domain.User{
		Name:         "New",
		Email:        "taken@buckii.com",
		PasswordHash: "Sup3rSecret",
		CompanyID:    "comp-1",
	})

	assert.Nil(t, created)
	assert.True(t, errors.Is(err, ErrUserAlreadyExists))
}

func TestService_ChangePassword(t *testing.T) {
	svc, userRepo := newTestService(t)

	user := activeUser("OldSecret1")

	userRepo.EXPECT().GetUserByID(gomock.Any(), 7).Return(user, nil)
	userRepo.EXPECT().
		UpdateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *domain.User) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("NewSecret2")))
			return nil
		})

	err := svc.ChangePassword(context.Background(), 7, "OldSecret1", "NewSecret2")
	require.NoError(t, err)
}

func TestService_ChangePassword_RejectsSamePassword(t *testing.T) {
	svc, userRepo := newTestService(t)

	userRepo.EXPECT().GetUserByID(gomock.Any(), 7).Return(activeUser("OldSecret1"), nil)

	err := svc.ChangePassword(context.Background(), 7, "OldSecret1", "OldSecret1")
	assert.True(t, errors.Is(err, ErrSamePassword))
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		password string
		valid    bool
	}{
		{"Sup3rSecret", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
	}

	for _, tt := range tests {
		err := svc.ValidatePasswordStrength(tt.password)
		if tt.valid {
			assert.NoError(t, err, tt.password)
		} else {
			assert.True(t, errors.Is(err, ErrWeakPassword), tt.password)
		}
	}
}

func TestService_GetUserProfile_StripsPasswordHash(t *testing.T) {
	svc, userRepo := newTestService(t)

	userRepo.EXPECT().GetUserByID(gomock.Any(), 7).Return(activeUser("Sup3rSecret"), nil)

	user, err := svc.GetUserProfile(context.Background(), 7)

	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}

func TestService_UpdateUser_AppliesOnlyProvidedFields(t *testing.T) {
	svc, userRepo := newTestService(t)

	stored := activeUser("Sup3rSecret")
	userRepo.EXPECT().GetUserByID(gomock.Any(), 7).Return(stored, nil)

	newName := "Jordan Q"
	deactivate := false

	userRepo.EXPECT().
		UpdateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *domain.User) error {
			assert.Equal(t, "Jordan Q", updated.Name)
			assert.False(t, updated.Active)
			assert.Equal(t, "jordan@buckii.com", updated.Email)
			return nil
		})

	err := svc.UpdateUser(context.Background(), &domain.UpdateUserRequest{
		ID:     7,
		Name:   &newName,
		Active: &deactivate,
	})
	require.NoError(t, err)
}
