package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"legalscan/internal/config"
	"legalscan/internal/model"
	repoMocks "legalscan/internal/repository/mocks"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:   "test-secret",
		TokenTTLMin: 60,
		BcryptCost:  bcrypt.MinCost,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(mUsers *repoMocks.MockUserRepository)
		wantErr    error
		checkUser  func(t *testing.T, u *model.User)
	}{
		{
			name:     "happy path normalizes email and assigns user role",
			email:    "  Alice@Example.COM ",
			password: "s3cret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "alice@example.com").Return(nil, sql.ErrNoRows)
				mUsers.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "alice@example.com" && u.Role == model.RoleUser && u.PasswordHash != "s3cret"
				})).Return(func(ctx context.Context, u *model.User) *model.User { return u }, nil)
			},
			checkUser: func(t *testing.T, u *model.User) {
				assert.Equal(t, "alice@example.com", u.Email)
				assert.Equal(t, model.RoleUser, u.Role)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
			},
		},
		{
			name:     "email already registered",
			email:    "taken@example.com",
			password: "s3cret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "taken@example.com").
					Return(&model.User{ID: "u1", Email: "taken@example.com"}, nil)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name:       "empty credentials",
			email:      "",
			password:   "",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {},
			wantErr:    ErrInvalidCredentials,
		},
		{
			name:     "lookup error",
			email:    "err@example.com",
			password: "s3cret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository) {
				mUsers.On("FindByEmail", ctx, "err@example.com").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mUsers := new(repoMocks.MockUserRepository)
			svc := NewAuthService(mUsers, nil, testAuthConfig())

			tt.setupMocks(mUsers)

			user, err := svc.Register(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrEmailTaken) || errors.Is(tt.wantErr, ErrInvalidCredentials) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, user)
				if tt.checkUser != nil {
					tt.checkUser(t, user)
				}
			}
			mUsers.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterCannotGrantOwner(t *testing.T) {
	ctx := context.Background()

	mUsers := new(repoMocks.MockUserRepository)
	mActivity := new(repoMocks.MockActivityRepository)
	svc := NewAuthService(mUsers, mActivity, testAuthConfig())

	mUsers.On("FindByEmail", ctx, "evil@example.com").Return(nil, sql.ErrNoRows)
	mUsers.On("Create", ctx, mock.AnythingOfType("*model.User")).
		Return(func(ctx context.Context, u *model.User) *model.User { return u }, nil)

	user, err := svc.Register(ctx, "evil@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)

	// A self-registered account must not be able to read everyone's activity
	actor := Actor{ID: user.ID, Email: user.Email, Role: user.Role}
	_, err = svc.RecentActivity(ctx, actor, 50)
	assert.ErrorIs(t, err, ErrForbidden)
	mActivity.AssertNotCalled(t, "ListRecent", mock.Anything, mock.Anything)
}

func TestAuthService_EnsureOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("creates owner account when missing", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, nil, testAuthConfig())

		mUsers.On("FindByEmail", ctx, "boss@example.com").Return(nil, sql.ErrNoRows)
		mUsers.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "boss@example.com" && u.Role == model.RoleOwner
		})).Return(func(ctx context.Context, u *model.User) *model.User { return u }, nil)

		assert.NoError(t, svc.EnsureOwner(ctx, "boss@example.com", "s3cret"))
		mUsers.AssertExpectations(t)
	})

	t.Run("no-op when already registered", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mUsers, nil, testAuthConfig())

		mUsers.On("FindByEmail", ctx, "boss@example.com").
			Return(&model.User{ID: "u1", Email: "boss@example.com", Role: model.RoleOwner}, nil)

		assert.NoError(t, svc.EnsureOwner(ctx, "boss@example.com", "s3cret"))
		mUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("empty credentials rejected", func(t *testing.T) {
		svc := NewAuthService(new(repoMocks.MockUserRepository), nil, testAuthConfig())
		assert.ErrorIs(t, svc.EnsureOwner(ctx, "", ""), ErrInvalidCredentials)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &model.User{
		ID:           "u1",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(mUsers *repoMocks.MockUserRepository, mActivity *repoMocks.MockActivityRepository)
		wantErr    error
	}{
		{
			name:     "happy path records login activity",
			email:    "alice@example.com",
			password: "s3cret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository, mActivity *repoMocks.MockActivityRepository) {
				mUsers.On("FindByEmail", ctx, "alice@example.com").Return(stored, nil)
				mActivity.On("Insert", ctx, mock.MatchedBy(func(rec *model.ActivityRecord) bool {
					return rec.UserEmail == "alice@example.com" && rec.Action == "Logged in"
				})).Return(nil)
			},
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "nope",
			setupMocks: func(mUsers *repoMocks.MockUserRepository, mActivity *repoMocks.MockActivityRepository) {
				mUsers.On("FindByEmail", ctx, "alice@example.com").Return(stored, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "s3cret",
			setupMocks: func(mUsers *repoMocks.MockUserRepository, mActivity *repoMocks.MockActivityRepository) {
				mUsers.On("FindByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mUsers := new(repoMocks.MockUserRepository)
			mActivity := new(repoMocks.MockActivityRepository)
			svc := NewAuthService(mUsers, mActivity, testAuthConfig())

			tt.setupMocks(mUsers, mActivity)

			token, user, err := svc.Login(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				require.NotNil(t, user)
				assert.Equal(t, "alice@example.com", user.Email)
			}
			mUsers.AssertExpectations(t)
			mActivity.AssertExpectations(t)
		})
	}
}

func TestAuthService_Verify(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &model.User{
		ID:           "u1",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleOwner,
	}

	mUsers := new(repoMocks.MockUserRepository)
	mUsers.On("FindByEmail", ctx, "alice@example.com").Return(stored, nil)
	svc := NewAuthService(mUsers, nil, testAuthConfig())

	token, _, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	actor, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Actor{ID: "u1", Email: "alice@example.com", Role: model.RoleOwner}, actor)

	_, err = svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with a different secret must be rejected
	other := NewAuthService(mUsers, nil, config.AuthConfig{JWTSecret: "other", TokenTTLMin: 60, BcryptCost: bcrypt.MinCost})
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RecentActivity(t *testing.T) {
	ctx := context.Background()

	mActivity := new(repoMocks.MockActivityRepository)
	svc := NewAuthService(nil, mActivity, testAuthConfig())

	t.Run("owner gets records", func(t *testing.T) {
		mActivity.On("ListRecent", ctx, 50).Return([]model.ActivityRecord{
			{ID: "a1", UserEmail: "alice@example.com", Action: "Logged in"},
		}, nil).Once()

		records, err := svc.RecentActivity(ctx, Actor{ID: "u1", Role: model.RoleOwner}, 0)
		assert.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		_, err := svc.RecentActivity(ctx, Actor{ID: "u2", Role: model.RoleUser}, 10)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	mActivity.AssertExpectations(t)
}
