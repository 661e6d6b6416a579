package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/testutil"
	"foodgram/pkg/jwt"
	"foodgram/pkg/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) SendMail(to, _, _ string) error {
	m.sent = append(m.sent, to)
	return m.err
}

func newService(t *testing.T) (user.UserService, *gorm.DB, *recordingMailer) {
	t.Helper()
	db := testutil.NewDB(t)
	repo := user.NewUserRepository(db)
	mailer := &recordingMailer{}
	jwtService, err := jwt.NewJWTService("test-secret", time.Hour, repo)
	require.NoError(t, err)
	return user.NewUserService(repo, jwtService, mailer), db, mailer
}

func registerRequest(username string) domain.RegisterRequest {
	return domain.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Anna",
		LastName:  "Smith",
		Password:  "s3cret-pass",
	}
}

func TestRegister(t *testing.T) {
	service, db, mailer := newService(t)
	ctx := context.Background()

	res, err := service.Register(ctx, registerRequest("anna"))
	require.NoError(t, err)
	assert.Equal(t, "anna", res.Username)
	assert.False(t, res.IsSubscribed)
	assert.Equal(t, []string{"anna@example.com"}, mailer.sent)

	var stored entities.User
	require.NoError(t, db.First(&stored, "id = ?", res.ID).Error)
	assert.NotEqual(t, "s3cret-pass", stored.Password)

	tests := []struct {
		name  string
		req   domain.RegisterRequest
		field string
	}{
		{"duplicate username", func() domain.RegisterRequest {
			r := registerRequest("anna")
			r.Email = "other@example.com"
			return r
		}(), "username"},
		{"duplicate email", func() domain.RegisterRequest {
			r := registerRequest("other")
			r.Email = "anna@example.com"
			return r
		}(), "email"},
		{"reserved username", registerRequest("me"), "username"},
		{"bad characters", registerRequest("anna smith"), "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(ctx, tt.req)
			require.ErrorIs(t, err, domain.ErrValidation)

			var derr *domain.Error
			require.ErrorAs(t, err, &derr)
			assert.Contains(t, derr.Fields, tt.field)
		})
	}
}

func TestRegisterMailFailureIsNotFatal(t *testing.T) {
	service, _, mailer := newService(t)
	mailer.err = errors.New("smtp down")

	_, err := service.Register(context.Background(), registerRequest("anna"))
	assert.NoError(t, err)
}

func TestLoginLogout(t *testing.T) {
	db := testutil.NewDB(t)
	repo := user.NewUserRepository(db)
	jwtService, err := jwt.NewJWTService("test-secret", time.Hour, repo)
	require.NoError(t, err)
	service := user.NewUserService(repo, jwtService, &recordingMailer{})
	ctx := context.Background()

	registered, err := service.Register(ctx, registerRequest("anna"))
	require.NoError(t, err)

	_, err = service.Login(ctx, domain.LoginRequest{Email: "anna@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrAuthFailure)

	_, err = service.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrAuthFailure)

	res, err := service.Login(ctx, domain.LoginRequest{Email: "anna@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, res.AuthToken)

	id, err := jwtService.GetUserIDByToken(ctx, res.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, id)

	require.NoError(t, service.Logout(ctx, res.AuthToken))
	_, err = jwtService.GetUserIDByToken(ctx, res.AuthToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)

	assert.ErrorIs(t, service.Logout(ctx, ""), domain.ErrAuthFailure)
}

func TestSetPassword(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, registerRequest("anna"))
	require.NoError(t, err)

	err = service.SetPassword(ctx, domain.SetPasswordRequest{CurrentPassword: "wrong", NewPassword: "next-pass"}, registered.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, service.SetPassword(ctx, domain.SetPasswordRequest{CurrentPassword: "s3cret-pass", NewPassword: "next-pass"}, registered.ID))

	_, err = service.Login(ctx, domain.LoginRequest{Email: "anna@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrAuthFailure)
	_, err = service.Login(ctx, domain.LoginRequest{Email: "anna@example.com", Password: "next-pass"})
	assert.NoError(t, err)
}

func TestGetUsers(t *testing.T) {
	service, db, _ := newService(t)
	ctx := context.Background()

	anna := testutil.CreateUser(t, db, "anna")
	bob := testutil.CreateUser(t, db, "bob")
	carl := testutil.CreateUser(t, db, "carl")
	require.NoError(t, db.Create(&entities.Follow{UserID: anna.ID, AuthorID: bob.ID}).Error)

	t.Run("anonymous cannot view a profile", func(t *testing.T) {
		_, err := service.GetUser(ctx, domain.AnonymousViewer(), bob.ID)
		assert.ErrorIs(t, err, domain.ErrAuthFailure)
	})

	t.Run("subscription flag is viewer relative", func(t *testing.T) {
		res, err := service.GetUser(ctx, domain.UserViewer(anna.ID), bob.ID)
		require.NoError(t, err)
		assert.True(t, res.IsSubscribed)

		res, err = service.GetUser(ctx, domain.UserViewer(carl.ID), bob.ID)
		require.NoError(t, err)
		assert.False(t, res.IsSubscribed)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := service.GetUser(ctx, domain.UserViewer(anna.ID), uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		page, err := service.GetUsers(ctx, domain.UserViewer(anna.ID), domain.Pagination{Limit: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 3, page.Count)
		require.Len(t, page.Results, 2)
		assert.Equal(t, "anna", page.Results[0].Username)
		assert.Equal(t, "bob", page.Results[1].Username)
		assert.True(t, page.Results[1].IsSubscribed)
	})

	t.Run("me", func(t *testing.T) {
		res, err := service.Me(ctx, carl.ID)
		require.NoError(t, err)
		assert.Equal(t, "carl", res.Username)
	})
}
