package services

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"contacts-api/internal/managers/mocks"
	"contacts-api/internal/schemas"
	"contacts-api/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost:8080"

var (
	selectByEmail    = regexp.QuoteMeta("FROM users WHERE email = $1")
	selectByUsername = regexp.QuoteMeta("FROM users WHERE username = $1")
)

func TestRegisterSendsConfirmationMail(t *testing.T) {
	pool := newPool(t)
	jwtMgr := newJWTManager(t)
	mailMgr := &mocks.MockMailManager{}
	mailMgr.On("SendConfirmationMail", "alice@x.com", "alice", mock.MatchedBy(func(link string) bool {
		return strings.HasPrefix(link, baseURL+"/auth/confirmed_email/")
	})).Return(nil)

	pool.ExpectBegin()
	pool.ExpectQuery(selectByEmail).WithArgs("alice@x.com").WillReturnError(pgx.ErrNoRows)
	pool.ExpectQuery(selectByUsername).WithArgs("alice").WillReturnError(pgx.ErrNoRows)
	pool.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "alice@x.com", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(userRows(1, "alice", "alice@x.com", "hash", false, "user"))
	pool.ExpectCommit()

	svc := NewAuthService(pool, jwtMgr, mailMgr, testConfig(), nil)
	user, err := svc.Register(context.Background(), &schemas.RegistrationRequest{
		Username: "alice", Email: "alice@x.com", Password: "pw1234",
	}, baseURL)
	svc.Wait()

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.Confirmed)
	mailMgr.AssertExpectations(t)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestRegisterEmailTakenIsCheckedFirst(t *testing.T) {
	pool := newPool(t)
	mailMgr := &mocks.MockMailManager{}

	pool.ExpectBegin()
	pool.ExpectQuery(selectByEmail).WithArgs("alice@x.com").
		WillReturnRows(userRows(1, "alice", "alice@x.com", "hash", true, "user"))
	pool.ExpectRollback()

	svc := NewAuthService(pool, newJWTManager(t), mailMgr, testConfig(), nil)
	_, err := svc.Register(context.Background(), &schemas.RegistrationRequest{
		Username: "alice", Email: "alice@x.com", Password: "pw1234",
	}, baseURL)
	svc.Wait()

	assert.Equal(t, schemas.EmailTaken, err)
	mailMgr.AssertNotCalled(t, "SendConfirmationMail", mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestRegisterUsernameTaken(t *testing.T) {
	pool := newPool(t)

	pool.ExpectBegin()
	pool.ExpectQuery(selectByEmail).WithArgs("bob@x.com").WillReturnError(pgx.ErrNoRows)
	pool.ExpectQuery(selectByUsername).WithArgs("alice").
		WillReturnRows(userRows(1, "alice", "alice@x.com", "hash", true, "user"))
	pool.ExpectRollback()

	svc := NewAuthService(pool, newJWTManager(t), &mocks.MockMailManager{}, testConfig(), nil)
	_, err := svc.Register(context.Background(), &schemas.RegistrationRequest{
		Username: "alice", Email: "bob@x.com", Password: "pw1234",
	}, baseURL)

	assert.Equal(t, schemas.UsernameTaken, err)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestRegisterUnreachableEmail(t *testing.T) {
	pool := newPool(t)
	cfg := testConfig()
	cfg.VerifyEmailMX = true

	svc := NewAuthService(pool, newJWTManager(t), &mocks.MockMailManager{}, cfg, func(string) bool { return false })
	_, err := svc.Register(context.Background(), &schemas.RegistrationRequest{
		Username: "alice", Email: "alice@nowhere.invalid", Password: "pw1234",
	}, baseURL)

	assert.Equal(t, schemas.EmailUnreachable, err)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestLogin(t *testing.T) {
	passwordHash := hash(t, "pw1234")

	tests := []struct {
		name     string
		rows     *pgxmock.Rows
		password string
		wantErr  *schemas.CustomError
	}{
		{"unknown user", nil, "pw1234", schemas.InvalidCredentials},
		{"wrong password", userRows(1, "alice", "alice@x.com", passwordHash, true, "user"), "nope", schemas.InvalidCredentials},
		{"unconfirmed", userRows(1, "alice", "alice@x.com", passwordHash, false, "user"), "pw1234", schemas.EmailNotConfirmed},
		{"confirmed", userRows(1, "alice", "alice@x.com", passwordHash, true, "user"), "pw1234", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newPool(t)
			jwtMgr := newJWTManager(t)

			pool.ExpectBegin()
			query := pool.ExpectQuery(selectByUsername).WithArgs("alice")
			if tt.rows == nil {
				query.WillReturnError(pgx.ErrNoRows)
			} else {
				query.WillReturnRows(tt.rows)
			}
			pool.ExpectCommit()

			svc := NewAuthService(pool, jwtMgr, &mocks.MockMailManager{}, testConfig(), nil)
			token, err := svc.Login(context.Background(), "alice", tt.password)

			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				username, err := jwtMgr.ParseAccessToken(token)
				require.NoError(t, err)
				assert.Equal(t, "alice", username)
			}
			assert.NoError(t, pool.ExpectationsWereMet())
		})
	}
}

func TestConfirmEmail(t *testing.T) {
	jwtMgr := newJWTManager(t)
	token, err := jwtMgr.CreateEmailToken("alice@x.com")
	require.NoError(t, err)

	t.Run("flips confirmed", func(t *testing.T) {
		pool := newPool(t)
		pool.ExpectBegin()
		pool.ExpectQuery(selectByEmail).WithArgs("alice@x.com").
			WillReturnRows(userRows(1, "alice", "alice@x.com", "hash", false, "user"))
		pool.ExpectExec(regexp.QuoteMeta("UPDATE users SET confirmed = TRUE")).WithArgs("alice@x.com").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		pool.ExpectCommit()

		msg, err := NewAuthService(pool, jwtMgr, &mocks.MockMailManager{}, testConfig(), nil).ConfirmEmail(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, MessageEmailConfirmed, msg)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("already confirmed is a no-op", func(t *testing.T) {
		pool := newPool(t)
		pool.ExpectBegin()
		pool.ExpectQuery(selectByEmail).WithArgs("alice@x.com").
			WillReturnRows(userRows(1, "alice", "alice@x.com", "hash", true, "user"))
		pool.ExpectCommit()

		msg, err := NewAuthService(pool, jwtMgr, &mocks.MockMailManager{}, testConfig(), nil).ConfirmEmail(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, MessageEmailAlreadyConfirmed, msg)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		pool := newPool(t)
		pool.ExpectBegin()
		pool.ExpectQuery(selectByEmail).WithArgs("alice@x.com").WillReturnError(pgx.ErrNoRows)
		pool.ExpectRollback()

		_, err := NewAuthService(pool, jwtMgr, &mocks.MockMailManager{}, testConfig(), nil).ConfirmEmail(context.Background(), token)
		assert.Equal(t, schemas.VerificationError, err)
	})

	t.Run("wrong token purpose", func(t *testing.T) {
		accessToken, err := jwtMgr.CreateAccessToken("alice")
		require.NoError(t, err)

		_, err = NewAuthService(newPool(t), jwtMgr, &mocks.MockMailManager{}, testConfig(), nil).ConfirmEmail(context.Background(), accessToken)
		assert.Equal(t, schemas.InvalidEmailToken, err)
	})
}

func TestRequestEmail(t *testing.T) {
	t.Run("unknown email gets the generic message", func(t *testing.T) {
		pool := newPool(t)
		pool.ExpectBegin()
		pool.ExpectQuery(selectByEmail).WithArgs("ghost@x.com").WillReturnError(pgx.ErrNoRows)
		pool.ExpectCommit()

		msg, err := NewAuthService(pool, newJWTManager(t), &mocks.MockMailManager{}, testConfig(), nil).
			RequestEmail(context.Background(), "ghost@x.com", baseURL)
		require.NoError(t, err)
		assert.Equal(t, MessageCheckVerificationMail, msg)
	})

	t.Run("unconfirmed user gets a new mail", func(t *testing.T) {
		pool := newPool(t)
		mailMgr := &mocks.MockMailManager{}
		mailMgr.On("SendConfirmationMail", "alice@x.com", "alice", mock.AnythingOfType("string")).Return(nil)

		pool.ExpectBegin()
		pool.ExpectQuery(selectByEmail).WithArgs("alice@x.com").
			WillReturnRows(userRows(1, "alice", "alice@x.com", "hash", false, "user"))
		pool.ExpectCommit()

		svc := NewAuthService(pool, newJWTManager(t), mailMgr, testConfig(), nil)
		msg, err := svc.RequestEmail(context.Background(), "alice@x.com", baseURL)
		svc.Wait()

		require.NoError(t, err)
		assert.Equal(t, MessageCheckVerificationMail, msg)
		mailMgr.AssertExpectations(t)
	})

	t.Run("confirmed user", func(t *testing.T) {
		pool := newPool(t)
		pool.ExpectBegin()
		pool.ExpectQuery(selectByEmail).WithArgs("alice@x.com").
			WillReturnRows(userRows(1, "alice", "alice@x.com", "hash", true, "user"))
		pool.ExpectCommit()

		msg, err := NewAuthService(pool, newJWTManager(t), &mocks.MockMailManager{}, testConfig(), nil).
			RequestEmail(context.Background(), "alice@x.com", baseURL)
		require.NoError(t, err)
		assert.Equal(t, MessageEmailAlreadyConfirmed, msg)
	})
}

func TestPasswordResetFlow(t *testing.T) {
	jwtMgr := newJWTManager(t)
	mailMgr := &mocks.MockMailManager{}

	var link string
	mailMgr.On("SendResetPasswordMail", "alice@x.com", "alice", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { link = args.String(2) }).
		Return(nil)

	pool := newPool(t)
	pool.ExpectBegin()
	pool.ExpectQuery(selectByEmail).WithArgs("alice@x.com").
		WillReturnRows(userRows(1, "alice", "alice@x.com", hash(t, "old-password"), true, "user"))
	pool.ExpectCommit()

	svc := NewAuthService(pool, jwtMgr, mailMgr, testConfig(), nil)
	msg, err := svc.RequestPasswordReset(context.Background(), &schemas.ResetPasswordRequest{
		Email: "alice@x.com", Password: "new-password",
	}, baseURL)
	svc.Wait()

	require.NoError(t, err)
	assert.Equal(t, MessageCheckResetMail, msg)
	require.True(t, strings.HasPrefix(link, baseURL+"/auth/confirm_reset_password/"))
	token := strings.TrimPrefix(link, baseURL+"/auth/confirm_reset_password/")

	_, embeddedHash, err := jwtMgr.ParseResetToken(token)
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword("new-password", embeddedHash))
	assert.NotContains(t, token, "new-password")

	pool.ExpectBegin()
	pool.ExpectQuery(selectByEmail).WithArgs("alice@x.com").
		WillReturnRows(userRows(1, "alice", "alice@x.com", "old", true, "user"))
	pool.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash = $1 WHERE email = $2")).
		WithArgs(embeddedHash, "alice@x.com").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	pool.ExpectCommit()

	msg, err = svc.ConfirmPasswordReset(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, MessagePasswordChanged, msg)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestPasswordResetRequiresConfirmedEmail(t *testing.T) {
	pool := newPool(t)
	pool.ExpectBegin()
	pool.ExpectQuery(selectByEmail).WithArgs("alice@x.com").
		WillReturnRows(userRows(1, "alice", "alice@x.com", "hash", false, "user"))
	pool.ExpectCommit()

	_, err := NewAuthService(pool, newJWTManager(t), &mocks.MockMailManager{}, testConfig(), nil).
		RequestPasswordReset(context.Background(), &schemas.ResetPasswordRequest{Email: "alice@x.com", Password: "pw1234"}, baseURL)
	assert.Equal(t, schemas.ResetEmailNotConfirmed, err)
}

func TestConfirmPasswordResetRejectsBadToken(t *testing.T) {
	jwtMgr := newJWTManager(t)
	emailToken, err := jwtMgr.CreateEmailToken("alice@x.com")
	require.NoError(t, err)

	svc := NewAuthService(newPool(t), jwtMgr, &mocks.MockMailManager{}, testConfig(), nil)

	_, err = svc.ConfirmPasswordReset(context.Background(), "garbage")
	assert.Equal(t, schemas.InvalidResetToken, err)

	_, err = svc.ConfirmPasswordReset(context.Background(), emailToken)
	assert.Equal(t, schemas.InvalidResetToken, err)
}

func TestConfirmPasswordResetUnknownUser(t *testing.T) {
	jwtMgr := newJWTManager(t)
	token, err := jwtMgr.CreateResetToken("ghost@x.com", "hash")
	require.NoError(t, err)

	pool := newPool(t)
	pool.ExpectBegin()
	pool.ExpectQuery(selectByEmail).WithArgs("ghost@x.com").WillReturnError(pgx.ErrNoRows)
	pool.ExpectRollback()

	_, err = NewAuthService(pool, jwtMgr, &mocks.MockMailManager{}, testConfig(), nil).ConfirmPasswordReset(context.Background(), token)
	assert.Equal(t, schemas.UserNotFound, err)
}
