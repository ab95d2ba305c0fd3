package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"
	"sync"

	"contacts-api/internal/config"
	"contacts-api/internal/interfaces"
	"contacts-api/internal/managers"
	"contacts-api/internal/repositories"
	"contacts-api/internal/schemas"
	"contacts-api/internal/utils"

	"github.com/jackc/pgx/v5"
)

const (
	MessageEmailConfirmed        = "Email confirmed"
	MessageEmailAlreadyConfirmed = "Your email is already confirmed"
	MessageCheckVerificationMail = "Check your mail for verification"
	MessageCheckResetMail        = "Check your email"
	MessagePasswordChanged       = "Password successfully changed"
)

// AuthService drives registration, login, email confirmation and password reset.
// Mails are sent in the background, Wait blocks until all of them are done.
type AuthService struct {
	pool        interfaces.PgxPoolIface
	jwtMgr      managers.JWTMgr
	mailMgr     managers.MailMgr
	hashCost    int
	verifyMX    bool
	verifyEmail func(string) bool
	dummyHash   string
	wg          sync.WaitGroup
}

// NewAuthService wires the auth flows. verifyEmail is only consulted when cfg.VerifyEmailMX is set.
func NewAuthService(pool interfaces.PgxPoolIface, jwtMgr managers.JWTMgr, mailMgr managers.MailMgr,
	cfg *config.Config, verifyEmail func(string) bool) *AuthService {
	// Compared against when the username is unknown so both failure paths cost one bcrypt check.
	dummyHash, err := utils.HashPassword("contacts-api-dummy-password", cfg.Token.HashCost)
	if err != nil {
		utils.LogMessage("warn", "Could not create dummy password hash: "+err.Error())
	}

	return &AuthService{
		pool:        pool,
		jwtMgr:      jwtMgr,
		mailMgr:     mailMgr,
		hashCost:    cfg.Token.HashCost,
		verifyMX:    cfg.VerifyEmailMX,
		verifyEmail: verifyEmail,
		dummyHash:   dummyHash,
	}
}

// Register creates an unconfirmed user and mails a confirmation link based on baseURL.
func (s *AuthService) Register(ctx context.Context, req *schemas.RegistrationRequest, baseURL string) (*schemas.User, error) {
	if s.verifyMX && s.verifyEmail != nil && !s.verifyEmail(req.Email) {
		return nil, schemas.EmailUnreachable
	}

	passwordHash, err := utils.HashPassword(req.Password, s.hashCost)
	if err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error hashing password", err)
		return nil, schemas.InternalServerError
	}
	avatar := gravatarURL(req.Email)

	var user *schemas.User
	err = inTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		users := repositories.NewUserRepository(tx)

		existing, err := users.FindByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return schemas.EmailTaken
		}

		existing, err = users.FindByUsername(ctx, req.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return schemas.UsernameTaken
		}

		user, err = users.Create(ctx, req.Username, req.Email, passwordHash, &avatar)
		return userConflict(err)
	})
	if err != nil {
		return nil, err
	}

	utils.LogMessageWithFields(ctx, "info", "User registered")
	s.sendConfirmation(ctx, user, baseURL)
	return user, nil
}

// Login returns a session token for confirmed users with matching credentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	var user *schemas.User
	err := inTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		user, err = repositories.NewUserRepository(tx).FindByUsername(ctx, username)
		return err
	})
	if err != nil {
		return "", err
	}

	if user == nil {
		utils.VerifyPassword(password, s.dummyHash)
		return "", schemas.InvalidCredentials
	}
	if !utils.VerifyPassword(password, user.PasswordHash) {
		return "", schemas.InvalidCredentials
	}
	if !user.Confirmed {
		return "", schemas.EmailNotConfirmed
	}

	token, err := s.jwtMgr.CreateAccessToken(user.Username)
	if err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error creating access token", err)
		return "", schemas.InternalServerError
	}
	return token, nil
}

// ConfirmEmail marks the account of the token's email as confirmed. Confirming twice is not an error.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	email, err := s.jwtMgr.ParseEmailToken(token)
	if err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "info", "Rejected email token", err)
		return "", schemas.InvalidEmailToken
	}

	message := MessageEmailConfirmed
	err = inTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		users := repositories.NewUserRepository(tx)

		user, err := users.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user == nil {
			return schemas.VerificationError
		}
		if user.Confirmed {
			message = MessageEmailAlreadyConfirmed
			return nil
		}
		return users.ConfirmEmail(ctx, email)
	})
	if err != nil {
		return "", err
	}
	return message, nil
}

// RequestEmail sends the confirmation mail again for unconfirmed accounts.
func (s *AuthService) RequestEmail(ctx context.Context, email, baseURL string) (string, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if user == nil {
		return MessageCheckVerificationMail, nil
	}
	if user.Confirmed {
		return MessageEmailAlreadyConfirmed, nil
	}

	s.sendConfirmation(ctx, user, baseURL)
	return MessageCheckVerificationMail, nil
}

// RequestPasswordReset mails a link that, once opened, replaces the password with the given one.
// The new password is hashed before it is put into the token.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req *schemas.ResetPasswordRequest, baseURL string) (string, error) {
	user, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}

	if user == nil {
		return MessageCheckResetMail, nil
	}
	if !user.Confirmed {
		return "", schemas.ResetEmailNotConfirmed
	}

	passwordHash, err := utils.HashPassword(req.Password, s.hashCost)
	if err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error hashing password", err)
		return "", schemas.InternalServerError
	}

	token, err := s.jwtMgr.CreateResetToken(user.Email, passwordHash)
	if err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error creating reset token", err)
		return "", schemas.InternalServerError
	}

	link := baseURL + "/auth/confirm_reset_password/" + token
	email, username := user.Email, user.Username
	s.dispatch(ctx, "password reset", func() error {
		return s.mailMgr.SendResetPasswordMail(email, username, link)
	})

	return MessageCheckResetMail, nil
}

// ConfirmPasswordReset writes the password hash carried by the token onto the user.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token string) (string, error) {
	email, passwordHash, err := s.jwtMgr.ParseResetToken(token)
	if err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "info", "Rejected reset token", err)
		return "", schemas.InvalidResetToken
	}

	err = inTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		users := repositories.NewUserRepository(tx)

		user, err := users.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user == nil {
			return schemas.UserNotFound
		}
		return users.UpdatePassword(ctx, email, passwordHash)
	})
	if err != nil {
		return "", err
	}
	return MessagePasswordChanged, nil
}

// Wait blocks until every mail dispatched so far has been handled.
func (s *AuthService) Wait() {
	s.wg.Wait()
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*schemas.User, error) {
	var user *schemas.User
	err := inTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		user, err = repositories.NewUserRepository(tx).FindByEmail(ctx, email)
		return err
	})
	return user, err
}

func (s *AuthService) sendConfirmation(ctx context.Context, user *schemas.User, baseURL string) {
	token, err := s.jwtMgr.CreateEmailToken(user.Email)
	if err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error creating email token", err)
		return
	}

	link := baseURL + "/auth/confirmed_email/" + token
	email, username := user.Email, user.Username
	s.dispatch(ctx, "confirmation", func() error {
		return s.mailMgr.SendConfirmationMail(email, username, link)
	})
}

// dispatch runs send in the background. The log entry is resolved up front since ctx may be
// recycled once the response is written.
func (s *AuthService) dispatch(ctx context.Context, kind string, send func() error) {
	entry := utils.Logger(ctx).WithField("mail", kind)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				entry.Errorf("Mail dispatch panicked: %v", p)
			}
		}()

		if err := send(); err != nil {
			entry.WithError(err).Warn("Mail could not be sent")
			return
		}
		entry.Debug("Mail handled")
	}()
}

func userConflict(err error) error {
	var uniqueErr *repositories.UniqueViolationError
	if errors.As(err, &uniqueErr) {
		if uniqueErr.Constraint == "users_username_key" {
			return schemas.UsernameTaken
		}
		return schemas.EmailTaken
	}
	return err
}

func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?d=identicon"
}
