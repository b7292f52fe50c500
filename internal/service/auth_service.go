package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"go-retail-inventory/internal/model"
	"go-retail-inventory/internal/repository"
	"go-retail-inventory/pkg/mailer"
	"go-retail-inventory/pkg/resettoken"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidResetToken  = errors.New("invalid link or expired token")
)

const sessionTTL = 14 * 24 * time.Hour

type AuthService interface {
	// Login verifies credentials and starts a session, returning the user
	// and the opaque session token to carry in the cookie.
	Login(username, password string) (*model.User, string, error)
	Logout(token string) error
	// CheckAuth resolves a session token to its user. Read-only.
	CheckAuth(token string) (*model.User, error)
	Signup(username, password, email string) (*model.User, error)
	RequestPasswordReset(email string) error
	ConfirmPasswordReset(uid, token, newPassword string) error
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	mail        mailer.Sender
	secretKey   string
	resetURL    string
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	mail mailer.Sender,
	secretKey, resetURL string,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		mail:        mail,
		secretKey:   secretKey,
		resetURL:    resetURL,
	}
}

func (s *authService) Login(username, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	// Opportunistic cleanup of stale rows
	if err := s.sessionRepo.DeleteExpired(); err != nil {
		log.Printf("auth: delete expired sessions: %v", err)
	}

	session := &model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, "", err
	}
	return user, session.Token, nil
}

// Logout terminates the session unconditionally. A missing or unknown token
// is a no-op, not an error.
func (s *authService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByToken(token)
}

func (s *authService) CheckAuth(token string) (*model.User, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	session, err := s.sessionRepo.FindByToken(token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	if session.Expired() {
		return nil, ErrNotAuthenticated
	}
	return &session.User, nil
}

func (s *authService) Signup(username, password, email string) (*model.User, error) {
	user := &model.User{
		Username: username,
		Email:    email,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	// The unique index is the authority: concurrent signups with the same
	// name cannot both pass a lookup, so let the insert decide.
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// RequestPasswordReset mails a reset link to every account matching the
// email. It never reports whether a match was found, so callers cannot
// enumerate accounts.
func (s *authService) RequestPasswordReset(email string) error {
	users, err := s.userRepo.FindByEmail(email)
	if err != nil {
		log.Printf("auth: password reset lookup: %v", err)
		return nil
	}

	for i := range users {
		user := &users[i]
		token, err := resettoken.Generate(s.resetKey(user), user.ID)
		if err != nil {
			log.Printf("auth: generate reset token for user %d: %v", user.ID, err)
			continue
		}
		link := fmt.Sprintf("%s/%s/%s", s.resetURL, encodeUID(user.ID), token)
		body := fmt.Sprintf(
			"You're receiving this email because you requested a password reset for your account.\n\n"+
				"Please go to the following page and choose a new password:\n\n%s\n\n"+
				"If you didn't request this, you can ignore this email.", link)
		if err := s.mail.Send(user.Email, "Password reset", body); err != nil {
			log.Printf("auth: send reset mail to user %d: %v", user.ID, err)
		}
	}
	return nil
}

// ConfirmPasswordReset validates the uid/token pair and sets the new
// password. Every failure mode returns the same generic error.
func (s *authService) ConfirmPasswordReset(uid, token, newPassword string) error {
	userID, err := decodeUID(uid)
	if err != nil {
		return ErrInvalidResetToken
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ErrInvalidResetToken
	}
	if err := resettoken.Validate(s.resetKey(user), user.ID, token); err != nil {
		return ErrInvalidResetToken
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		return err
	}
	// Changing the password revokes live sessions too
	if err := s.sessionRepo.DeleteByUserID(user.ID); err != nil {
		log.Printf("auth: revoke sessions for user %d: %v", user.ID, err)
	}
	return nil
}

// resetKey signs tokens with the app secret plus the user's current password
// hash: once the password changes, outstanding tokens stop verifying.
func (s *authService) resetKey(user *model.User) []byte {
	return []byte(s.secretKey + user.Password)
}

func encodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

func decodeUID(uid string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
