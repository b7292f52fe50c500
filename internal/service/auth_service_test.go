package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go-retail-inventory/internal/model"
	"go-retail-inventory/internal/repository"

	"gorm.io/gorm"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testResetURL = "http://localhost:5173/reset-password"
)

// captureSender records outgoing mail instead of delivering it.
type captureSender struct {
	mails []struct{ To, Subject, Body string }
}

func (s *captureSender) Send(to, subject, body string) error {
	s.mails = append(s.mails, struct{ To, Subject, Body string }{to, subject, body})
	return nil
}

func newTestAuthService(t *testing.T, db *gorm.DB, mail *captureSender) AuthService {
	t.Helper()
	return NewAuthService(
		repository.NewUserRepo(db),
		repository.NewSessionRepo(db),
		mail,
		testSecret,
		testResetURL,
	)
}

func TestSignupLoginCheckLogout(t *testing.T) {
	db := testDB(t)
	svc := newTestAuthService(t, db, &captureSender{})

	user, err := svc.Signup("alice", "s3cret-pass", "alice@example.com")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.Password == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}

	loggedIn, token, err := svc.Login("alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("Login returned empty session token")
	}
	if loggedIn.Username != "alice" {
		t.Errorf("username = %q, want alice", loggedIn.Username)
	}

	checked, err := svc.CheckAuth(token)
	if err != nil {
		t.Fatalf("CheckAuth: %v", err)
	}
	if checked.ID != user.ID {
		t.Errorf("CheckAuth user id = %d, want %d", checked.ID, user.ID)
	}

	if err := svc.Logout(token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.CheckAuth(token); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("CheckAuth after logout = %v, want ErrNotAuthenticated", err)
	}

	// Logout is a no-op when already anonymous
	if err := svc.Logout(token); err != nil {
		t.Errorf("second Logout: %v", err)
	}
	if err := svc.Logout(""); err != nil {
		t.Errorf("Logout without token: %v", err)
	}
}

func TestSignup_DuplicateUsername(t *testing.T) {
	db := testDB(t)
	svc := newTestAuthService(t, db, &captureSender{})

	if _, err := svc.Signup("alice", "pass-one", ""); err != nil {
		t.Fatalf("first Signup: %v", err)
	}
	// The unique index rejects the insert itself, so the structured error
	// holds even for races the lookup-then-insert pattern would miss
	if _, err := svc.Signup("alice", "pass-two", ""); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("error = %v, want ErrUsernameTaken", err)
	}

	var count int64
	db.Model(&model.User{}).Count(&count)
	if count != 1 {
		t.Errorf("user rows = %d, want 1", count)
	}
}

func TestLogin_BadCredentialsUndifferentiated(t *testing.T) {
	db := testDB(t)
	svc := newTestAuthService(t, db, &captureSender{})

	if _, err := svc.Signup("alice", "s3cret-pass", ""); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	_, _, wrongPass := svc.Login("alice", "nope")
	_, _, wrongUser := svc.Login("bob", "s3cret-pass")
	if !errors.Is(wrongPass, ErrInvalidCredentials) || !errors.Is(wrongUser, ErrInvalidCredentials) {
		t.Errorf("errors = (%v, %v), want ErrInvalidCredentials for both", wrongPass, wrongUser)
	}
	if wrongPass.Error() != wrongUser.Error() {
		t.Error("login errors differ between wrong-user and wrong-password")
	}
}

func TestCheckAuth_UnknownToken(t *testing.T) {
	db := testDB(t)
	svc := newTestAuthService(t, db, &captureSender{})

	if _, err := svc.CheckAuth("not-a-session"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("error = %v, want ErrNotAuthenticated", err)
	}
	if _, err := svc.CheckAuth(""); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("error for empty token = %v, want ErrNotAuthenticated", err)
	}
}

// extractResetLink pulls the uid and token out of a captured reset mail.
func extractResetLink(t *testing.T, body string) (uid, token string) {
	t.Helper()
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, testResetURL+"/") {
			parts := strings.Split(strings.TrimPrefix(line, testResetURL+"/"), "/")
			if len(parts) != 2 {
				t.Fatalf("unexpected reset link %q", line)
			}
			return parts[0], parts[1]
		}
	}
	t.Fatalf("no reset link in mail body:\n%s", body)
	return "", ""
}

func TestPasswordResetFlow(t *testing.T) {
	db := testDB(t)
	mail := &captureSender{}
	svc := newTestAuthService(t, db, mail)

	if _, err := svc.Signup("alice", "old-password", "alice@example.com"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	_, sessionToken, err := svc.Login("alice", "old-password")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.RequestPasswordReset("alice@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if len(mail.mails) != 1 {
		t.Fatalf("mails sent = %d, want 1", len(mail.mails))
	}
	uid, token := extractResetLink(t, mail.mails[0].Body)

	if err := svc.ConfirmPasswordReset(uid, token, "new-password"); err != nil {
		t.Fatalf("ConfirmPasswordReset: %v", err)
	}

	// New password works, old one doesn't
	if _, _, err := svc.Login("alice", "new-password"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, _, err := svc.Login("alice", "old-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("login with old password = %v, want ErrInvalidCredentials", err)
	}

	// Resetting revoked the live session
	if _, err := svc.CheckAuth(sessionToken); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("CheckAuth after reset = %v, want ErrNotAuthenticated", err)
	}

	// The token is single-use: the password hash it was signed against is gone
	if err := svc.ConfirmPasswordReset(uid, token, "another-password"); !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("token reuse = %v, want ErrInvalidResetToken", err)
	}
}

func TestPasswordReset_UnknownEmailStaysSilent(t *testing.T) {
	db := testDB(t)
	mail := &captureSender{}
	svc := newTestAuthService(t, db, mail)

	if err := svc.RequestPasswordReset("nobody@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if len(mail.mails) != 0 {
		t.Errorf("mails sent = %d, want 0", len(mail.mails))
	}
}

func TestConfirmPasswordReset_GenericFailures(t *testing.T) {
	db := testDB(t)
	svc := newTestAuthService(t, db, &captureSender{})

	user, err := svc.Signup("alice", "old-password", "alice@example.com")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	cases := []struct{ name, uid, token string }{
		{"garbage uid", "!!!", "token"},
		{"unknown user", encodeUID(999), "token"},
		{"bad token", encodeUID(user.ID), "not-a-jwt"},
	}
	for _, tc := range cases {
		if err := svc.ConfirmPasswordReset(tc.uid, tc.token, "new-password"); !errors.Is(err, ErrInvalidResetToken) {
			t.Errorf("%s: error = %v, want ErrInvalidResetToken", tc.name, err)
		}
	}
}

func TestSessionExpiryEndsAuthentication(t *testing.T) {
	db := testDB(t)
	svc := newTestAuthService(t, db, &captureSender{})

	if _, err := svc.Signup("alice", "s3cret-pass", ""); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	_, token, err := svc.Login("alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Force the session past its expiry
	if err := db.Model(&model.Session{}).Where("token = ?", token).
		Update("expires_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("expire session: %v", err)
	}

	if _, err := svc.CheckAuth(token); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("CheckAuth on expired session = %v, want ErrNotAuthenticated", err)
	}
}
