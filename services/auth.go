package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"secure_law_firm_go/models"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
	// SessionTokenLength is the length of the session token in bytes (64 chars hex)
	SessionTokenLength = 32
	// DefaultSessionDuration is the default session duration (8 hours)
	DefaultSessionDuration = 8 * time.Hour
	// TOTPSkew is the accepted clock drift in 30s steps on either side
	TOTPSkew = 1
	// EnrollmentQRSize is the pixel size of the generated enrollment QR code
	EnrollmentQRSize = 256
)

// ErrInvalidCredentials covers a wrong password and a wrong 2FA code
// alike; callers never learn which factor failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// VerifyPassword verifies a password against a bcrypt hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// GenerateTOTPSecret generates a fresh TOTP secret for a worker and
// returns the base32 secret plus the otpauth:// enrollment URI. Called
// exactly once per worker at creation time.
func GenerateTOTPSecret(issuer, email string) (secret string, enrollmentURI string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: email,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate TOTP secret: %w", err)
	}
	return key.Secret(), key.URL(), nil
}

// BuildEnrollmentURI rebuilds the otpauth:// URI for a worker's
// existing secret, e.g. for re-rendering the enrollment QR code
func BuildEnrollmentURI(issuer, email, secret string) string {
	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", issuer)
	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + issuer + ":" + email,
		RawQuery: v.Encode(),
	}
	return u.String()
}

// VerifyTOTPCode checks a submitted 2FA code against the shared secret,
// tolerating one 30s step of clock skew on either side
func VerifyTOTPCode(secret, code string) bool {
	ok, err := totp.ValidateCustom(code, secret, time.Now(), totp.ValidateOpts{
		Period:    30,
		Skew:      TOTPSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false
	}
	return ok
}

// EnrollmentQRPNG renders the otpauth enrollment URI as a PNG suitable
// for scanning with an authenticator app
func EnrollmentQRPNG(enrollmentURI string) ([]byte, error) {
	png, err := qrcode.Encode(enrollmentURI, qrcode.Medium, EnrollmentQRSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode enrollment QR code: %w", err)
	}
	return png, nil
}

// dummyHash is verified against when no worker matches the email, so
// lookup misses take as long as password mismatches.
var dummyHash string

func init() {
	hash, err := HashPassword("dummy_password_for_timing_mitigation")
	if err != nil {
		panic(fmt.Sprintf("failed to precompute dummy password hash: %v", err))
	}
	dummyHash = hash
}

// Authenticate checks email + password + TOTP code and returns the
// worker on success. Every failure mode maps to ErrInvalidCredentials.
func Authenticate(db *gorm.DB, email, password, code string) (*models.Worker, error) {
	var worker models.Worker
	if err := db.Where("email = ?", email).First(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			VerifyPassword(dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up worker: %w", err)
	}

	if !VerifyPassword(worker.HashedPassword, password) {
		return nil, ErrInvalidCredentials
	}

	if worker.TwoFAEnabled && !VerifyTOTPCode(worker.TwoFASecret, code) {
		return nil, ErrInvalidCredentials
	}

	return &worker, nil
}

// GenerateSessionToken generates a cryptographically secure random token
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, SessionTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// CreateSession creates a new session for a worker
func CreateSession(db *gorm.DB, workerID, ipAddress, userAgent string) (*models.Session, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:        uuid.New().String(),
		WorkerID:  workerID,
		Token:     token,
		ExpiresAt: time.Now().Add(DefaultSessionDuration),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := db.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// ValidateSession validates a session token and returns the session if valid
func ValidateSession(db *gorm.DB, token string) (*models.Session, error) {
	var session models.Session

	err := db.Preload("Worker").
		Where("token = ?", token).
		First(&session).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to validate session: %w", err)
	}

	if session.IsExpired() {
		// Delete expired session
		db.Delete(&session)
		return nil, fmt.Errorf("session expired")
	}

	return &session, nil
}

// DeleteSession deletes a session (logout)
func DeleteSession(db *gorm.DB, token string) error {
	result := db.Where("token = ?", token).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	return nil
}

// CleanupExpiredSessions removes all expired sessions from the database
func CleanupExpiredSessions(db *gorm.DB) error {
	result := db.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("failed to cleanup expired sessions: %w", result.Error)
	}
	return nil
}
