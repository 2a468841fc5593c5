package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"ltobackend/internal/domain"
	"ltobackend/internal/repositories"
	"ltobackend/internal/utils"
)

// AuthService verifies credentials against the three role tables through one
// interface. Passwords are stored as bcrypt hashes; login outcomes match the
// legacy behavior (driver checked first, then officer, then admin, and an
// unverified driver with good credentials is refused, not logged in).
type AuthService struct {
	Drivers   repositories.DriverRepository
	Officers  repositories.OfficerRepository
	Admins    repositories.AdminRepository
	JWTSecret []byte
	RequestID string
}

// LoginResult is the authenticated principal plus its session token.
type LoginResult struct {
	Token         string      `json:"token"`
	UserType      domain.Role `json:"user_type"`
	UserID        int64       `json:"user_id"`
	FullName      string      `json:"full_name"`
	AccountStatus string      `json:"account_status,omitempty"`
}

type credential struct {
	id            int64
	hash          string
	fullName      string
	role          domain.Role
	accountStatus string
}

// Login resolves username across the role tables and compares the bcrypt hash.
func (s AuthService) Login(username, password string) (LoginResult, error) {
	username = utils.TrimOrEmpty(username)
	if username == "" || password == "" {
		return LoginResult{}, domain.ValidationError{Msg: "username and password are required"}
	}

	cred, err := s.lookup(username)
	if err != nil {
		return LoginResult{}, err
	}
	if cred == nil {
		return LoginResult{}, domain.AuthError{Msg: "invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.hash), []byte(password)); err != nil {
		return LoginResult{}, domain.AuthError{Msg: "invalid credentials"}
	}

	if cred.role == domain.RoleDriver && cred.accountStatus != "Verified" {
		return LoginResult{}, domain.AuthError{
			Msg:       "your account is not verified, please contact LTO admin",
			Forbidden: true,
		}
	}

	token, err := s.issueToken(cred.id, cred.role)
	if err != nil {
		return LoginResult{}, domain.InternalError{Msg: "failed to create token", Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "login", "role="+string(cred.role))
	return LoginResult{
		Token:         token,
		UserType:      cred.role,
		UserID:        cred.id,
		FullName:      cred.fullName,
		AccountStatus: cred.accountStatus,
	}, nil
}

// lookup walks the role tables in legacy precedence order. A missing row in
// one table falls through to the next; only backend faults stop the walk.
func (s AuthService) lookup(username string) (*credential, error) {
	if d, err := s.Drivers.GetByUsername(username); err == nil {
		return &credential{d.ID, d.PasswordHash, d.FullName, domain.RoleDriver, d.AccountStatus}, nil
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	if o, err := s.Officers.GetByUsername(username); err == nil {
		return &credential{o.ID, o.PasswordHash, o.FullName, domain.RoleOfficer, ""}, nil
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	if a, err := s.Admins.GetByUsername(username); err == nil {
		return &credential{a.ID, a.PasswordHash, a.FullName, domain.RoleAdmin, ""}, nil
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	return nil, nil
}

func (s AuthService) issueToken(userID int64, role domain.Role) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(s.JWTSecret)
}
