package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/ports"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// AuthService implements signup, login, and the stateless session lifecycle.
// The portal is the system of record for credentials.
type AuthService struct {
	users      ports.UserRepository
	affiliates ports.AffiliateRepository
	jwtSecret  string
	sessionTTL time.Duration
}

func NewAuthService(users ports.UserRepository, affiliates ports.AffiliateRepository, jwtSecret string, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{users: users, affiliates: affiliates, jwtSecret: jwtSecret, sessionTTL: sessionTTL}
}

func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*ports.SignupResult, error) {
	if err := validateSignup(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(input.FullName),
		Role:         domain.RoleAffiliate,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	aff, err := s.affiliates.Create(ctx, &domain.Affiliate{
		UserID:    user.ID,
		Code:      generateAffiliateCode(),
		Name:      user.FullName,
		Email:     user.Email,
		Phone:     strings.TrimSpace(input.Phone),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create affiliate: %w", err)
	}

	return &ports.SignupResult{User: user, Affiliate: aff}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Unknown email and wrong password are indistinguishable to the
		// caller; a storage failure is not a credentials problem.
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	userType := domain.UserTypeForRole(user.Role)

	var aff *domain.Affiliate
	if userType == domain.UserTypeAffiliate {
		aff, err = s.affiliates.FindByUserID(ctx, user.ID)
		if err != nil {
			return nil, domain.ErrAffiliateNotFound
		}
	}

	affiliateID := ""
	if aff != nil {
		affiliateID = aff.ID
	}

	token, err := s.IssueSession(user.ID, affiliateID, user.Role, userType)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{Token: token, User: user, Affiliate: aff}, nil
}

// IssueSession signs a session token carrying {uid, aid?, role, user_type}
// with an expiry sessionTTL from now. Transport (cookie or header) is the
// caller's concern.
func (s *AuthService) IssueSession(userID, affiliateID string, role domain.Role, userType domain.UserType) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":       userID,
		"role":      string(role),
		"user_type": string(userType),
		"iat":       now.Unix(),
		"exp":       now.Add(s.sessionTTL).Unix(),
	}
	if affiliateID != "" {
		claims["aid"] = affiliateID
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// ValidateSession verifies signature and expiry and decodes the payload.
// Signature mismatch, malformed payload, and expiry all collapse into
// domain.ErrInvalidSession; no differentiated handling exists downstream.
func (s *AuthService) ValidateSession(token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrInvalidSession
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidSession
	}

	uid, _ := claims["uid"].(string)
	roleStr, _ := claims["role"].(string)
	typeStr, _ := claims["user_type"].(string)
	aid, _ := claims["aid"].(string)

	role := domain.Role(roleStr)
	userType := domain.UserType(typeStr)
	if uid == "" || !role.Valid() || !userType.Valid() {
		return nil, domain.ErrInvalidSession
	}

	return &domain.Session{
		UserID:      uid,
		AffiliateID: aid,
		Role:        role,
		UserType:    userType,
	}, nil
}

// RequireAuth validates the token and re-reads the referenced rows from
// storage. Trusting the signed payload alone would leave deleted or
// deactivated accounts authenticated until expiry; the re-check bounds that
// staleness window to a single request.
func (s *AuthService) RequireAuth(ctx context.Context, token string) (*domain.Identity, error) {
	sess, err := s.ValidateSession(token)
	if err != nil {
		return nil, domain.ErrInvalidSession
	}

	user, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil || !user.IsActive {
		return nil, domain.ErrInvalidSession
	}

	if sess.UserType != domain.UserTypeAffiliate {
		return &domain.Identity{User: user}, nil
	}

	if sess.AffiliateID == "" {
		return nil, domain.ErrInvalidSession
	}
	aff, err := s.affiliates.FindByID(ctx, sess.AffiliateID)
	if err != nil {
		return nil, domain.ErrInvalidSession
	}

	return &domain.Identity{User: user, Affiliate: aff}, nil
}

func validateSignup(input ports.SignupInput) error {
	if strings.TrimSpace(input.FullName) == "" || input.Email == "" || input.Password == "" {
		return domain.ErrInvalidCredentials
	}
	if len(strings.TrimSpace(input.FullName)) < 2 {
		return domain.ErrInvalidCredentials
	}
	if !strings.Contains(input.Email, "@") {
		return domain.ErrInvalidCredentials
	}
	return validatePasswordStrength(input.Password)
}

// validatePasswordStrength requires at least 8 characters with one lower,
// one upper, and one digit.
func validatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domain.ErrInvalidCredentials
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// generateAffiliateCode returns a unique code in the format AFF-XXXXXXXX.
func generateAffiliateCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("AFF-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("AFF-%08X", b)
}
