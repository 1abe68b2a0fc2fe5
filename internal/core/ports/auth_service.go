package ports

import (
	"context"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
)

// SignupInput carries everything needed to open an affiliate account.
type SignupInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
}

// SignupResult is returned after a successful signup.
type SignupResult struct {
	User      *domain.User
	Affiliate *domain.Affiliate
}

// LoginResult bundles the signed session token with the identities it covers.
type LoginResult struct {
	Token     string
	User      *domain.User
	Affiliate *domain.Affiliate // nil for admin/staff logins
}

// AuthService turns credentials into sessions and sessions back into
// verified identities.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*SignupResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// IssueSession signs a token for the given identity. affiliateID is empty
	// for admin/staff sessions.
	IssueSession(userID, affiliateID string, role domain.Role, userType domain.UserType) (string, error)

	// ValidateSession verifies signature and expiry and decodes the payload.
	// Every failure collapses into domain.ErrInvalidSession.
	ValidateSession(token string) (*domain.Session, error)

	// RequireAuth validates the token and re-reads the referenced rows from
	// storage, bounding the staleness window for deleted or deactivated
	// accounts to a single request.
	RequireAuth(ctx context.Context, token string) (*domain.Identity, error)
}
