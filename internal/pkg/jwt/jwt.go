package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Access tokens are issued by the platform's identity service with the shared
// secret; this backend only verifies them and reads the tenant claims.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// ClaimsFromContext extracts the tenant scope from the verified token.
// company_id is mandatory on every authenticated request; user_id identifies
// the acting bookkeeper and may be empty for service accounts.
func ClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}
