package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
	"github.com/zurichjs/rewards/internal/config"
	ierr "github.com/zurichjs/rewards/internal/errors"
)

// Claims are the fields this service reads from the auth provider's
// session JWT.
type Claims struct {
	UserID string
	Email  string
	Roles  []string
}

// Validator verifies session tokens issued by the upstream auth provider
type Validator interface {
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

type jwtValidator struct {
	secret []byte
}

// NewValidator creates a session token validator keyed with the
// configured auth secret.
func NewValidator(cfg *config.Configuration) Validator {
	return &jwtValidator{secret: []byte(cfg.Auth.Secret)}
}

func (v *jwtValidator) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHintf("unexpected signing method: %v", token.Header["alg"]).
				Mark(ierr.ErrPermissionDenied)
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	mapClaims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	claims := &Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.UserID = sub
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if rawRoles, ok := mapClaims["roles"].([]interface{}); ok {
		for _, r := range rawRoles {
			if role, ok := r.(string); ok {
				claims.Roles = append(claims.Roles, role)
			}
		}
	}

	if claims.UserID == "" {
		return nil, ierr.NewError("token carries no subject").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	return claims, nil
}
