package util

import (
	"edutrack_backend/internal/model"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityContextKey = "identity"

// UserMetadata mirrors the user_metadata object the auth provider embeds in access tokens.
type UserMetadata struct {
	Name string         `json:"name"`
	Role model.UserRole `json:"role"`
}

// Claims are the claims of an auth provider access token (Supabase shape).
type Claims struct {
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() model.Identity {
	role := c.UserMetadata.Role
	if role != model.Teacher {
		role = model.Student
	}
	return model.Identity{
		ID:    c.Subject,
		Name:  c.UserMetadata.Name,
		Email: c.Email,
		Role:  role,
	}
}

// GenerateJWT signs a token for id. The service itself never issues tokens; this exists
// for local development and tests.
func GenerateJWT(id model.Identity, secret string, expiration time.Duration) (string, error) {
	claims := &Claims{
		Email: id.Email,
		UserMetadata: UserMetadata{
			Name: id.Name,
			Role: id.Role,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

func SetIdentity(c *gin.Context, id model.Identity) {
	c.Set(identityContextKey, id)
}

func GetIdentity(c *gin.Context) (model.Identity, bool) {
	v, exists := c.Get(identityContextKey)
	if !exists {
		return model.Identity{}, false
	}
	id, ok := v.(model.Identity)
	return id, ok
}
