// Package session issues anonymous viewer identities. A first-time visitor
// gets a random viewer id wrapped in a signed cookie; there are no accounts
// and no passwords, the token only pins one browser to one queue identity.
package session

import (
	"errors"
	"net/http"
	"time"

	"qomo-drops/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "viewer_session"

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token expired")
)

type Claims struct {
	ViewerID string `json:"viewer_id"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey []byte
	duration  time.Duration
}

func NewService(cfg config.SessionConfig) *Service {
	return &Service{
		secretKey: []byte(cfg.Secret),
		duration:  cfg.Duration,
	}
}

// Issue mints a fresh viewer id and the signed token carrying it.
func (s *Service) Issue(now time.Time) (viewerID, token string, err error) {
	viewerID = "viewer_" + uuid.NewString()
	claims := Claims{
		ViewerID: viewerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	return viewerID, token, err
}

// Validate returns the viewer id carried by a token.
func (s *Service) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ViewerID == "" {
		return "", ErrInvalidToken
	}
	return claims.ViewerID, nil
}

func SetCookie(c *gin.Context, cfg config.SessionConfig, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		CookieName,
		token,
		int(cfg.Duration.Seconds()),
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
}

func GetToken(c *gin.Context) string {
	token, _ := c.Cookie(CookieName)
	return token
}
