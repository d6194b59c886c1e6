package middleware

import (
	"bitwise74/catalog-api/pkg/util"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	errNoToken      = errors.New("no auth token")
	errInvalidToken = errors.New("authorization token invalid")
)

// tokenFromRequest reads the auth_token cookie, falling back to a bearer
// Authorization header
func tokenFromRequest(c *gin.Context) string {
	if tokenStr, err := c.Cookie("auth_token"); err == nil && tokenStr != "" {
		return tokenStr
	}

	h := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(after)
	}

	return ""
}

// parseIdentity validates the request's token and returns the user ID it
// was issued for. Expiry is checked by the parser.
func parseIdentity(c *gin.Context, secret []byte) (string, error) {
	tokenStr := tokenFromRequest(c)
	if tokenStr == "" {
		return "", errNoToken
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w, %w", errInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errInvalidToken
	}

	// IDs end up comma joined in aggregated like sets, anything that
	// isn't shaped like one of ours is rejected
	userID, ok := claims["user_id"].(string)
	if !ok || !util.IsID(userID) {
		return "", errInvalidToken
	}

	return userID, nil
}

// NewJWTMiddleware rejects requests without a valid token and sets userID
// for the ones that have one
func NewJWTMiddleware() gin.HandlerFunc {
	secret := []byte(viper.GetString("security.jwt_secret"))

	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		userID, err := parseIdentity(c, secret)
		if err != nil {
			if errors.Is(err, errNoToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "Unauthorized",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid",
				"requestID": requestID,
			})

			zap.L().Debug("Rejected token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// NewOptionalJWTMiddleware sets userID when the request carries a valid
// token and lets everything else through as anonymous
func NewOptionalJWTMiddleware() gin.HandlerFunc {
	secret := []byte(viper.GetString("security.jwt_secret"))

	return func(c *gin.Context) {
		userID, err := parseIdentity(c, secret)
		if err == nil {
			c.Set("userID", userID)
		} else if !errors.Is(err, errNoToken) {
			zap.L().Debug("Ignoring invalid token", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
		}

		c.Next()
	}
}
