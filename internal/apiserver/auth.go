package apiserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// apiSubject is the fixed JWT subject used for the conversion API's
// single shared secret. There is no per-user identity here, unlike the
// teacher's token.go, because the API has no user/password model: a
// bearer token just proves possession of the configured secret.
const apiSubject = "fadot-api-client"

// IssueToken signs a bearer token that RequireBearerAuth will accept,
// valid for ttl from now. Grounded on server/token.go's generateJWT,
// with the per-user signing key (password + logout time) dropped since
// there is no user store to derive one from.
func IssueToken(secret []byte, ttl time.Duration) (string, error) {
	claims := &jwt.MapClaims{
		"iss": "fadot",
		"sub": apiSubject,
		"exp": time.Now().Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(secret)
}

func getBearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	scheme := strings.TrimSpace(strings.ToLower(parts[0]))
	tok := strings.TrimSpace(parts[1])
	if scheme != "bearer" {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}
	return tok, nil
}

func validateToken(tok string, secret []byte) error {
	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer("fadot"), jwt.WithLeeway(time.Minute))
	return err
}

// RequireBearerAuth is middleware that rejects any request not bearing
// a valid token signed with secret. Grounded on server/middle's
// AuthHandler, with the DB-backed user lookup removed.
func RequireBearerAuth(secret []byte, unauthDelay time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			tok, err := getBearerToken(req)
			if err == nil {
				err = validateToken(tok, secret)
			}
			if err != nil {
				time.Sleep(unauthDelay)
				writeError(w, req, http.StatusUnauthorized, "you are not authorized to do that", err)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
