package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecovigia/wildlife-case-api/cases"
	"github.com/ecovigia/wildlife-case-api/config"
	"github.com/ecovigia/wildlife-case-api/databases"
)

// MiddlewareDB is a struct that holds the database and config needed
// to authenticate requests
type MiddlewareDB struct {
	DB     databases.UserDatabase
	Config *config.Config
}

var authenticator auth.Authenticator
var cache store.Cache

type contextKey string

const userContextKey contextKey = "authenticated-user"

// demoUser is a fixed credential set accepted when DEMO_MODE is on, so
// the app works without a user collection
type demoUser struct {
	ID       string
	Name     string
	Password string
	Role     string
}

var demoUsers = map[string]demoUser{
	"admin@ecovigia.gov.co":     {ID: "demo-admin", Name: "María González", Password: "admin123", Role: "admin"},
	"inspector@ecovigia.gov.co": {ID: "demo-inspector", Name: "Carlos Mendoza", Password: "inspector123", Role: "inspector"},
	"volunteer@ecovigia.gov.co": {ID: "demo-volunteer", Name: "Ana Rodríguez", Password: "volunteer123", Role: "volunteer"},
	"demo@ecovigia.gov.co":      {ID: "demo-user", Name: "Usuario Demo", Password: "demo123", Role: "volunteer"},
}

// Middleware adds authentication around accessing the routes and makes
// the authenticated identity available to handlers via the request
// context
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		user, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		zap.S().Debugf("user %s authenticated", user.UserName())

		identity := cases.Identity{
			ID:    user.ID(),
			Name:  user.UserName(),
			Email: firstExtension(user, "email"),
			Role:  firstExtension(user, "role"),
		}
		ctx := context.WithValue(r.Context(), userContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the identity stored by Middleware, or a zero
// identity when the route was not authenticated
func UserFromContext(ctx context.Context) cases.Identity {
	identity, _ := ctx.Value(userContextKey).(cases.Identity)
	return identity
}

func firstExtension(user auth.Info, key string) string {
	values := user.Extensions()[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// CreateToken validates basic credentials and returns a signed JWT
func (m MiddlewareDB) CreateToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	email, password, ok := r.BasicAuth()
	if !ok {
		http.Error(w, "basic auth failed", http.StatusUnauthorized)
		return
	}

	info, err := m.ValidateUser(r.Context(), r, email, password)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	claims := jwt.MapClaims{
		"sub":   info.ID(),
		"name":  info.UserName(),
		"email": firstExtension(info, "email"),
		"role":  firstExtension(info, "role"),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.Config.JWTSecret))
	if err != nil {
		http.Error(w, "token generation failed", http.StatusInternalServerError)
		return
	}

	w.Write([]byte(fmt.Sprintf(`{"token": "%s", "_id": "%s"}`, signed, info.ID())))
}

// SetupGoGuardian sets up the go-guardian middleware
func (m MiddlewareDB) SetupGoGuardian() {
	authenticator = auth.New()
	cache = store.NewFIFO(context.Background(), 24*time.Hour)
	basicStrategy := basic.New(m.ValidateUser, cache)
	tokenStrategy := bearer.New(m.AuthenticateToken, cache)

	authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// ValidateUser validates basic credentials against the demo user set
// or the users collection depending on the configured mode
func (m MiddlewareDB) ValidateUser(ctx context.Context, r *http.Request, email, password string) (auth.Info, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if m.Config.DemoMode {
		du, ok := demoUsers[email]
		if !ok || du.Password != password {
			return nil, fmt.Errorf("invalid credentials")
		}
		return auth.NewDefaultUser(du.Name, du.ID, nil, map[string][]string{
			"email": {email},
			"role":  {du.Role},
		}), nil
	}

	user, err := m.DB.FindOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("no matching email found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("failed to compare password")
	}

	return auth.NewDefaultUser(user.Name, user.ID, nil, map[string][]string{
		"email": {user.Email},
		"role":  {user.Role},
	}), nil
}

// AuthenticateToken validates a bearer JWT issued by CreateToken
func (m MiddlewareDB) AuthenticateToken(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(m.Config.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	sub, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return nil, fmt.Errorf("invalid token subject")
	}

	return auth.NewDefaultUser(name, sub, nil, map[string][]string{
		"email": {email},
		"role":  {role},
	}), nil
}

// RevokeToken revokes a cached token
func RevokeToken(w http.ResponseWriter, r *http.Request) {
	reqToken := r.Header.Get("Authorization")
	splitToken := strings.Split(reqToken, "Bearer ")
	if len(splitToken) < 2 {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "missing bearer token"}`))
		return
	}
	reqToken = splitToken[1]

	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Revoke(tokenStrategy, reqToken, r)
	body := fmt.Sprintf(`{"revoked token": "%s"}`, reqToken)
	w.Write([]byte(body))
}
