package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
)

const (
	sessionTokenKey   = "sessionToken"
	contextAccountKey = "account"
	loginPath         = "/login"
)

var errNoSession = errors.New("no session in context")

// Claims represents the session claims transmitted via the session cookie.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
}

// NewClaims returns the claims of a new session of acc, valid for ttl.
func NewClaims(acc account.Account, issuer string, ttl time.Duration) *Claims {
	now := core.NowFunc()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(acc.ID, 10),
			ExpiresAt: now.Add(ttl).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: acc.Username,
	}
}

// GenerateToken generates a signed JWT token string representing the session Claims.
func GenerateToken(claims *Claims, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(key)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// sessionManager issues, checks and ends the cookie sessions.
type sessionManager struct {
	conf     *core.Config
	key      []byte
	store    core.SessionStore
	accounts account.Service
}

func newSessionManager(conf *core.Config, store core.SessionStore, accounts account.Service) *sessionManager {
	return &sessionManager{
		conf:     conf,
		key:      []byte(conf.SecretKey),
		store:    store,
		accounts: accounts,
	}
}

func (sm *sessionManager) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     sm.conf.Session.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   !sm.conf.Debug,
		SameSite: http.SameSiteLaxMode,
	}
}

// start sets the session cookie of a freshly authenticated account.
func (sm *sessionManager) start(ctx echo.Context, acc account.Account) error {
	claims := NewClaims(acc, sm.conf.AppName, sm.conf.Session.TTL)
	token, err := GenerateToken(claims, sm.key)
	if err != nil {
		return err
	}
	ctx.SetCookie(sm.cookie(token, time.Unix(claims.ExpiresAt, 0)))
	return nil
}

// end revokes the current session until it would have expired and clears the cookie.
func (sm *sessionManager) end(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	ttl := time.Unix(claims.ExpiresAt, 0).Sub(core.NowFunc())
	if err = sm.store.Revoke(ctx.Request().Context(), claims.Id, ttl); err != nil {
		return errors.Wrap(err, "revoking session")
	}
	sm.clear(ctx)
	return nil
}

func (sm *sessionManager) clear(ctx echo.Context) {
	c := sm.cookie("", time.Unix(0, 0))
	c.MaxAge = -1
	ctx.SetCookie(c)
}

// toLogin is the answer to any request that lacks a usable session.
func (sm *sessionManager) toLogin(ctx echo.Context) error {
	sm.clear(ctx)
	return ctx.Redirect(http.StatusSeeOther, loginPath)
}

// middleware authenticates the request from the session cookie and loads its account.
func (sm *sessionManager) middleware() echo.MiddlewareFunc {
	jwtMiddleware := middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:    sm.key,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    sessionTokenKey,
		Claims:        new(Claims),
		TokenLookup:   "cookie:" + sm.conf.Session.CookieName,
		ErrorHandlerWithContext: func(_ error, ctx echo.Context) error {
			return sm.toLogin(ctx)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return jwtMiddleware(func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return sm.toLogin(ctx)
			}

			revoked, err := sm.store.IsRevoked(ctx.Request().Context(), claims.Id)
			if err != nil {
				return errors.Wrap(err, "checking session revocation")
			}
			if revoked {
				return sm.toLogin(ctx)
			}

			id, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil {
				return sm.toLogin(ctx)
			}
			acc, err := sm.accounts.GetByID(ctx.Request().Context(), id)
			if err != nil {
				if errors.Cause(err) == account.ErrNotFound {
					return sm.toLogin(ctx)
				}
				return errors.Wrap(err, "finding account by ID")
			}

			ctx.Set(contextAccountKey, acc)
			return next(ctx)
		})
	}
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(sessionTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errNoSession
}

func getContextAccount(ctx echo.Context) (account.Account, error) {
	if acc, ok := ctx.Get(contextAccountKey).(account.Account); ok {
		return acc, nil
	}
	return account.Account{}, errNoSession
}
