package echoapi

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/meritum/core"
	"github.com/trezcool/meritum/core/auth"
)

var (
	// appJWTConfig is the default JWT auth middleware config.
	appJWTConfig = middleware.JWTConfig{
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "sessionToken",
		Claims:        new(Claims),
	}

	appName                   string
	jwtExpirationDelta        time.Duration
	jwtRefreshExpirationDelta time.Duration
)

func initJWTAuth(conf *core.Config) {
	appJWTConfig.SigningKey = []byte(conf.SecretKey)
	appName = conf.AppName
	jwtExpirationDelta = conf.Server.JWTExpirationDelta
	jwtRefreshExpirationDelta = conf.Server.JWTRefreshExpirationDelta
}

// Claims represents the authorization claims transmitted via a JWT.
// The resolved Session is self-contained; no DB hit is needed per request.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	Email        string `json:"email,omitempty"`
	DisplayName  string `json:"display_name,omitempty"`
	Role         string `json:"role,omitempty"`
	MatricNumber string `json:"matric,omitempty"`
}

func (c Claims) Session() auth.Session {
	return auth.Session{
		UID:          c.Subject,
		Email:        c.Email,
		DisplayName:  c.DisplayName,
		Role:         c.Role,
		MatricNumber: c.MatricNumber,
	}
}

func (c Claims) IsAdmin() bool { return c.Role == auth.RoleAdmin }

func GetSessionClaims(sess auth.Session, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    appName,
			Subject:   sess.UID,
			Audience:  "MeritPortal",
			ExpiresAt: now.Add(jwtExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Email:        sess.Email,
		DisplayName:  sess.DisplayName,
		Role:         sess.Role,
		MatricNumber: sess.MatricNumber,
	}
}

// GenerateToken generates a signed JWT token string representing the session Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func refreshToken(ctx echo.Context) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(jwtRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	newClaims := GetSessionClaims(claims.Session(), claims.OrigIssuedAt)
	token, err := GenerateToken(newClaims)
	return token, errors.Wrap(err, "generating token")
}
