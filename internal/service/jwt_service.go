package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTService emite y valida access tokens para clientes de la API.
type JWTService struct {
	secret    []byte
	accessTTL time.Duration
	issuer    string
	revoked   RevocationStore
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type Claims struct {
	ClientID  string `json:"cid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
	ErrJWTRevoked = errors.New("jwt revoked")
)

const tokenTypeAccess = "access"

func NewJWTService(secret, issuer string, accessTTL time.Duration) *JWTService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if strings.TrimSpace(issuer) == "" {
		issuer = "saju-api"
	}
	return &JWTService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		issuer:    issuer,
		revoked:   NewMemoryRevocationStore(),
	}
}

func NewJWTServiceWithStore(secret, issuer string, accessTTL time.Duration, store RevocationStore) *JWTService {
	svc := NewJWTService(secret, issuer, accessTTL)
	if store != nil {
		svc.revoked = store
	}
	return svc
}

// Issue firma un access token para el cliente.
func (s *JWTService) Issue(clientID string) (AccessToken, error) {
	if len(s.secret) == 0 || strings.TrimSpace(clientID) == "" {
		return AccessToken{}, ErrJWTInvalid
	}
	now := time.Now().UTC()
	claims := Claims{
		ClientID:  clientID,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}

func (s *JWTService) ParseAccessToken(accessToken string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(accessToken) == "" {
		return Claims{}, ErrJWTInvalid
	}
	claims, err := s.parseToken(accessToken)
	if err != nil {
		return Claims{}, err
	}
	if claims.TokenType != tokenTypeAccess || !s.isValidClaims(claims) {
		return Claims{}, ErrJWTInvalid
	}
	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(claims.ID)
		if err != nil {
			return Claims{}, err
		}
		if revoked {
			return Claims{}, ErrJWTRevoked
		}
	}
	return claims, nil
}

// Revoke invalida el token hasta su expiracion natural.
func (s *JWTService) Revoke(accessToken string) error {
	claims, err := s.ParseAccessToken(accessToken)
	if err != nil {
		return err
	}
	if s.revoked == nil {
		return ErrJWTInvalid
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.revoked.Revoke(claims.ID, ttl)
}

func (s *JWTService) parseToken(tokenString string) (Claims, error) {
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

func (s *JWTService) isValidClaims(claims Claims) bool {
	if strings.TrimSpace(claims.ClientID) == "" || strings.TrimSpace(claims.ID) == "" {
		return false
	}
	if claims.Subject != claims.ClientID {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
