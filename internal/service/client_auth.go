package service

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash iguala el costo de bcrypt cuando el cliente no existe.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("saju-api-unknown-client"), bcrypt.DefaultCost)

// ClientAuthService canjea credenciales de cliente por access tokens.
type ClientAuthService struct {
	logger  *zap.Logger
	clients map[string]string
	jwt     *JWTService
}

// NewClientAuthService recibe client_id -> hash bcrypt del secreto.
func NewClientAuthService(logger *zap.Logger, clients map[string]string, jwtSvc *JWTService) *ClientAuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	normalized := make(map[string]string, len(clients))
	for id, hash := range clients {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		normalized[id] = strings.TrimSpace(hash)
	}
	return &ClientAuthService{
		logger:  logger,
		clients: normalized,
		jwt:     jwtSvc,
	}
}

func (s *ClientAuthService) Authenticate(clientID, secret string) (AccessToken, error) {
	clientID = strings.TrimSpace(clientID)
	hash, ok := s.clients[clientID]
	if !ok {
		hash = string(dummyHash)
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	if !ok || err != nil {
		s.logger.Warn("client authentication failed", zap.String("client_id", clientID))
		return AccessToken{}, ErrInvalidCredentials
	}
	if s.jwt == nil {
		return AccessToken{}, ErrJWTInvalid
	}
	return s.jwt.Issue(clientID)
}

// HashSecret genera el hash bcrypt que se configura en API_CLIENTS.
func HashSecret(secret string) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", errors.New("secret is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
