package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"HeadsUpPoker/internal/game/manager"
	"HeadsUpPoker/internal/game/table"
)

// ErrInvalidToken covers malformed, mis-signed and expired join tokens.
var ErrInvalidToken = errors.New("invalid token")

// Service issues and resolves join tokens. A token is a signed pointer at
// a stored Binding; revoking the binding revokes the token.
type Service struct {
	repo   Repo
	tables *manager.Manager
	secret []byte
	ttl    time.Duration
}

func NewService(repo Repo, tables *manager.Manager, secret string, ttl time.Duration) *Service {
	return &Service{
		repo:   repo,
		tables: tables,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Join binds a seat at an existing table and returns a signed token for
// it. Joining does not reserve the seat exclusively; a second join for
// the same seat yields another token controlling the same seat.
func (s *Service) Join(ctx context.Context, tableID int64, seat int) (string, Binding, error) {
	if seat != 0 && seat != 1 {
		return "", Binding{}, table.ErrUnknownSeat
	}
	if _, err := s.tables.Get(tableID); err != nil {
		return "", Binding{}, err
	}

	b := Binding{
		ID:        uuid.NewString(),
		TableID:   tableID,
		Seat:      seat,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, b, s.ttl); err != nil {
		return "", Binding{}, err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":   b.ID,
		"table": b.TableID,
		"seat":  b.Seat,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", Binding{}, err
	}
	return signed, b, nil
}

// Resolve validates a token and returns the stored binding. The table and
// seat come from the store, not the claims, so a revoked session cannot
// be replayed.
func (s *Service) Resolve(ctx context.Context, tokenString string) (Binding, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Binding{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Binding{}, ErrInvalidToken
	}
	sid, ok := claims["sid"].(string)
	if !ok {
		return Binding{}, ErrInvalidToken
	}
	return s.repo.Get(ctx, sid)
}

// Leave revokes a session.
func (s *Service) Leave(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}
