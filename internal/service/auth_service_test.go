package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/olaitanade/Rust-React-Chat/internal/domain"
	"github.com/olaitanade/Rust-React-Chat/internal/repository"
)

func TestLogin_IssuesTokenForKnownPhone(t *testing.T) {
	req := require.New(t)
	userRepo := newFakeUserRepo()
	userRepo.users["u1"] = domain.User{ID: "u1", Username: "alice", Phone: "+15551234"}

	svc := NewAuthService(userRepo, "test-secret")

	resp, err := svc.Login(context.Background(), LoginInput{Phone: "+15551234"})
	req.NoError(err)
	req.Equal("u1", resp.User.ID)
	req.NotEmpty(resp.AccessToken)

	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	req.NoError(err)
	req.True(token.Valid)

	sub, err := token.Claims.GetSubject()
	req.NoError(err)
	req.Equal("u1", sub)
}

func TestLogin_UnknownPhone(t *testing.T) {
	req := require.New(t)
	svc := NewAuthService(newFakeUserRepo(), "test-secret")

	_, err := svc.Login(context.Background(), LoginInput{Phone: "+10000000"})
	req.ErrorIs(err, repository.ErrUserNotFound)
}
