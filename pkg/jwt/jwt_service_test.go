package jwt

import (
	"context"
	"errors"
	"testing"
	"time"

	"Expiry-Reminder/domain"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("secret")
	token, err := svc.GenerateTokenUser("uid-1")
	require.NoError(t, err)

	userID, err := svc.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", userID)
}

func TestJWTRejectsForeignAndExpiredTokens(t *testing.T) {
	other, err := NewJWTService("other-secret").GenerateTokenUser("uid-1")
	require.NoError(t, err)
	_, err = NewJWTService("secret").VerifyToken(context.Background(), other)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	expired := &jwtService{secretKey: "secret", issuer: "test", ttl: -time.Minute}
	token, err := expired.GenerateTokenUser("uid-1")
	require.NoError(t, err)
	_, err = expired.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)

	_, err = NewJWTService("secret").VerifyToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

type fakeIDTokens struct {
	uid string
	err error
}

func (f fakeIDTokens) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &auth.Token{UID: f.uid}, nil
}

func TestFirebaseVerifier(t *testing.T) {
	uid, err := (&FirebaseVerifier{client: fakeIDTokens{uid: "firebase-uid"}}).VerifyToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid", uid)

	_, err = (&FirebaseVerifier{client: fakeIDTokens{err: errors.New("expired")}}).VerifyToken(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
