package auth

import (
	"messenger/errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Cheap parameters, tests only check the round trip
var testHasher = NewPasswordHasher(1024, 1, 1)

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	password := "MyPassw0rdIsStr0ng!"

	hash, err := testHasher.Hash(password)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))
	req.Contains(hash, "m=1024,t=1,p=1")

	match, err := testHasher.Compare(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = testHasher.Compare("WrongPassword", hash)
	req.NoError(err)
	req.False(match)
}

func TestCompare_UsesParametersFromHash(t *testing.T) {
	req := require.New(t)
	hash, err := testHasher.Hash("Another-Pass-123")
	req.NoError(err)

	match, err := DefaultPasswordHasher().Compare("Another-Pass-123", hash)
	req.NoError(err)
	req.True(match)
}

func TestCompare_RejectsMalformedHash(t *testing.T) {
	req := require.New(t)
	for _, hash := range []string{"", "plain", "$bcrypt$v=1$m=1,t=1,p=1$c2FsdA$aGFzaA"} {
		_, err := testHasher.Compare("whatever", hash)
		req.Error(err, hash)
	}
}

func TestRegistrationValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"Valid request", RegisterRequest{"alice42", "ComplexPass123!"}, false},
		{"Username too short", RegisterRequest{"al", "ComplexPass123!"}, true},
		{"Username with spaces", RegisterRequest{"alice smith", "ComplexPass123!"}, true},
		{"Password too short", RegisterRequest{"alice42", "Short1!"}, true},
		{"Missing digit", RegisterRequest{"alice42", "NoDigitPass!"}, true},
		{"Missing special char", RegisterRequest{"alice42", "NoSpecialChar123"}, true},
		{"Missing uppercase", RegisterRequest{"alice42", "nouppercase123!"}, true},
		{"Password too long", RegisterRequest{"alice42", strings.Repeat("a", 73)}, true},
		{"Username with underscore", RegisterRequest{"alice_42", "ComplexPass123!"}, false},
		{"Username starting with digit", RegisterRequest{"42alice", "ComplexPass123!"}, true},
		{"Username with accent", RegisterRequest{"élodie", "ComplexPass123!"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			err := ValidateRegister(tt.req)
			if tt.wantErr {
				req.Error(err)
			} else {
				req.NoError(err)
			}
		})
	}
}

func TestValidateRegister_WeakPassword(t *testing.T) {
	req := require.New(t)

	req.ErrorIs(ValidateRegister(RegisterRequest{"alice42", "nouppercase123!"}), errors.ErrInvalidPassword)
	// A bad username alongside is reported by the validator itself
	err := ValidateRegister(RegisterRequest{"a!", "nouppercase123!"})
	req.Error(err)
	req.NotErrorIs(err, errors.ErrInvalidPassword)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", "messenger")
	userID, sessionID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	token, err := issuer.Issue(userID, sessionID, now, now.Add(time.Hour))
	req.NoError(err)

	claims, err := issuer.Parse(token)
	req.NoError(err)
	req.Equal(userID.String(), claims.Subject)
	req.Equal(sessionID.String(), claims.SessionID)
}

func TestTokenIssuer_ExpiredTokenStillParses(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", "messenger")
	past := time.Now().UTC().Add(-2 * time.Hour)

	token, err := issuer.Issue(uuid.New(), uuid.New(), past, past.Add(time.Hour))
	req.NoError(err)

	_, err = issuer.Parse(token)
	req.NoError(err)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	now := time.Now().UTC()
	token, err := NewTokenIssuer("test-secret", "messenger").
		Issue(uuid.New(), uuid.New(), now, now.Add(time.Hour))
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenIssuer("other-secret", "messenger").Parse(token)
		require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := NewTokenIssuer("test-secret", "someone-else").Parse(token)
		require.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := NewTokenIssuer("test-secret", "messenger").Parse("not-a-token")
		require.Error(t, err)
	})
}

func BenchmarkHashPassword(b *testing.B) {
	hasher := DefaultPasswordHasher()
	for i := 0; i < b.N; i++ {
		_, _ = hasher.Hash("A-very-long-and-complex-password-for-bench-123!")
	}
}
