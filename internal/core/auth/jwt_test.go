package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTer() *JWTer {
	return &JWTer{Secret: []byte("test-secret-0123456789"), Issuer: "cardlink-test"}
}

func TestIssueAndParse(t *testing.T) {
	j := newTestJWTer()

	token, err := j.Issue("user-1")
	require.NoError(t, err)

	claims, err := j.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UID)
	assert.Empty(t, claims.Imp)
	assert.Equal(t, "cardlink-test", claims.Issuer)
}

func TestIssueImpersonated(t *testing.T) {
	j := newTestJWTer()

	token, err := j.IssueImpersonated("user-2", "admin-1")
	require.NoError(t, err)

	claims, err := j.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-2", claims.UID)
	assert.Equal(t, "admin-1", claims.Imp)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	j := newTestJWTer()
	token, err := j.Issue("user-1")
	require.NoError(t, err)

	// 改签名段最后一个字符
	tampered := token[:len(token)-1]
	if token[len(token)-1] == 'A' {
		tampered += "B"
	} else {
		tampered += "A"
	}
	_, err = j.Parse(tampered)
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j := newTestJWTer()
	token, err := j.Issue("user-1")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("another-secret"), Issuer: j.Issuer}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	j := newTestJWTer()
	other := &JWTer{Secret: j.Secret, Issuer: "someone-else"}
	token, err := other.Issue("user-1")
	require.NoError(t, err)

	_, err = j.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	j := newTestJWTer()
	// 超出 60s leeway 的过期令牌
	token, err := j.issue("user-1", "", -2*time.Minute)
	require.NoError(t, err)

	_, err = j.Parse(token)
	assert.Error(t, err)
}
