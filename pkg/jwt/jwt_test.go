package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-ledger/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := jwt.Generate(secret, "u-1", "bodeguero", "wms-ledger-test", 60)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "bodeguero", claims.Role)
	assert.Equal(t, "wms-ledger-test", claims.Issuer)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := jwt.Generate(secret, "u-1", "admin", "", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := jwt.Generate(secret, "u-1", "admin", "", 60)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u-1", "admin", "", 60)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
	_, err = jwt.Parse("", "x.y.z")
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}
