package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func TestCreateAndValidateToken(t *testing.T) {
	companyID := 7
	token, err := CreateToken(42, RolePartner, &companyID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, RolePartner, claims.Role)
	assert.NotNil(t, claims.CompanyID)
	assert.Equal(t, 7, *claims.CompanyID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("")
	assert.Error(t, err)
	_, err = ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "partner", "driver", "customer"} {
		role, err := ParseRole(s)
		assert.NoError(t, err)
		assert.True(t, role.Valid())
	}
	_, err := ParseRole("superuser")
	assert.Error(t, err)
	assert.False(t, Role("Admin").Valid())
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, RoleAdmin.CanManageFleet())
	assert.True(t, RolePartner.CanManageFleet())
	assert.False(t, RoleDriver.CanManageFleet())
	assert.False(t, RoleCustomer.CanManageFleet())
}
