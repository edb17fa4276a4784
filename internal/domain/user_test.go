package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserValidate(t *testing.T) {
	user := User{FirstName: "Marie-Jeanne", LastName: "Rochat", Role: UserRoleCitizen}
	assert.Empty(t, user.Validate())

	user = User{FirstName: "A", LastName: "Rochat", Role: UserRoleCitizen}
	assertFieldError(t, user.Validate(), "firstName")

	user = User{FirstName: longString(21), LastName: "Rochat", Role: UserRoleCitizen}
	assertFieldError(t, user.Validate(), "firstName")

	user = User{FirstName: "Marie", LastName: "", Role: UserRoleManager}
	assertFieldError(t, user.Validate(), "lastName")

	user = User{FirstName: "Marie", LastName: "Rochat", Role: "admin"}
	assertFieldError(t, user.Validate(), "role")
}

func TestUserApplyMergesOnlyPresentFields(t *testing.T) {
	user := User{FirstName: "Marie", LastName: "Rochat", Role: UserRoleCitizen}

	newRole := UserRoleManager
	user.Apply(UserPatch{Role: &newRole})

	assert.Equal(t, "Marie", user.FirstName)
	assert.Equal(t, "Rochat", user.LastName)
	assert.Equal(t, UserRoleManager, user.Role)
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID(NewID()))
	assert.False(t, IsValidID("not-a-valid-id"))
	assert.False(t, IsValidID(""))
	assert.False(t, IsValidID("5aabe03a68f49609145bfcd2"))
	assert.False(t, IsValidID("urn:uuid:0de48b0a-bec8-4f4f-9b8c-6f3bd31d53ab"))
}
