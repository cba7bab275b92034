package server

import (
	"net/http"
	"testing"

	"github.com/jointoit/events-api/internal/models"
	"github.com/jointoit/events-api/pkg/bcrypt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserBody() map[string]any {
	return map[string]any{
		"username":   "testuser",
		"first_name": "Test",
		"last_name":  "User",
		"email":      "test@example.com",
		"password":   "strongpassword123",
	}
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/users/", newUserBody(), "")
	require.Equal(t, http.StatusCreated, resp.status)
	assert.Equal(t, map[string]any{
		"username":   "testuser",
		"first_name": "Test",
		"last_name":  "User",
		"email":      "test@example.com",
	}, resp.object(t))

	var user models.User
	require.NoError(t, env.db.Last(&user).Error)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "Test", user.FirstName)
	assert.Equal(t, "User", user.LastName)
	assert.Equal(t, "test@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.ComparePassword(user.PasswordHash, "strongpassword123"))
}

func TestCreateExistingUser(t *testing.T) {
	env := newTestEnv(t)
	existing := map[string]any{
		"username":   "existing_user",
		"first_name": "Existing",
		"last_name":  "user",
		"email":      "test@existing.com",
		"password":   "strongpassword123",
	}
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/users/", existing, "").status)

	data := cloneBody(existing)
	data["username"] = "Test"
	resp := env.do(t, http.MethodPost, "/users/", data, "")
	require.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, map[string]any{
		"message": "Validation error",
		"errors": map[string]any{
			"email": "user with this email address already exists.",
		},
	}, resp.object(t))

	data = cloneBody(existing)
	data["email"] = "Test@test.com"
	resp = env.do(t, http.MethodPost, "/users/", data, "")
	require.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, map[string]any{
		"message": "Validation error",
		"errors": map[string]any{
			"username": "A user with that username already exists.",
		},
	}, resp.object(t))

	assert.EqualValues(t, 1, countRows(t, env.db, &models.User{}))
}

func TestCreateUserWithoutFields(t *testing.T) {
	env := newTestEnv(t)

	for key := range newUserBody() {
		t.Run(key, func(t *testing.T) {
			data := newUserBody()
			delete(data, key)

			resp := env.do(t, http.MethodPost, "/users/", data, "")
			require.Equal(t, http.StatusBadRequest, resp.status)
			assert.Equal(t, map[string]any{
				"message": "Validation error",
				"errors": map[string]any{
					key: "This field is required.",
				},
			}, resp.object(t))
		})
	}
	assert.Zero(t, countRows(t, env.db, &models.User{}))
}

func TestCreateUserInvalidFields(t *testing.T) {
	env := newTestEnv(t)

	data := newUserBody()
	data["email"] = "not-an-email"
	data["username"] = "has space"
	data["first_name"] = "   "

	resp := env.do(t, http.MethodPost, "/users/", data, "")
	require.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, map[string]any{
		"email":      "Enter a valid email address.",
		"username":   "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.",
		"first_name": "This field may not be blank.",
	}, resp.object(t)["errors"])
}

func cloneBody(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
