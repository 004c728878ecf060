package forms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ytinsight/insight-client/internal/models"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name   string
		req    models.LoginRequest
		fields []string
	}{
		{name: "Valid", req: models.LoginRequest{Email: "a@b.com", Password: "secret1"}},
		{name: "Missing email", req: models.LoginRequest{Password: "x"}, fields: []string{"email"}},
		{name: "Malformed email", req: models.LoginRequest{Email: "not-an-email", Password: "x"}, fields: []string{"email"}},
		{name: "Email without domain dot", req: models.LoginRequest{Email: "a@b", Password: "x"}, fields: []string{"email"}},
		{name: "Missing password", req: models.LoginRequest{Email: "a@b.com"}, fields: []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Login(tt.req)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			var fe FieldErrors
			require.True(t, errors.As(err, &fe))
			for _, field := range tt.fields {
				assert.Contains(t, fe, field)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	req := models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"}
	assert.NoError(t, Register(req, "secret1"))

	err := Register(models.RegisterRequest{Email: "bad", Password: "123"}, "1234")
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "username is required", fe["username"])
	assert.Equal(t, "invalid email address", fe["email"])
	assert.Equal(t, "password must be at least 6 characters", fe["password"])
	assert.Equal(t, "passwords do not match", fe["confirmPassword"])
	assert.Equal(t,
		"confirmPassword: passwords do not match; email: invalid email address; password: password must be at least 6 characters; username: username is required",
		fe.Error())
}

func TestRegister_PasswordLengthCountsCharacters(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "Three accented characters", password: "ééé", wantErr: true},
		{name: "Five characters", password: "pässw", wantErr: true},
		{name: "Six accented characters", password: "éééééé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: tt.password}
			err := Register(req, tt.password)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var fe FieldErrors
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "password must be at least 6 characters", fe["password"])
		})
	}
}

func TestPasswordChange(t *testing.T) {
	assert.NoError(t, PasswordChange(models.UpdatePasswordRequest{
		CurrentPassword: "old", NewPassword: "newpass", ConfirmPassword: "newpass",
	}))

	err := PasswordChange(models.UpdatePasswordRequest{NewPassword: "newpass", ConfirmPassword: "other"})
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "currentPassword")
	assert.Contains(t, fe, "confirmPassword")
	assert.NotContains(t, fe, "newPassword")
}

func TestAnalyzeURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := AnalyzeURL(raw)
		assert.Error(t, err, "%q should be rejected", raw)
	}

	url, err := AnalyzeURL("  https://youtube.com/@chan ")
	require.NoError(t, err)
	assert.Equal(t, "https://youtube.com/@chan", url)
}
