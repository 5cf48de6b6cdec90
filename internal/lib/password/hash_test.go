package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := GetHash("Passw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd", hash)

	assert.NoError(t, CompareHash(hash, "Passw0rd"))
	assert.Error(t, CompareHash(hash, "wrongpass"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{
			name:     "valid password",
			password: "Passw0rd",
		},
		{
			name:     "too short",
			password: "Pa0s",
			wantErr:  "at least 8 characters",
		},
		{
			name:     "no uppercase",
			password: "passw0rd",
			wantErr:  "uppercase",
		},
		{
			name:     "no lowercase",
			password: "PASSW0RD",
			wantErr:  "lowercase",
		},
		{
			name:     "no digit",
			password: "Password",
			wantErr:  "number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
