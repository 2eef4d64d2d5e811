package account

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kirinyoku/evently/internal/auth"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		reg  Registration
		want error
	}{
		{"ok", Registration{UserName: " alice ", Email: " Alice@Example.com ", Password: "Secr3t!pass"}, nil},
		{"missing user name", Registration{UserName: "  ", Email: "a@b.co", Password: "Secr3t!pass"}, ErrUserNameRequired},
		{"bad email", Registration{UserName: "alice", Email: "not-an-email", Password: "Secr3t!pass"}, ErrInvalidEmail},
		{"display name email", Registration{UserName: "alice", Email: "Alice <a@b.co>", Password: "Secr3t!pass"}, ErrInvalidEmail},
		{"weak password", Registration{UserName: "alice", Email: "a@b.co", Password: "password"}, auth.ErrWeakPassword},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			reg := c.reg
			err := normalize(&reg)
			if c.want == nil {
				assert.NoError(t, err)
				assert.Equal(t, "alice", reg.UserName)
				assert.Equal(t, "alice@example.com", reg.Email)
				return
			}
			assert.ErrorIs(t, err, c.want)
		})
	}
}
