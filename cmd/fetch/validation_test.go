package fetch

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFetchArgs(t *testing.T) {
	testCases := []struct {
		name    string
		options RunOptionsFetch
		args    []string
		wantErr string
	}{
		{
			name: "anonymous https clone",
			args: []string{"https://github.com/OpenZeppelin/openzeppelin-contracts"},
		},
		{
			name:    "ssh agent with scp style url",
			options: RunOptionsFetch{AuthType: AuthTypeSSHAgent},
			args:    []string{"git@github.com:Uniswap/v3-core.git"},
		},
		{
			name:    "http auth",
			options: RunOptionsFetch{AuthType: AuthTypeHTTP},
			args:    []string{"https://gitlab.com/team/contracts.git"},
		},
		{
			name:    "missing url",
			wantErr: "exactly one repository clone URL",
		},
		{
			name:    "too many urls",
			args:    []string{"https://github.com/a/b", "https://github.com/c/d"},
			wantErr: "exactly one repository clone URL",
		},
		{
			name:    "invalid url",
			args:    []string{"not a clone url"},
			wantErr: "not valid",
		},
		{
			name:    "unknown auth type",
			options: RunOptionsFetch{AuthType: "kerberos"},
			args:    []string{"https://github.com/a/b"},
			wantErr: "unknown auth-type",
		},
		{
			name:    "ssh key without matching auth type",
			options: RunOptionsFetch{SSHKey: "~/.ssh/id_ed25519"},
			args:    []string{"https://github.com/a/b"},
			wantErr: "requires auth-type 'ssh-key'",
		},
		{
			name:    "ssh-key auth without a key",
			options: RunOptionsFetch{AuthType: AuthTypeSSHKey},
			args:    []string{"git@github.com:a/b.git"},
			wantErr: "must specify ssh-key",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateFetchArgs(&tc.options, tc.args)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateSSHKeyFile(t *testing.T) {
	t.Run("valid key accepted", func(t *testing.T) {
		options := RunOptionsFetch{AuthType: AuthTypeSSHKey, SSHKey: writeTestKey(t)}
		err := validateFetchArgs(&options, []string{"git@github.com:a/b.git"})
		require.NoError(t, err)
	})

	t.Run("missing key file rejected", func(t *testing.T) {
		options := RunOptionsFetch{AuthType: AuthTypeSSHKey, SSHKey: filepath.Join(t.TempDir(), "absent")}
		err := validateFetchArgs(&options, []string{"git@github.com:a/b.git"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to validate path")
	})

	t.Run("malformed key rejected", func(t *testing.T) {
		keyPath := filepath.Join(t.TempDir(), "id_ed25519")
		require.NoError(t, os.WriteFile(keyPath, []byte("not a private key"), 0600))

		options := RunOptionsFetch{AuthType: AuthTypeSSHKey, SSHKey: keyPath}
		err := validateFetchArgs(&options, []string{"git@github.com:a/b.git"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid SSH key format")
	})
}

// writeTestKey generates a throwaway ed25519 private key in PKCS#8 PEM form.
func writeTestKey(t *testing.T) string {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)

	keyPath := filepath.Join(t.TempDir(), "id_ed25519")
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	require.NoError(t, os.WriteFile(keyPath, keyPEM, 0600))
	return keyPath
}
