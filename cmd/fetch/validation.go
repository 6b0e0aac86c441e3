package fetch

import (
	"fmt"
	"os"

	"github.com/gitsight/go-vcsurl"
	"golang.org/x/crypto/ssh"

	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/files"
)

const (
	AuthTypeHTTP     = "http"
	AuthTypeSSHKey   = "ssh-key"
	AuthTypeSSHAgent = "ssh-agent"
)

// validateFetchArgs validates the arguments provided to the fetch command.
func validateFetchArgs(options *RunOptionsFetch, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one repository clone URL must be provided")
	}

	info, err := vcsurl.Parse(args[0])
	if err != nil {
		return fmt.Errorf("provided clone URL is not valid: %w", err)
	}
	if info.Host == "" {
		return fmt.Errorf("provided clone URL is not valid: no host in %q", args[0])
	}

	if options.AuthType != "" {
		authTypesList := []string{AuthTypeHTTP, AuthTypeSSHKey, AuthTypeSSHAgent}
		if !shared.IsInList(options.AuthType, authTypesList) {
			return fmt.Errorf("unknown auth-type: %v", options.AuthType)
		}
	}

	if options.SSHKey != "" && options.AuthType != AuthTypeSSHKey {
		return fmt.Errorf("the 'ssh-key' flag requires auth-type 'ssh-key'")
	}

	if options.AuthType == AuthTypeSSHKey {
		if options.SSHKey == "" {
			return fmt.Errorf("you must specify ssh-key with auth-type 'ssh-key'")
		}
		return validateSSHKeyFile(options.SSHKey)
	}

	return nil
}

// validateSSHKeyFile checks that the key file exists and holds a parseable
// private key. A passphrase-protected key passes here and is decrypted later
// with SOLIDITY_ANALYZER_SSH_KEY_PASSWORD.
func validateSSHKeyFile(path string) error {
	expandedPath, err := files.ExpandPath(path)
	if err != nil {
		return fmt.Errorf("failed to expand path %q: %w", path, err)
	}

	if err := files.ValidatePath(expandedPath); err != nil {
		return fmt.Errorf("failed to validate path %q: %w", expandedPath, err)
	}

	keyData, err := os.ReadFile(expandedPath)
	if err != nil {
		return fmt.Errorf("failed to read SSH key file: %w", err)
	}

	if _, err := ssh.ParsePrivateKey(keyData); err != nil {
		if _, ok := err.(*ssh.PassphraseMissingError); !ok {
			return fmt.Errorf("invalid SSH key format: %w", err)
		}
	}
	return nil
}
