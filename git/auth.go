package git

import (
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	platformerrors "github.com/jmgilman/repodriller/errors"
)

// SSHKeyOption configures SSH key authentication.
type SSHKeyOption func(*sshKeyOptions)

type sshKeyOptions struct {
	password string
}

// WithSSHPassword sets the password for encrypted SSH keys.
func WithSSHPassword(password string) SSHKeyOption {
	return func(opts *sshKeyOptions) {
		opts.password = password
	}
}

// SSHKeyAuth creates SSH authentication from PEM-encoded key bytes.
// It handles both password-protected and unprotected private keys.
//
// Parameters:
//   - user: SSH username (typically "git" for Git hosting services)
//   - pemBytes: PEM-encoded private key bytes
//   - opts: optional configuration (use WithSSHPassword for encrypted keys)
//
// Returns an Auth value accepted by Clone and WithAuth.
//
// Example (unencrypted key):
//
//	keyBytes, _ := os.ReadFile("~/.ssh/id_rsa")
//	auth, err := git.SSHKeyAuth("git", keyBytes)
//	if err != nil {
//	    return err
//	}
//
// Example (encrypted key):
//
//	auth, err := git.SSHKeyAuth("git", keyBytes, git.WithSSHPassword("mypassphrase"))
func SSHKeyAuth(user string, pemBytes []byte, opts ...SSHKeyOption) (Auth, error) {
	options := &sshKeyOptions{}
	for _, opt := range opts {
		opt(options)
	}

	publicKeys, err := ssh.NewPublicKeys(user, pemBytes, options.password)
	if err != nil {
		return nil, wrapError(err, "failed to parse SSH key")
	}

	return publicKeys, nil
}

// SSHKeyFile creates SSH authentication by reading a key from a file.
// This is a convenience wrapper around SSHKeyAuth that handles file I/O.
//
// Parameters:
//   - user: SSH username (typically "git" for Git hosting services)
//   - keyPath: path to PEM-encoded private key file
//   - opts: optional configuration (use WithSSHPassword for encrypted keys)
//
// Returns an Auth value accepted by Clone and WithAuth.
//
// Example (unencrypted key):
//
//	auth, err := git.SSHKeyFile("git", "~/.ssh/id_rsa")
//	if err != nil {
//	    return err
//	}
//
// Example (encrypted key):
//
//	auth, err := git.SSHKeyFile("git", "~/.ssh/id_rsa", git.WithSSHPassword("mypassphrase"))
func SSHKeyFile(user string, keyPath string, opts ...SSHKeyOption) (Auth, error) {
	pemBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, platformerrors.Wrapf(err, platformerrors.CodeInvalidConfig, "failed to read SSH key file %q", keyPath)
	}

	return SSHKeyAuth(user, pemBytes, opts...)
}

// BasicAuth creates HTTP basic authentication.
// Hosting services generally accept a personal access token as the password.
//
// Parameters:
//   - username: username or token name
//   - password: password or personal access token
//
// Returns an Auth value accepted by Clone and WithAuth.
//
// Example:
//
//	auth := git.BasicAuth("myuser", "ghp_mytoken")
func BasicAuth(username, password string) Auth {
	return &http.BasicAuth{
		Username: username,
		Password: password,
	}
}

// Ensure our Auth interface is satisfied by go-git's transport.AuthMethod.
// This is a compile-time check.
var _ Auth = (transport.AuthMethod)(nil)
