package git

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
)

// AuthType selects how a remote authenticates.
type AuthType string

const (
	AuthNone  AuthType = "none"
	AuthToken AuthType = "token"
	AuthBasic AuthType = "basic"
	AuthSSH   AuthType = "ssh"
)

// Auth holds the credentials for one remote.
type Auth struct {
	Type     AuthType
	Username string
	Password string
	Token    string
	KeyPath  string
}

// method converts a into a go-git transport auth method. A nil Auth means
// anonymous access.
func (a *Auth) method() (transport.AuthMethod, error) {
	if a == nil {
		return nil, nil
	}
	switch a.Type {
	case AuthNone, "":
		return nil, nil
	case AuthToken:
		if a.Token == "" {
			return nil, authError("token authentication requires a token", a)
		}
		return &http.BasicAuth{Username: "token", Password: a.Token}, nil
	case AuthBasic:
		if a.Username == "" || a.Password == "" {
			return nil, authError("basic authentication requires username and password", a)
		}
		return &http.BasicAuth{Username: a.Username, Password: a.Password}, nil
	case AuthSSH:
		keyPath := a.KeyPath
		if keyPath == "" {
			home, _ := os.UserHomeDir()
			keyPath = filepath.Join(home, ".ssh", "id_rsa")
		}
		keys, err := ssh.NewPublicKeysFromFile("git", keyPath, "")
		if err != nil {
			return nil, ferrors.ConfigError("failed to load SSH key").
				WithCause(err).
				WithContext("path", keyPath).
				Build()
		}
		return keys, nil
	default:
		return nil, authError("unsupported authentication type", a)
	}
}

func authError(msg string, a *Auth) error {
	return ferrors.ConfigError(msg).WithContext("auth_type", string(a.Type)).Build()
}
