package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// Repository gives typed access to repository metadata. Log queries go
// through Client instead, so their output can be repaired defensively.
type Repository struct {
	repo *gogit.Repository
	path string
}

func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpen(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", absPath, err)
	}

	return &Repository{repo: repo, path: absPath}, nil
}

func (r *Repository) Path() string {
	return r.path
}

// UserName returns the configured git user name, used as the default author
// filter for retrieval.
func (r *Repository) UserName() (string, error) {
	cfg, err := r.repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return "", fmt.Errorf("failed to get git config: %w", err)
	}
	return cfg.User.Name, nil
}

func (r *Repository) UserEmail() (string, error) {
	cfg, err := r.repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return "", fmt.Errorf("failed to get git config: %w", err)
	}
	return cfg.User.Email, nil
}
