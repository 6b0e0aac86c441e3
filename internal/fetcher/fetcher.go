package fetcher

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gitsight/go-vcsurl"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/hashicorp/go-hclog"

	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/config"
	log "github.com/IARD-Solutions/solidity-analyzer/pkg/shared/logger"
)

// Fetcher clones contract repositories into the local projects folder so
// they can be analyzed like any other project directory.
type Fetcher struct {
	logger  hclog.Logger
	cfg     *config.Config
	auth    transport.AuthMethod
	timeout time.Duration
}

// New builds a fetcher with the authentication the request asks for.
func New(cfg *config.Config, req *Request, logger hclog.Logger) (*Fetcher, error) {
	authenticator, err := getAuthenticator(req.AuthType)
	if err != nil {
		return nil, fmt.Errorf("unsupported authentication type: %w", err)
	}
	if err := authenticator.ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid fetch request: %w", err)
	}
	auth, err := authenticator.SetupAuth(req, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up Git authentication: %w", err)
	}

	return &Fetcher{
		logger:  logger,
		cfg:     cfg,
		auth:    auth,
		timeout: config.SetThen(cfg.GitClient.Timeout, 10*time.Minute),
	}, nil
}

// TargetFolder maps a clone URL onto the projects tree: <projects>/<host>/<full-name>.
func TargetFolder(cfg *config.Config, cloneURL string) (string, error) {
	info, err := vcsurl.Parse(cloneURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse VCS URL %q: %w", cloneURL, err)
	}
	if info.Host == "" || info.FullName == "" {
		return "", fmt.Errorf("cannot map VCS URL %q to a projects folder", cloneURL)
	}
	return filepath.Join(
		config.GetProjectsHome(cfg),
		strings.ToLower(string(info.Host)),
		filepath.FromSlash(strings.ToLower(info.FullName)),
	), nil
}

// Fetch clones the repository into its target folder, or refreshes the
// existing clone. It returns the checked-out folder.
func (f *Fetcher) Fetch(ctx context.Context, req *Request) (string, error) {
	target, err := TargetFolder(f.cfg, req.CloneURL)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	output := log.GetLoggerOutput(f.logger)
	options := &git.CloneOptions{
		Auth:            f.auth,
		URL:             req.CloneURL,
		Progress:        output,
		Depth:           config.SetThen(f.cfg.GitClient.Depth, 1),
		InsecureSkipTLS: config.GetBoolValue(f.cfg.GitClient, "InsecureTLS", false),
	}
	if req.Branch != "" {
		options.ReferenceName = plumbing.NewBranchReferenceName(req.Branch)
	}

	f.logger.Debug("starting repository fetch", "cloneURL", req.CloneURL, "targetFolder", target)
	_, err = git.PlainCloneContext(ctx, target, false, options)
	if err == nil {
		f.logger.Info("repository cloned", "targetFolder", target)
		return target, nil
	}
	if err != git.ErrRepositoryAlreadyExists {
		return "", fmt.Errorf("error occurred during clone: %w", err)
	}

	f.logger.Info("repository already exists, updating", "targetFolder", target)
	repo, err := git.PlainOpen(target)
	if err != nil {
		return "", fmt.Errorf("cannot open existing repository: %w", err)
	}
	if err := f.pull(ctx, repo, req, output); err != nil {
		return "", err
	}
	return target, nil
}

// pull fast-forwards the existing clone to the latest remote state.
func (f *Fetcher) pull(ctx context.Context, repo *git.Repository, req *Request, output io.Writer) error {
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("error accessing worktree: %w", err)
	}

	options := &git.PullOptions{
		Auth:            f.auth,
		Progress:        output,
		Force:           true,
		InsecureSkipTLS: config.GetBoolValue(f.cfg.GitClient, "InsecureTLS", false),
	}
	if req.Branch != "" {
		options.ReferenceName = plumbing.NewBranchReferenceName(req.Branch)
	}

	f.logger.Debug("attempting to pull the latest changes", "branch", req.Branch)
	if err := worktree.PullContext(ctx, options); err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("error occurred during pull: %w", err)
	}
	return nil
}
