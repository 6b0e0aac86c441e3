package fetch

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IARD-Solutions/solidity-analyzer/internal/fetcher"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/config"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/errors"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/logger"
)

// RunOptionsFetch holds the arguments for the fetch command.
type RunOptionsFetch struct {
	AuthType string
	SSHKey   string
	Branch   string
}

// Global variables for configuration and command arguments
var (
	AppConfig    *config.Config
	fetchOptions RunOptionsFetch

	exampleFetchUsage = `  # Fetch a public contract repository anonymously
  solidity-analyzer fetch https://github.com/OpenZeppelin/openzeppelin-contracts

  # Fetch a specific branch over SSH with the local agent
  solidity-analyzer fetch --auth-type ssh-agent -b develop ssh://git@github.com/Uniswap/v3-core.git

  # Fetch with an SSH key file
  solidity-analyzer fetch --auth-type ssh-key --ssh-key ~/.ssh/id_ed25519 git@github.com:Uniswap/v3-core.git

  # Fetch over HTTP with a token (SOLIDITY_ANALYZER_GIT_USERNAME and
  # SOLIDITY_ANALYZER_GIT_TOKEN must be set)
  solidity-analyzer fetch --auth-type http https://github.example.com/team/contracts.git`
)

// FetchCmd represents the fetch command.
var FetchCmd = &cobra.Command{
	Use:                   "fetch [--auth-type/-a AUTH_TYPE] [--ssh-key/-k PATH] [--branch/-b BRANCH] CLONE_URL",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleFetchUsage,
	Short:                 "Fetch a contract repository into the analyzer projects folder",
	Long: `Fetch clones a repository (depth 1) into the projects folder of the
analyzer home, or updates it when it is already there, and prints the
checked-out folder so it can be passed straight to analyze.`,
	RunE: runFetchCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runFetchCommand executes the fetch command.
func runFetchCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "fetch")

	if err := validateFetchArgs(&fetchOptions, args); err != nil {
		logger.Error("invalid fetch arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid fetch arguments: %w", err), 1)
	}

	request := &fetcher.Request{
		CloneURL:       args[0],
		Branch:         fetchOptions.Branch,
		AuthType:       fetchOptions.AuthType,
		SSHKey:         fetchOptions.SSHKey,
		SSHKeyPassword: os.Getenv("SOLIDITY_ANALYZER_SSH_KEY_PASSWORD"),
		Username:       os.Getenv("SOLIDITY_ANALYZER_GIT_USERNAME"),
		Token:          os.Getenv("SOLIDITY_ANALYZER_GIT_TOKEN"),
	}

	f, err := fetcher.New(AppConfig, request, logger)
	if err != nil {
		logger.Error("failed to initialize the fetcher", "error", err)
		return errors.NewCommandError(err, 1)
	}

	target, err := f.Fetch(cmd.Context(), request)
	if err != nil {
		logger.Error("fetch command failed", "error", err)
		return errors.NewCommandError(err, 1)
	}

	fmt.Fprintln(os.Stdout, target)
	logger.Info("fetch command completed successfully", "targetFolder", target)
	return nil
}

func init() {
	FetchCmd.Flags().StringVarP(&fetchOptions.AuthType, "auth-type", "a", "", "Type of authentication: http, ssh-agent or ssh-key (default: anonymous).")
	FetchCmd.Flags().StringVarP(&fetchOptions.SSHKey, "ssh-key", "k", "", "Path to an SSH key.")
	FetchCmd.Flags().StringVarP(&fetchOptions.Branch, "branch", "b", "", "Specific branch to fetch (default: the remote default branch).")
	FetchCmd.Flags().BoolP("help", "h", false, "Show help for the fetch command.")
}
