package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/accounts"
	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/ledger"
)

// workspace bundles the services every subcommand needs.
type workspace struct {
	root     string
	cfg      *config.Config
	store    *ledger.Store
	accounts *accounts.Service
}

// openWorkspace resolves the --workspace flag and loads config and services.
func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	dir, err := cmd.Flags().GetString("workspace")
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, "bankfeed.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading workspace config: %w", err)
	}

	store := ledger.NewStore(root)
	accts, err := accounts.NewService(cfg, store)
	if err != nil {
		return nil, err
	}

	return &workspace{root: root, cfg: cfg, store: store, accounts: accts}, nil
}
