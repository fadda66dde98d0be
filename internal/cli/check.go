package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartframe/pkg/types"
)

// roleView is one role projection in command output.
type roleView struct {
	Role    string   `json:"role"`
	Columns []string `json:"columns"`
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the dataset configuration and print its role views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadDataConfig()
			if err != nil {
				return err
			}

			views := configRoleViews(cfg)
			if a.flags.jsonMode {
				return printJSON(out(cmd), map[string]any{
					"name":    cfg.Name,
					"columns": cfg.Names(),
					"roles":   views,
				})
			}

			fmt.Fprintf(out(cmd), "Config:  %s (%d columns)\n", cfg.Name, len(cfg.Names()))
			for _, v := range views {
				fmt.Fprintf(out(cmd), "  %-18s %s\n", v.Role+":", joinOrDash(v.Columns))
			}
			return nil
		},
	}
}

func configRoleViews(cfg *types.DataConfig) []roleView {
	attrs := types.Attributes()
	views := make([]roleView, 0, len(attrs))
	for _, attr := range attrs {
		names, _ := cfg.Role(attr)
		views = append(views, roleView{Role: attr, Columns: names})
	}
	return views
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
