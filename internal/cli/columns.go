package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartframe/internal/session"
	"github.com/mesh-intelligence/smartframe/pkg/types"
)

func newColumnsCmd(a *app) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "columns <data>",
		Short: "List the observed columns of each role",
		Long: "List the dataset's columns grouped by role. With --role, list only that\nrole; roles that have no meaning in the dataset's state are an error.\nRoles: " +
			strings.Join(types.Attributes(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(args[0])
			if err != nil {
				return err
			}

			if role != "" {
				if _, ok := types.LookupAttribute(role); !ok {
					return userError(fmt.Errorf("unknown role %q (roles: %s)", role, strings.Join(types.Attributes(), ", ")))
				}
				f, err := sess.Role(role)
				if err != nil {
					return userError(err)
				}
				if a.flags.jsonMode {
					return printJSON(out(cmd), roleView{Role: role, Columns: f.Names()})
				}
				for _, name := range f.Names() {
					fmt.Fprintln(out(cmd), name)
				}
				return nil
			}

			views, err := sessionRoleViews(sess)
			if err != nil {
				return sysError(err)
			}
			if a.flags.jsonMode {
				return printJSON(out(cmd), views)
			}
			fmt.Fprintf(out(cmd), "State:  %s\n", sess.State())
			for _, v := range views {
				cols := joinOrDash(v.Columns)
				if v.Columns == nil {
					cols = "(unavailable)"
				}
				fmt.Fprintf(out(cmd), "  %-18s %s\n", v.Role+":", cols)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&role, "role", "r", "", "only list the columns of this role")
	return cmd
}

// sessionRoleViews lists every role of sess. Unavailable roles have nil
// columns.
func sessionRoleViews(sess *session.Session) ([]roleView, error) {
	attrs := types.Attributes()
	views := make([]roleView, 0, len(attrs))
	for _, attr := range attrs {
		f, err := sess.Role(attr)
		switch {
		case errors.Is(err, session.ErrRoleUnavailable):
			views = append(views, roleView{Role: attr})
		case err != nil:
			return nil, err
		default:
			views = append(views, roleView{Role: attr, Columns: f.Names()})
		}
	}
	return views, nil
}
