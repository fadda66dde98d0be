package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <data>",
		Short: "Print the validation schema for a dataset's state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(args[0])
			if err != nil {
				return err
			}
			sch, err := sess.Schema()
			if err != nil {
				return userError(err)
			}

			if a.flags.jsonMode {
				return printJSON(out(cmd), sch)
			}
			data, err := yaml.Marshal(sch)
			if err != nil {
				return sysError(fmt.Errorf("marshal schema: %w", err))
			}
			_, err = out(cmd).Write(data)
			return err
		},
	}
}
