package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartframe/pkg/types"
)

// stateReport is the JSON form of the state command.
type stateReport struct {
	State    types.StateName     `json:"state"`
	MLStage  types.MLStage       `json:"ml_stage"`
	Degraded bool                `json:"degraded"`
	Missing  map[string][]string `json:"missing"`
}

func newStateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "state <data>",
		Short: "Infer the state of a dataset",
		Long:  "Infer whether a CSV or XLSX dataset is raw or processed, and whether it\nis a training or an inference dataset. Missing configured columns are listed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(args[0])
			if err != nil {
				return err
			}
			state := sess.State()
			missing := types.MissingColumns(sess.Frame().Names(), sess.Config())

			if a.flags.jsonMode {
				return printJSON(out(cmd), stateReport{
					State:    state.Name,
					MLStage:  state.MLStage,
					Degraded: state.Degraded(),
					Missing:  missing,
				})
			}

			fmt.Fprintln(out(cmd), state)
			if len(missing) > 0 {
				fmt.Fprintln(out(cmd), "missing:")
				for _, tag := range types.TagNames() {
					if names, ok := missing[tag]; ok {
						fmt.Fprintf(out(cmd), "  %-18s %s\n", tag+":", joinOrDash(names))
					}
				}
			}
			return nil
		},
	}
}
