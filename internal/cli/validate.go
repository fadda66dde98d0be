package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartframe/internal/schema"
	"github.com/mesh-intelligence/smartframe/pkg/frame"
)

// validateReport is the JSON form of the validate command.
type validateReport struct {
	Valid    bool             `json:"valid"`
	State    string           `json:"state"`
	Rows     int              `json:"rows"`
	Failures []schema.Failure `json:"failures,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "validate <data>",
		Short: "Validate a dataset against the schema of its state",
		Long:  "Validate a dataset against the schema of its inferred state. Values are\ncoerced to the configured dtypes; with --output the coerced dataset is\nwritten as CSV. Datasets in unknown or corrupted states are refused.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(args[0])
			if err != nil {
				return err
			}
			state := sess.State()

			validated, err := sess.Validate()
			if err != nil {
				var ve *schema.ValidationError
				if errors.As(err, &ve) && a.flags.jsonMode {
					if perr := printJSON(out(cmd), validateReport{
						State:    state.String(),
						Rows:     sess.Frame().Len(),
						Failures: ve.Failures,
					}); perr != nil {
						return perr
					}
				}
				return userError(err)
			}

			if output != "" {
				if err := writeCSVFile(output, validated.Frame()); err != nil {
					return sysError(err)
				}
			}

			if a.flags.jsonMode {
				return printJSON(out(cmd), validateReport{
					Valid: true,
					State: state.String(),
					Rows:  validated.Frame().Len(),
				})
			}
			fmt.Fprintf(out(cmd), "valid: %d rows, state %s\n", validated.Frame().Len(), state)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the coerced dataset to this CSV file")
	return cmd
}

func writeCSVFile(path string, f *frame.Frame) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	if err := frame.WriteCSV(file, f); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
