package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartframe/internal/watch"
	"github.com/mesh-intelligence/smartframe/pkg/frame"
	"github.com/mesh-intelligence/smartframe/pkg/types"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <data>",
		Short: "Report the state of a dataset each time its file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(args[0])
			if err != nil {
				return err
			}

			w := out(cmd)
			report := func(state types.State) {
				if a.flags.jsonMode {
					_ = printJSON(w, map[string]any{
						"time":     time.Now().Format(time.RFC3339),
						"state":    state.Name,
						"ml_stage": state.MLStage,
					})
					return
				}
				fmt.Fprintf(w, "%s  %s\n", time.Now().Format("15:04:05"), state)
			}
			report(sess.State())

			watcher := watch.New(args[0], func(path string) (*frame.Frame, error) {
				return frame.ReadFile(path, a.sheet())
			}, sess, a.logger)
			watcher.SetDebounce(debounce)
			watcher.OnState = report

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := watcher.Run(ctx); err != nil {
				return sysError(err)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before a changed file is re-read")
	return cmd
}
