package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/tada-cloud/internal/controller"
	"github.com/idilsaglam/tada-cloud/internal/model"
	"github.com/idilsaglam/tada-cloud/internal/tui"
	"github.com/idilsaglam/tada-cloud/internal/ui"
	"github.com/idilsaglam/tada-cloud/internal/view"
)

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "tui",
		Short:       "Open the interactive screen (default)",
		Args:        noArgs,
		Annotations: map[string]string{logToFile: "true"},
		RunE:        a.runTUI,
	}
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	st, closeFn, err := openStore(a.cfg, a.log)
	if err != nil {
		return err
	}
	defer closeFn()

	notices := make(chan controller.Notice, 16)
	ctrl := controller.New(st,
		controller.WithNotifier(controller.ChanNotifier(notices)),
		controller.WithLogger(a.log),
	)
	if err := tui.Run(ctrl, notices, a.log); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (a *app) lsCmd() *cobra.Command {
	var (
		filter string
		group  bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := view.ParseFilter(filter)
			if err != nil {
				return usagef("%v", err)
			}
			ctrl, closeFn, err := a.openController(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			ui.Panel(listPanel(ctrl.Todos(), f, group))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(view.FilterAll), "show only: all, pending, in_progress, completed")
	cmd.Flags().BoolVarP(&group, "group", "g", false, "group output by status")
	return cmd
}

func (a *app) addCmd() *cobra.Command {
	form := controller.NewForm()
	var status string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new todo (title can be multiple words)",
		Example: `  tada add Buy milk --content "2 liters"
  tada add "Fix login" -m "session expires early" -s in_progress -t "work, auth"`,
		Args: minArgs(1, "tada add <title...> --content <text>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Title = strings.Join(args, " ")
			if status != "" {
				s, err := model.ParseStatus(status)
				if err != nil {
					return usagef("%v", err)
				}
				form.Status = s
			}

			ctrl, closeFn, err := a.openController(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			created, err := form.Submit(cmd.Context(), ctrl)
			if err != nil {
				return mutationErr(err)
			}
			if !created {
				return usagef("add: title and content must not be empty")
			}
			ui.OK("added")
			return nil
		},
	}
	cmd.Flags().StringVarP(&form.Content, "content", "m", "", "todo content (required)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "initial status (default pending)")
	cmd.Flags().StringVarP(&form.Category, "category", "t", "", "comma separated categories")
	return cmd
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id|index> <status>",
		Short: "Set the status of a todo (pending, in_progress, completed)",
		Example: `  tada status 2 done
  tada status 01J9Z3K8Q0V7S4M2N6P8R0T2W4 in_progress`,
		Args: exactArgs(2, "tada status <id|index> <status>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := model.ParseStatus(args[1])
			if err != nil {
				return usagef("%v", err)
			}
			ctrl, closeFn, err := a.openController(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			td, err := resolve(ctrl.Todos(), args[0])
			if err != nil {
				return err
			}
			if err := ctrl.SetStatus(cmd.Context(), td.ID, s); err != nil {
				return mutationErr(err)
			}
			a.log.Debug("status set", zap.String("id", td.ID), zap.String("status", string(s)))
			ui.OK(fmt.Sprintf("%s → %s", td.Title, s.Label()))
			return nil
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id|index>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a todo",
		Args:    exactArgs(1, "tada rm <id|index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closeFn, err := a.openController(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			td, err := resolve(ctrl.Todos(), args[0])
			if err != nil {
				return err
			}
			if err := ctrl.Remove(cmd.Context(), td.ID); err != nil {
				return mutationErr(err)
			}
			ui.OK("removed")
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "show <id|index>",
		Short: "Show one todo with its content rendered as markdown",
		Args:  exactArgs(1, "tada show <id|index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closeFn, err := a.openController(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			td, err := resolve(ctrl.Todos(), args[0])
			if err != nil {
				return err
			}
			out, err := renderMarkdown(markdown(td), width)
			if err != nil {
				return err
			}
			fmt.Fprint(ui.Out, out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 80, "wrap width")
	return cmd
}
