package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/loki3/loki3.github.io/atomic"
	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/group"
	"github.com/loki3/loki3.github.io/search"
	"github.com/loki3/loki3.github.io/session"
)

func newApplyCmd(a *app) *cobra.Command {
	var showStates bool
	cmd := &cobra.Command{
		Use:   "apply <sequence>",
		Short: "Apply a flex sequence to the starting flexagon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := a.start()
			if err != nil {
				return err
			}
			res, err := flex.ApplyString(fx, args[0], a.cat)
			if err != nil {
				return err
			}
			out := applyOutput{Sequence: args[0], Flexagon: res.Flexagon.String()}
			for _, s := range res.Splits {
				out.Splits = append(out.Splits, fmt.Sprintf("%d -> [%d,%d]", s.ID, s.Left, s.Right))
			}
			if showStates {
				for _, s := range res.States {
					out.States = append(out.States, s.String())
				}
			}
			return a.print(cmd, out, func() string { return renderApply(out) })
		},
	}
	cmd.Flags().BoolVar(&showStates, "states", false, "also print the state after every step")
	return cmd
}

func newShortestCmd(a *app) *cobra.Command {
	var fromSequence bool
	cmd := &cobra.Command{
		Use:   "shortest <target>",
		Short: "Find a shortest flex sequence from the starting flexagon to a target",
		Long: `Find a shortest flex sequence from the starting flexagon to a target.

The target is a list of leaf trees using the starting flexagon's leaf ids.
With --from-sequence the argument is a flex sequence instead: it is applied,
growing structure as needed, and the search looks for a shorter route to
the state it reaches.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := a.start()
			if err != nil {
				return err
			}
			var target *flexagon.Flexagon
			if fromSequence {
				seq, err := flex.ParseSequence(args[0])
				if err != nil {
					return err
				}
				res, err := flex.ApplySequence(start, seq.WithGeneration(flex.GenApply), a.cat)
				if err != nil {
					return err
				}
				target = res.Flexagon
				back, err := flex.ApplySequence(target, seq.Invert(), a.cat)
				if err != nil {
					return err
				}
				start = back.Flexagon
			} else if target, err = flexagon.FromString(args[0], ""); err != nil {
				return err
			}

			s, err := search.NewFindShortest(start, target, a.cat, a.searchOptions()...)
			if err != nil {
				return err
			}
			if err := s.Run(cmd.Context()); err != nil {
				return err
			}
			out := shortestOutput{Sequence: s.Sequence(), Levels: s.Levels(), States: s.StateCount()}
			return a.print(cmd, out, func() string {
				return fmt.Sprintf("%s\n%s", styles.Title.Render(displaySequence(out.Sequence)),
					styles.Muted.Render(fmt.Sprintf("%d flexes, %d states visited", out.Levels, out.States)))
			})
		},
	}
	cmd.Flags().BoolVar(&fromSequence, "from-sequence", false, "treat the target as a flex sequence")
	return cmd
}

// explore runs an exploration from the starting flexagon, keeping partial
// results when the state limit is hit.
func (a *app) explore(cmd *cobra.Command, flexes []string) (*search.Explore, error) {
	start, err := a.start()
	if err != nil {
		return nil, err
	}
	opts := a.searchOptions()
	if len(flexes) > 0 {
		opts = append(opts, search.WithFlexes(flexes...))
	}
	e, err := search.NewExplore(start, a.cat, opts...)
	if err != nil {
		return nil, err
	}
	if err := e.Run(cmd.Context()); err != nil {
		if !errors.Is(err, search.ErrStateLimit) {
			return nil, err
		}
		a.log.Warn("exploration stopped early", zap.Error(err), zap.Int("states", len(e.States())))
	}
	return e, nil
}

func newExploreCmd(a *app) *cobra.Command {
	var flexes []string
	var subgraphs string
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Find every state reachable from the starting flexagon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.explore(cmd, flexes)
			if err != nil {
				return err
			}
			out := exploreOutput{Complete: e.Done()}
			moves := e.AllMoves()
			for i, fx := range e.States() {
				st := stateOutput{Index: i, Flexagon: fx.String()}
				for _, m := range moves[i] {
					st.Moves = append(st.Moves, fmt.Sprintf("%s -> %d", m, m.State))
				}
				out.States = append(out.States, st)
			}
			out.Structures = search.GroupByStructure(e.States())
			if subgraphs != "" {
				out.Subgraphs = search.FindSubgraphs(moves, subgraphs)
			}
			return a.print(cmd, out, func() string { return renderExplore(out) })
		},
	}
	cmd.Flags().StringSliceVar(&flexes, "flexes", nil, "flexes to use (default all)")
	cmd.Flags().StringVar(&subgraphs, "subgraphs", "", "also group states connected by this flex")
	return cmd
}

func newCyclesCmd(a *app) *cobra.Command {
	var flexes []string
	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Cycle lengths of sequences leading to states with the starting structure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.explore(cmd, flexes)
			if err != nil {
				return err
			}
			opts := a.searchOptions()
			if len(flexes) > 0 {
				opts = append(opts, search.WithFlexes(flexes...))
			}
			g, err := search.NewFindGroupCycles(e.States(), 0, a.cat, opts...)
			if err != nil {
				return err
			}
			var out []cycleOutput
			for _, r := range g.Run() {
				c := cycleOutput{Target: r.Target, Sequence: r.Sequence, Length: r.Length}
				if r.Err != nil {
					c.Error = r.Err.Error()
				}
				out = append(out, c)
			}
			return a.print(cmd, out, func() string { return renderCycles(out) })
		},
	}
	cmd.Flags().StringSliceVar(&flexes, "flexes", nil, "flexes to use (default all)")
	return cmd
}

func newGroupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "group <generator>...",
		Short: "Cayley table of the group generated by flex sequences",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := a.start()
			if err != nil {
				return err
			}
			t, err := group.Derive(args, start.PatCount(), start.Directions(), a.cat,
				group.WithCycleCap(a.cfg.Search.CycleCap), group.WithLogger(a.log))
			if err != nil {
				return err
			}
			return a.print(cmd, t, func() string { return renderGroup(t) })
		},
	}
}

func newEqualCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "equal <sequence> <sequence>",
		Short: "Compare the effect of two flex sequences",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := a.start()
			if err != nil {
				return err
			}
			sa, err := flex.ParseSequence(args[0])
			if err != nil {
				return err
			}
			sb, err := flex.ParseSequence(args[1])
			if err != nil {
				return err
			}
			eq, err := flex.CheckEqual(start, sa, sb, a.cat)
			if err != nil {
				return err
			}
			out := map[string]string{"a": args[0], "b": args[1], "equality": eq.String()}
			return a.print(cmd, out, func() string { return styles.Title.Render(eq.String()) })
		},
	}
}

func newFlexesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "flexes [name]...",
		Short: "Print flex definitions as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = a.cat.FlexNames()
			}
			return a.cat.MarshalDefinitions(cmd.OutOrStdout(), names...)
		},
	}
}

func newAtomicCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "atomic",
		Short: "Work with atomic flexes written around the current hinge",
	}
	var name string
	combine := &cobra.Command{
		Use:   "combine <sequence>",
		Short: "Derive a single atomic flex from a sequence of atomic flexes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := atomic.Combine(name, args[0], atomic.Builtins())
			if err != nil {
				return err
			}
			out := map[string]string{"name": f.Name, "input": f.Input.String(), "output": f.Output.String()}
			return a.print(cmd, out, func() string { return f.String() })
		},
	}
	combine.Flags().StringVar(&name, "name", "X", "name of the derived flex")

	apply := &cobra.Command{
		Use:   "apply <pattern> <sequence>",
		Short: `Apply atomic flexes to a pattern such as "a 1/ 2/ # 3/ b"`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := atomic.ApplyString(args[0], args[1], atomic.Builtins())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), p.String())
			return err
		},
	}
	cmd.AddCommand(combine, apply)
	return cmd
}

func newReplayCmd(a *app) *cobra.Command {
	var separate bool
	cmd := &cobra.Command{
		Use:   "replay <sequence|undo|redo>...",
		Short: "Apply sequences one after another with undo and redo",
		Long: `Apply sequences one after another, keeping an undo history.

The words "undo" and "redo" step through the history instead of flexing.
With --separate every flex of a sequence gets its own history entry.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := a.start()
			if err != nil {
				return err
			}
			m := session.New(fx, a.cat, session.WithLogger(a.log))
			for _, arg := range args {
				switch arg {
				case "undo":
					err = m.Undo()
				case "redo":
					err = m.Redo()
				default:
					err = m.Apply(arg, separate)
				}
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
			}
			out := replayOutput{Flexagon: m.Current().String()}
			for _, e := range m.History() {
				out.History = append(out.History, e.Sequence)
			}
			for _, s := range m.Splits() {
				out.Splits = append(out.Splits, fmt.Sprintf("%d -> [%d,%d]", s.ID, s.Left, s.Right))
			}
			return a.print(cmd, out, func() string { return renderReplay(out, m.CanRedo()) })
		},
	}
	cmd.Flags().BoolVar(&separate, "separate", false, "undo each flex of a sequence on its own")
	return cmd
}

// print writes v as YAML when --yaml is set and as styled text otherwise.
func (a *app) print(cmd *cobra.Command, v any, text func() string) error {
	if a.asYAML {
		return writeYAML(cmd.OutOrStdout(), v)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), text())
	return err
}
