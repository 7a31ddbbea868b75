// Package main implements flexagonator, a command-line front end for the
// flexagon engine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/internal/config"
	"github.com/loki3/loki3.github.io/internal/logging"
	"github.com/loki3/loki3.github.io/search"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the state every command shares once flags are parsed.
type app struct {
	configPath string
	patCount   int
	trees      string
	dirs       string
	asYAML     bool

	cfg *config.Config
	log *zap.Logger
	cat flex.Catalog
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "flexagonator",
		Short: "Explore flexagons symbolically",
		Long: `flexagonator applies, compares and searches flex sequences on flexagons
described as lists of pats.

Examples:
  # Pinch a hexaflexagon, growing the structure it needs
  flexagonator apply "P*"

  # Shortest sequence between two states
  flexagonator shortest "P*>P*" --from-sequence

  # Cayley table of the group generated by the pinch flex
  flexagonator group P`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file")
	flags.IntVarP(&a.patCount, "pats", "n", 6, "number of pats when starting from a plain flexagon")
	flags.StringVar(&a.trees, "flexagon", "", `starting pats as leaf trees, e.g. "[[1,-2],3,4,5]"`)
	flags.StringVar(&a.dirs, "dirs", "", `hinge directions, e.g. "//\\/"`)
	flags.BoolVar(&a.asYAML, "yaml", false, "print results as YAML")

	root.AddCommand(
		newApplyCmd(a),
		newShortestCmd(a),
		newExploreCmd(a),
		newCyclesCmd(a),
		newGroupCmd(a),
		newEqualCmd(a),
		newFlexesCmd(a),
		newAtomicCmd(a),
		newReplayCmd(a),
	)
	return root
}

// setup loads configuration, the logger and the flex catalog.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.log, err = logging.New(cfg.Log); err != nil {
		return err
	}

	n := a.patCount
	if a.trees != "" {
		fx, err := a.start()
		if err != nil {
			return err
		}
		n = fx.PatCount()
	}
	a.cat = flex.Builtins(n)
	if cfg.Flexes.Definitions != "" {
		f, err := os.Open(cfg.Flexes.Definitions)
		if err != nil {
			return fmt.Errorf("failed to open flex definitions: %w", err)
		}
		defer f.Close()
		user, err := flex.LoadDefinitions(f)
		if err != nil {
			return err
		}
		a.cat.Merge(user)
		a.log.Debug("loaded flex definitions", zap.String("path", cfg.Flexes.Definitions), zap.Int("count", len(user)))
	}
	return nil
}

// start returns the flexagon named by --flexagon, or a plain one with --pats pats.
func (a *app) start() (*flexagon.Flexagon, error) {
	if a.trees != "" {
		return flexagon.FromString(a.trees, a.dirs)
	}
	var dirs flexagon.Directions
	if a.dirs != "" {
		var err error
		if dirs, err = flexagon.ParseDirections(a.dirs); err != nil {
			return nil, err
		}
	}
	return flexagon.Plain(a.patCount, dirs)
}

// searchOptions turns configuration into search options.
func (a *app) searchOptions() []search.Option {
	return []search.Option{
		search.WithFlip(a.cfg.Search.Flip),
		search.WithMaxStates(a.cfg.Search.MaxStates),
		search.WithCycleCap(a.cfg.Search.CycleCap),
		search.WithLogger(a.log),
	}
}
