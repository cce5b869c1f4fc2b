package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"photofolio-home/pkg/scheduler"
	"photofolio-home/pkg/services"
)

// Command options
var (
	simulateTicks   int
	simulateSelects []string
)

// newSimulateCmd creates a new command for stepping a slideshow view tick by tick
func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Step a slideshow view without waiting for real time",
		Long: `Mount a slideshow view on a manual clock, run the given number of ticks and print
every slide change with the tick it happened on. Selections can be injected with
--select tick=slideId and are applied right after that tick.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selects, err := parseSelects(simulateSelects)
			if err != nil {
				return err
			}

			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			sched := scheduler.NewManualScheduler()
			svc, err := newService(cmd.Context(), cfg, nil, sched)
			if err != nil {
				return err
			}
			defer svc.Close()

			return simulate(cmd.OutOrStdout(), svc, sched, simulateTicks, selects)
		},
	}

	cmd.Flags().IntVarP(&simulateTicks, "ticks", "t", 100, "Number of ticks to run")
	cmd.Flags().StringSliceVarP(&simulateSelects, "select", "s", nil, "Select a slide after a tick, as tick=slideId (repeatable)")

	return cmd
}

// parseSelects turns tick=slideId pairs into a map keyed by tick
func parseSelects(pairs []string) (map[int]int, error) {
	selects := make(map[int]int, len(pairs))
	for _, pair := range pairs {
		tick, id, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --select %q: expected tick=slideId", pair)
		}
		t, err := strconv.Atoi(strings.TrimSpace(tick))
		if err != nil || t < 0 {
			return nil, fmt.Errorf("invalid tick in --select %q", pair)
		}
		s, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("invalid slide id in --select %q", pair)
		}
		selects[t] = s
	}
	return selects, nil
}

// simulate mounts one view and advances the manual clock one tick interval at a time
func simulate(out io.Writer, svc *services.Service, sched *scheduler.ManualScheduler, ticks int, selects map[int]int) error {
	view, err := svc.NewView()
	if err != nil {
		return err
	}
	if err := view.Mount(); err != nil {
		return err
	}
	defer view.Unmount()

	for _, tick := range sortedTicks(selects) {
		if tick > ticks {
			fmt.Fprintf(out, "warning: selection after tick %d is past the last tick %d\n", tick, ticks)
		}
	}

	interval := svc.TickInterval()
	fmt.Fprintf(out, "interval %s, %d ticks per slide\n", interval, view.TicksPerSlide())
	current := view.Snapshot()
	fmt.Fprintf(out, "tick %5d  slide %d  %s\n", 0, current.Slide.ID, current.Slide.ProjectName)

	for tick := 0; tick <= ticks; tick++ {
		if tick > 0 {
			sched.Advance(interval)
			snap := view.Snapshot()
			if snap.Slide.ID != current.Slide.ID {
				fmt.Fprintf(out, "tick %5d  slide %d  %s (advance)\n", tick, snap.Slide.ID, snap.Slide.ProjectName)
			}
			current = snap
		}

		id, ok := selects[tick]
		if !ok {
			continue
		}
		if err := view.Select(id); err != nil {
			return fmt.Errorf("select after tick %d: %w", tick, err)
		}
		current = view.Snapshot()
		fmt.Fprintf(out, "tick %5d  slide %d  %s (select)\n", tick, current.Slide.ID, current.Slide.ProjectName)
	}

	fmt.Fprintf(out, "final: slide %d at %s%% after %d ticks\n",
		current.Slide.ID, strconv.FormatFloat(current.Progress, 'f', -1, 64), ticks)
	return nil
}

func sortedTicks(selects map[int]int) []int {
	ticks := make([]int, 0, len(selects))
	for t := range selects {
		ticks = append(ticks, t)
	}
	sort.Ints(ticks)
	return ticks
}
