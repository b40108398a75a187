package rnacore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/layout"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// LayoutCmd draws the structure of every design
func LayoutCmd(cmd *cobra.Command, args []string) {
	start := time.Now()

	flags, conf, err := parseCmdFlags(cmd, args, false)
	if err != nil {
		stderr.Fatalln(err)
	}

	s, err := newSession(flags, conf)
	if err != nil {
		stderr.Fatalln(err)
	}

	reg := prometheus.NewRegistry()
	cache := layout.NewCache("layout", conf.Layout.CacheSize, reg)

	results, err := s.layoutDesigns(cmd.Context(), flags, cache)
	if err != nil {
		stderr.Fatalln(err)
	}

	if err := write(flags, newOutput(start, results), writeLayoutTable); err != nil {
		stderr.Fatalln(err)
	}

	if flags.metrics {
		if err := writeMetrics(os.Stderr, reg); err != nil {
			stderr.Fatalln(err)
		}
	}
}

// layoutDesigns lays out every design, sharing the cache between them
func (s *session) layoutDesigns(ctx context.Context, flags *Flags, cache *layout.Cache) ([]Result, error) {
	var custom []*layout.Point
	if flags.custom != "" {
		var err error
		if custom, err = readCustomLayout(flags.custom); err != nil {
			return nil, err
		}
	}

	results := make([]Result, 0, len(flags.designs))
	for _, d := range flags.designs {
		pairs, err := s.structure(ctx, d)
		if err != nil {
			return nil, err
		}

		tree := layout.New(s.conf).WithCache(cache)
		if err := tree.SetupTree(pairs); err != nil {
			return nil, fmt.Errorf("design %s: %w", d.Name, err)
		}
		l, err := tree.ComputeLayout()
		if err != nil {
			return nil, fmt.Errorf("design %s: %w", d.Name, err)
		}
		if custom != nil {
			if l, err = l.Override(custom); err != nil {
				return nil, fmt.Errorf("design %s: custom layout: %w", d.Name, err)
			}
		}

		treeScore := tree.Score()
		results = append(results, Result{
			Name:      d.Name,
			Seq:       d.Seq.String(),
			Structure: pairs.DotBracket(),
			TreeScore: &treeScore,
			Layout:    &l,
		})
	}
	return results, nil
}

// readCustomLayout reads a JSON array of points, ex: [{"x": 0, "y": 1}, null].
// null entries keep the computed position
func readCustomLayout(path string) ([]*layout.Point, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read custom layout %s: %v", path, err)
	}

	var points []*layout.Point
	if err := json.Unmarshal(dat, &points); err != nil {
		return nil, fmt.Errorf("failed to parse custom layout %s: %v", path, err)
	}
	return points, nil
}
