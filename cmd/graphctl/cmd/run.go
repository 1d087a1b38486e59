package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/graphcore/fixture"
	"github.com/katalvlaran/graphcore/graphcfg"
	"github.com/katalvlaran/graphcore/ids"
	"github.com/katalvlaran/graphcore/path"
	"github.com/katalvlaran/graphcore/store"
)

var (
	fixturePath string
	srcID       int
	destID      int
	relation    string
	maxLen      int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load a fixture, run a shortest-path traversal, and print stats",
	RunE:  runE,
}

func init() {
	runCmd.Flags().StringVar(&fixturePath, "fixture", "", "path to a YAML graph fixture (required)")
	runCmd.Flags().IntVar(&srcID, "src", 0, "fixture-local id of the traversal source node")
	runCmd.Flags().IntVar(&destID, "dest", -1, "fixture-local id of the traversal destination node (-1: report reachability only)")
	runCmd.Flags().StringVar(&relation, "relation", "", "relation name to traverse (empty: every declared relation for shortest paths, the first declared relation for reachability)")
	runCmd.Flags().IntVar(&maxLen, "max-len", 6, "maximum path length to search")
	_ = runCmd.MarkFlagRequired("fixture")
	rootCmd.AddCommand(runCmd)
}

func runE(cmd *cobra.Command, args []string) error {
	cfg, err := graphcfg.Load(cfgFile, graphcfg.WithMetricsNamespace("graphctl"))
	if err != nil {
		return err
	}
	s := cfg.NewStore()

	g, err := fixture.Load(fixturePath)
	if err != nil {
		return err
	}
	nodeIDs, err := fixture.Populate(s, g)
	if err != nil {
		return err
	}
	logger.Info("fixture loaded", zap.Int("nodes", len(g.Nodes)), zap.Int("edges", len(g.Edges)))

	src, ok := nodeIDs[srcID]
	if !ok {
		return fmt.Errorf("graphctl: no fixture node with id %d", srcID)
	}

	opts := path.Options{MaxLen: maxLen}
	if relation != "" {
		r, ok := s.RelationID(relation)
		if !ok {
			return fmt.Errorf("graphctl: unknown relation %q", relation)
		}
		opts.Relations = []ids.RelationId{r}
	}

	if destID < 0 {
		return printReachability(s, src, opts)
	}

	dest, ok := nodeIDs[destID]
	if !ok {
		return fmt.Errorf("graphctl: no fixture node with id %d", destID)
	}
	return printShortestPaths(s, src, dest, opts)
}

func printReachability(s *store.Store, src ids.NodeId, opts path.Options) error {
	var rel ids.RelationId
	switch {
	case len(opts.Relations) == 1:
		rel = opts.Relations[0]
	case len(s.RelationIDs()) > 0:
		rel = s.RelationIDs()[0]
	default:
		return fmt.Errorf("graphctl: no relation declared in fixture")
	}
	reach, err := path.BFSReachability(s, src, store.Out, rel, opts.MaxLen, false)
	if err != nil {
		return err
	}
	fmt.Printf("reachable from node %d: %d node(s)\n", src, len(reach.Depth))
	printStats(s)
	return nil
}

func printShortestPaths(s *store.Store, src, dest ids.NodeId, opts path.Options) error {
	sp, err := path.NewShortestPaths(s, src, dest, opts)
	if err != nil {
		return err
	}
	found := 0
	for {
		p, err := sp.Next()
		if err != nil {
			break
		}
		found++
		fmt.Printf("path %d: %v\n", found, p.Nodes)
	}
	fmt.Printf("%d shortest path(s) found from %d to %d\n", found, src, dest)
	printStats(s)
	return nil
}

func printStats(s *store.Store) {
	st := s.Stats()
	fmt.Printf("nodes=%d edges=%d\n", st.NodeCount, st.EdgeCount)
	for label, n := range st.LabelCounts {
		fmt.Printf("  label %s: %d\n", label, n)
	}
	for rel, n := range st.RelationCounts {
		fmt.Printf("  relation %s: %d\n", rel, n)
	}
}
