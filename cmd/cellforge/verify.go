package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cellforge/internal/blueprint"
	"cellforge/internal/topology"
	"cellforge/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <blueprint.yaml>",
	Short: "Check the inclusion functor laws of a blueprint complex",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := blueprint.Load(args[0])
		if err != nil {
			return err
		}
		c := f.Build()
		vertices := f.Vertices()

		probes := func(n int) []topology.Point {
			if n < 0 {
				return nil
			}
			pts := make([]topology.Point, 0, len(vertices))
			for _, id := range vertices {
				pts = append(pts, blueprint.LiftVertex(id, n))
			}
			return pts
		}

		report, err := verify.Complex(c, f.Top(), probes)
		if err != nil {
			return err
		}
		cmd.Printf("levels: %d, composition triples checked: %d\n", report.Levels, report.Triples)
		for _, failure := range report.Failures {
			cmd.Printf("FAIL %s\n", failure)
		}
		if !report.OK() {
			return fmt.Errorf("%d law violations", len(report.Failures))
		}
		cmd.Println("all functor laws hold")
		return nil
	},
}
