package main

import (
	"github.com/spf13/cobra"

	"cellforge/internal/geom"
	"cellforge/internal/jar"
	"cellforge/internal/sampling"
	"cellforge/internal/topology"
)

var evalSteps int

// evalCmd samples the dimension-0 homotopy extension of f(x) = x under
// the stationary boundary homotopy H(s,t) = s over a grid on the jar
// [-1,1] × [0,1]. A worked instance of the extension engine, evaluated
// through the parallel sampling layer.
var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Sample the dimension-0 homotopy extension on a grid",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		disk := geom.Disk(1)
		sphere := geom.Sphere(0)
		wall := topology.Product(sphere, geom.Interval())

		f := topology.NewMap("f", disk, disk, func(p topology.Point) topology.Point { return p })
		h := topology.NewMap("H", wall, disk, func(p topology.Point) topology.Point {
			return p.(topology.Pair).Left
		})

		ext, err := jar.Extend(0, f, h, jar.BoundaryWitness{
			SphereProbes: []topology.Point{geom.Vec{-1}, geom.Vec{1}},
		})
		if err != nil {
			return err
		}

		var grid []topology.Point
		for i := 0; i <= evalSteps; i++ {
			x := -1 + 2*float64(i)/float64(evalSteps)
			for j := 0; j <= evalSteps; j++ {
				y := float64(j) / float64(evalSteps)
				grid = append(grid, topology.Pair{Left: geom.Vec{x}, Right: geom.T(y)})
			}
		}

		values, err := sampling.EvalBatch(cmd.Context(), ext.Map, grid, 0)
		if err != nil {
			return err
		}
		for i, p := range grid {
			pr := p.(topology.Pair)
			cmd.Printf("ext(% .3f, %.3f) = % .6f\n",
				pr.Left.(geom.Vec)[0], pr.Right.(geom.Vec)[0], values[i].(geom.Vec)[0])
		}
		return nil
	},
}

func init() {
	evalCmd.Flags().IntVar(&evalSteps, "steps", 8, "grid subdivisions per axis")
}
