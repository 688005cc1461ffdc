package main

import (
	"github.com/spf13/cobra"

	"cellforge/internal/blueprint"
)

var buildCmd = &cobra.Command{
	Use:   "build <blueprint.yaml>",
	Short: "Assemble the skeleta of a blueprint complex",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := blueprint.Load(args[0])
		if err != nil {
			return err
		}
		c := f.Build()
		top := f.Top()

		cmd.Printf("complex %q (base %s)\n", f.Name, f.BaseSpace().Name())
		for n := -1; n <= top; n++ {
			sk, err := c.Skeleton(n)
			if err != nil {
				return err
			}
			cmd.Printf("  sk(%d) = %s\n", n, sk.Name())
		}

		colim, err := c.Colimit().Include(top)
		if err != nil {
			return err
		}
		cmd.Printf("colimit: %s\n", colim.Cod().Name())
		return nil
	},
}
