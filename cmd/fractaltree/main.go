package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fractaltree/pkg/app/ebitenui"
	"fractaltree/pkg/app/fyneui"
	"fractaltree/pkg/colormap"
	"fractaltree/pkg/config"
	"fractaltree/pkg/render"
	"fractaltree/pkg/tree"
)

const windowTitle = "Fractal Tree"

type options struct {
	mode     string
	depth    int
	angleDeg float64
	factor   float64
	seed     int64
	cmap     string
	save     string
	width    int
	height   int
}

func mainCmd() *cobra.Command {
	// Saved preferences become the flag defaults, so plain `fractaltree`
	// reopens the last-used tree.
	prefs := config.Load(config.DefaultPath())
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "fractaltree",
		Short: "Interactive fractal tree visualization",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.mode, "mode", "plot", "visualization mode: plot (animated sliders) or win (toolkit window)")
	flags.IntVar(&opts.depth, "depth", prefs.Depth, "recursion depth for the fractal tree")
	flags.Float64Var(&opts.angleDeg, "angle", prefs.AngleDeg, "branch angle in degrees")
	flags.Float64Var(&opts.factor, "factor", prefs.Factor, "branch length factor")
	flags.Int64Var(&opts.seed, "seed", 0, "accepted for compatibility; the tree is deterministic")
	flags.StringVar(&opts.cmap, "cmap-tree", prefs.Cmap, "colormap for the tree: "+strings.Join(colormap.Names(), ", "))
	flags.StringVar(&opts.save, "save", "", "path to save a static snapshot (PNG) and exit")
	flags.IntVar(&opts.width, "width", 900, "window or snapshot width in pixels")
	flags.IntVar(&opts.height, "height", 700, "window or snapshot height in pixels")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	cmap, ok := colormap.ByName(opts.cmap)
	if !ok {
		fmt.Printf("unknown colormap %q, using %s\n", opts.cmap, colormap.Default().Name)
		cmap = colormap.Default()
	}

	if opts.save != "" {
		params := tree.Params{
			Depth:  opts.depth,
			Angle:  opts.angleDeg * math.Pi / 180,
			Factor: opts.factor,
			Cmap:   cmap,
			Seed:   opts.seed,
		}
		segs := tree.Generate(params, tree.DefaultPose())
		img := render.Raster(segs, render.DefaultCanvas(opts.width, opts.height))
		if err := render.WritePNG(opts.save, img); err != nil {
			return err
		}
		fmt.Printf("Saved visualization to %s\n", opts.save)
		return nil
	}

	switch opts.mode {
	case "plot":
		a := ebitenui.New(opts.width, opts.height, opts.depth, opts.angleDeg, opts.factor, cmap)
		if err := ebitenui.Run(a, windowTitle); err != nil {
			return err
		}
		opts.depth, opts.angleDeg, opts.factor = a.Values()
	case "win":
		a := fyneui.New(opts.width, opts.height, opts.depth, opts.angleDeg, opts.factor, cmap)
		a.Run(windowTitle)
		opts.depth, opts.angleDeg, opts.factor = a.Values()
	default:
		return fmt.Errorf("unknown mode %q (want plot or win)", opts.mode)
	}

	saved := config.Prefs{
		Depth:    opts.depth,
		AngleDeg: opts.angleDeg,
		Factor:   opts.factor,
		Cmap:     cmap.Name,
	}
	if err := config.Save(config.DefaultPath(), saved); err != nil {
		fmt.Printf("could not save preferences: %v\n", err)
	}
	return nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
