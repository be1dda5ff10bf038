package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rigid/internal/config"
	"github.com/san-kum/rigid/internal/export"
	"github.com/san-kum/rigid/internal/metrics"
	"github.com/san-kum/rigid/internal/physics"
	"github.com/san-kum/rigid/internal/sim"
	"github.com/san-kum/rigid/internal/tui"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

var (
	queryX     float32
	queryZ     float32
	profileRow int
	profileCol int
	dt         float32
	duration   float32
	frameRate  int
	live       bool
	watch      bool
	outPath    string
	configFile string
	trajPath   string
	trackNode  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rigid",
		Short: "rigid body and terrain inspection for scene files",
	}

	heightCmd := &cobra.Command{
		Use:   "height [scene]",
		Short: "query terrain height at a world coordinate",
		Args:  cobra.ExactArgs(1),
		RunE:  runHeight,
	}
	heightCmd.Flags().Float32Var(&queryX, "x", 0, "world x coordinate")
	heightCmd.Flags().Float32Var(&queryZ, "z", 0, "world z coordinate")

	profileCmd := &cobra.Command{
		Use:   "profile [scene]",
		Short: "plot a terrain cross-section",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfile,
	}
	profileCmd.Flags().IntVar(&profileRow, "row", -1, "grid row to plot (default: middle)")
	profileCmd.Flags().IntVar(&profileCol, "col", -1, "grid column to plot instead of a row")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "step the world and report final body poses",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float32Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float32Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate for live view")
	runCmd.Flags().BoolVar(&live, "live", false, "render each frame to the terminal")
	runCmd.Flags().BoolVar(&watch, "watch", false, "interactive watch view")
	runCmd.Flags().StringVar(&configFile, "config", "", "tool config file (flags override)")
	runCmd.Flags().StringVar(&trajPath, "traj", "", "write a trajectory CSV for one body")
	runCmd.Flags().StringVar(&trackNode, "track", "", "node to track for --traj (default: first dynamic body)")

	exportCmd := &cobra.Command{
		Use:   "export [scene]",
		Short: "export terrain data to CSV or SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&outPath, "out", "terrain.csv", "output path (.csv or .svg)")
	exportCmd.Flags().IntVar(&profileRow, "row", -1, "grid row for SVG profile (default: middle)")

	materialsCmd := &cobra.Command{
		Use:   "materials",
		Short: "list built-in body materials",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "name\tfriction\trestitution\tlinDamp\tangDamp")
			for _, name := range physics.MaterialNames() {
				m, _ := physics.MaterialByName(name)
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\n",
					name, m.Friction, m.Restitution, m.LinearDamping, m.AngularDamping)
			}
			w.Flush()
		},
	}

	rootCmd.AddCommand(heightCmd, profileCmd, runCmd, exportCmd, materialsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildScene(path string) (*physics.World, []*physics.RigidBody, error) {
	s, err := config.LoadScene(path)
	if err != nil {
		return nil, nil, err
	}
	w := physics.NewWorld()
	_, bodies, err := s.Build(w)
	if err != nil {
		return nil, nil, err
	}
	return w, bodies, nil
}

func findTerrain(bodies []*physics.RigidBody) *physics.RigidBody {
	for _, rb := range bodies {
		if rb.CollisionShape().Kind == physics.Heightfield {
			return rb
		}
	}
	return nil
}

func runHeight(cmd *cobra.Command, args []string) error {
	_, bodies, err := buildScene(args[0])
	if err != nil {
		return err
	}
	terrain := findTerrain(bodies)
	if terrain == nil {
		return fmt.Errorf("scene has no heightfield body")
	}

	h := terrain.HeightAt(queryX, queryZ)
	fmt.Printf("%s %s\n",
		headerStyle.Render(fmt.Sprintf("height(%.2f, %.2f)", queryX, queryZ)),
		fmt.Sprintf("= %.4f", h))
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	_, bodies, err := buildScene(args[0])
	if err != nil {
		return err
	}
	terrain := findTerrain(bodies)
	if terrain == nil {
		return fmt.Errorf("scene has no heightfield body")
	}
	field := terrain.CollisionShape().Field

	var data []float64
	var caption string
	if profileCol >= 0 {
		if profileCol >= field.Width {
			return fmt.Errorf("column %d outside heightfield with %d columns", profileCol, field.Width)
		}
		data = make([]float64, field.Height)
		for z := 0; z < field.Height; z++ {
			data[z] = float64(field.At(profileCol, z))
		}
		caption = fmt.Sprintf("terrain column %d of %s", profileCol, terrain.Node().Name())
	} else {
		row := profileRow
		if row < 0 {
			row = field.Height / 2
		}
		if row >= field.Height {
			return fmt.Errorf("row %d outside heightfield with %d rows", row, field.Height)
		}
		data = make([]float64, field.Width)
		for x := 0; x < field.Width; x++ {
			data[x] = float64(field.At(x, row))
		}
		caption = fmt.Sprintf("terrain row %d of %s", row, terrain.Node().Name())
	}

	minH, maxH := data[0], data[0]
	for _, h := range data {
		if h < minH {
			minH = h
		}
		if h > maxH {
			maxH = h
		}
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption))
	fmt.Println(graph)
	fmt.Println(dimStyle.Render(fmt.Sprintf("grid %dx%d  min %.2f  max %.2f",
		field.Width, field.Height, minH, maxH)))
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if !cmd.Flags().Changed("dt") {
			dt = cfg.Dt
		}
		if !cmd.Flags().Changed("time") {
			duration = cfg.Duration
		}
		if !cmd.Flags().Changed("fps") {
			frameRate = cfg.FrameRate
		}
	}
	if dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", dt)
	}

	world, bodies, err := buildScene(args[0])
	if err != nil {
		return err
	}
	if len(bodies) == 0 {
		fmt.Println(warnStyle.Render("scene produced no rigid bodies"))
		return nil
	}

	if watch {
		return tui.RunWatch(world, dt, frameRate)
	}

	var renderer *tui.LiveRenderer
	if live {
		renderer = tui.NewLiveRenderer(frameRate)
		world.AddObserver(renderer)
		renderer.Start()
		defer renderer.Stop()
	}

	tracker := metrics.NewEnergyTracker()
	world.AddObserver(tracker)

	runner := sim.NewRunner(world)
	for _, rb := range bodies {
		if !rb.IsStatic() {
			runner.Track(rb)
		}
	}

	result, err := runner.Run(context.Background(), sim.Config{Dt: dt, Duration: duration})
	if err != nil {
		return err
	}

	if trajPath != "" {
		name := trackNode
		if name == "" {
			for _, rb := range bodies {
				if !rb.IsStatic() {
					name = rb.Node().Name()
					break
				}
			}
		}
		track, ok := result.Tracks[name]
		if !ok {
			return fmt.Errorf("no tracked body named %q", name)
		}
		if err := export.SaveTrajectoryCSV(trajPath, result.Times, track); err != nil {
			return err
		}
		fmt.Println(dimStyle.Render("wrote " + trajPath))
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("final poses after %.2fs (%d steps)", duration, result.StepsTaken)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "node\tshape\tx\ty\tz\tactive")
	for _, rb := range bodies {
		p := rb.Node().Position()
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%.3f\t%.3f\t%t\n",
			rb.Node().Name(), rb.CollisionShape().Kind, p.X(), p.Y(), p.Z(), rb.IsActive())
	}
	w.Flush()
	if len(tracker.Samples) > 0 {
		fmt.Println(dimStyle.Render(fmt.Sprintf("energy %.3f -> %.3f  max drift %.1f%%",
			tracker.Samples[0], tracker.Samples[len(tracker.Samples)-1], tracker.MaxDrift()*100)))
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	_, bodies, err := buildScene(args[0])
	if err != nil {
		return err
	}
	terrain := findTerrain(bodies)
	if terrain == nil {
		return fmt.Errorf("scene has no heightfield body")
	}
	field := terrain.CollisionShape().Field

	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".svg":
		row := profileRow
		if row < 0 {
			row = field.Height / 2
		}
		svg, err := export.ProfileSVG(field, row, 4)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
			return err
		}
	case ".csv":
		if err := export.SaveTerrainCSV(outPath, field); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported export extension %q: use .csv or .svg", filepath.Ext(outPath))
	}

	fmt.Println(dimStyle.Render("wrote " + outPath))
	return nil
}
