package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/mvalt/mdof/internal/config"
	"github.com/mvalt/mdof/internal/eigen"
	"github.com/mvalt/mdof/internal/metrics"
	"github.com/mvalt/mdof/internal/modal"
	"github.com/mvalt/mdof/internal/response"
	"github.com/mvalt/mdof/internal/system"
)

var (
	configFile string
	duration   float64
	coord      int
	noPlot     bool
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mdof",
		Short: "modal analysis and free response of MDOF vibration systems",
	}

	modesCmd := &cobra.Command{
		Use:   "modes [preset]",
		Short: "natural frequencies and mode shapes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runModes,
	}
	modesCmd.Flags().StringVar(&configFile, "config", "", "system description file (yaml)")

	responseCmd := &cobra.Command{
		Use:   "response [preset]",
		Short: "simulate the undamped free response",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runResponse,
	}
	responseCmd.Flags().StringVar(&configFile, "config", "", "system description file (yaml)")
	responseCmd.Flags().Float64Var(&duration, "time", 0, "override simulation horizon")
	responseCmd.Flags().IntVar(&coord, "coord", 0, "coordinate to plot")
	responseCmd.Flags().BoolVar(&noPlot, "no-plot", false, "suppress the trajectory plot")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in benchmark systems",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %-10s %s\n", name, dimStyle.Render(config.Presets[name].Name))
			}
			return nil
		},
	}

	selftestCmd := &cobra.Command{
		Use:   "selftest",
		Short: "run reference regressions against known results",
		RunE:  runSelftest,
	}

	rootCmd.AddCommand(modesCmd, responseCmd, presetsCmd, selftestCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(args []string) (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	name := "chain3"
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	return cfg, nil
}

func runModes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	sys, err := cfg.Build()
	if err != nil {
		return err
	}

	modes, err := modal.Undamped(sys.M, sys.K)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(cfg.Name))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "mode\tomega^2\tomega [rad/s]\tf [Hz]")
	for i, lam := range modes.OmegaSq {
		omega := math.Sqrt(math.Abs(real(lam)))
		fmt.Fprintf(w, "%d\t%.8f\t%.6f\t%.6f\n", i+1, real(lam), omega, omega/(2*math.Pi))
	}
	w.Flush()

	fmt.Println(dimStyle.Render("\nmode shapes (columns)"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	n := sys.Dim()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			fmt.Fprintf(w, "%+.6f\t", real(modes.S.At(i, j)))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return nil
}

func runResponse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	sys, err := cfg.Build()
	if err != nil {
		return err
	}
	x0, v0, err := cfg.InitState(sys.Dim())
	if err != nil {
		return err
	}
	if coord < 0 || coord >= sys.Dim() {
		return fmt.Errorf("coordinate %d out of range [0, %d)", coord, sys.Dim())
	}

	maxTime := cfg.Duration
	if duration > 0 {
		maxTime = duration
	}

	traj, err := response.Free(sys.M, sys.K, x0, v0, maxTime)
	if err != nil {
		return err
	}

	energy := metrics.NewEnergy(sys)
	drift := metrics.NewEnergyDrift(sys)
	peak := metrics.NewPeakAmplitude(coord)
	metrics.Apply(traj, energy, drift, peak)

	fmt.Println(titleStyle.Render(cfg.Name))
	fmt.Printf("samples: %d  dt: %.6f  horizon: %.2f\n", traj.Len(), traj.Dt(), maxTime)
	fmt.Println("\nmetrics:")
	for _, m := range []metrics.Metric{energy, drift, peak} {
		fmt.Printf("  %s: %.6g\n", m.Name(), m.Value())
	}

	if noPlot {
		return nil
	}

	data := downsample(traj.Displacement(coord), 100)
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("displacement x%d", coord)),
	)
	fmt.Println("\n" + graph)
	return nil
}

func downsample(data []float64, points int) []float64 {
	if len(data) <= points {
		return data
	}
	out := make([]float64, points)
	for i := range out {
		out[i] = data[i*(len(data)-1)/(points-1)]
	}
	return out
}

func runSelftest(cmd *cobra.Command, args []string) error {
	failures := 0
	check := func(name string, ok bool) {
		if ok {
			fmt.Printf("%s %s\n", passStyle.Render("pass"), name)
		} else {
			fmt.Printf("%s %s\n", failStyle.Render("FAIL"), name)
			failures++
		}
	}

	// Ascending order for an all-positive real spectrum.
	vals, _, err := eigen.Sort(mat.NewDense(3, 3, []float64{1, 0, 0, 0, 5, 0, 0, 0, 3}))
	check("eigen sort, positive real spectrum", err == nil &&
		approx(real(vals[0]), 1, 1e-9) && approx(real(vals[1]), 3, 1e-9) && approx(real(vals[2]), 5, 1e-9))

	// Natural frequencies of the three-mass chain benchmark.
	chain, _ := system.NewChain([]float64{4, 4, 4}, []float64{4, 4, 4})
	want := []float64{0.19806226, 1.55495813, 3.24697960}
	modes, err := modal.Undamped(chain.M, chain.K)
	ok := err == nil
	for i := range want {
		ok = ok && approx(real(modes.OmegaSq[i]), want[i], 1e-6)
	}
	check("modal decomposition, three-mass chain", ok)

	// Free-response benchmark for the two-mass system.
	m := mat.NewDense(2, 2, []float64{1, 0, 0, 4})
	k := mat.NewDense(2, 2, []float64{12, -2, -2, 12})
	traj, err := response.Free(m, k, []float64{1, 1}, []float64{0, 0}, 10)
	ok = err == nil && traj.Len() == 2500
	if ok {
		first := traj.Sample(0)
		second := traj.Sample(1)
		ref := []float64{0.99991994, 0.99997998, -0.04001478, -0.01000397}
		ok = first[0] == 1 && first[1] == 1 && first[2] == 0 && first[3] == 0
		for i := range ref {
			ok = ok && approx(second[i], ref[i], 1e-6)
		}
	}
	check("free response, two-mass benchmark", ok)

	// Energy conservation over the full horizon.
	if err == nil {
		sys, _ := system.New(m, k)
		drift := metrics.NewEnergyDrift(sys)
		metrics.Apply(traj, drift)
		check("energy conservation", drift.Value() < 1e-8)
	}

	if failures > 0 {
		return fmt.Errorf("%d selftest failure(s)", failures)
	}
	fmt.Println(dimStyle.Render("all checks passed"))
	return nil
}

func approx(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}
