package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stressmap/pkg/errors"
	"github.com/matzehuels/stressmap/pkg/pipeline"
	"github.com/matzehuels/stressmap/pkg/scene"
	"github.com/matzehuels/stressmap/pkg/stress"
)

// stdoutPath selects standard output for a single-format render.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file (single format) or base path (multiple)
	formats    string   // comma-separated output formats
	points     []string // extra "R,theta" points
	nR, nTheta int      // grid divisions
	noCache    bool
	redisURL   string
	pipeline   pipeline.Options
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [scene.toml|scene.json]",
		Short: "Render a stress heatmap",
		Long: `Render a stress heatmap from a scene file, or from flags alone.

Flags override the matching scene fields. Without grid data in the scene a
seeded random grid is drawn.`,
		Example: `  stressmap render --point 0.5,60 --point 2.5,30 -f svg,png
  stressmap render scene.toml --palette plasma -o out/heatmap`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", `output file (single format) or base path (multiple); "-" for stdout`)
	f.StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, pdf, json (comma-separated)")
	f.Float64Var(&opts.pipeline.Width, "width", 0, fmt.Sprintf("logical width (default %g)", scene.DefaultWidth))
	f.Float64Var(&opts.pipeline.Height, "height", 0, fmt.Sprintf("logical height (default %g)", scene.DefaultHeight))
	f.Float64Var(&opts.pipeline.PixelRatio, "pixel-ratio", 0, "physical pixels per logical unit (default 1)")
	f.StringVar(&opts.pipeline.Palette, "palette", "", "colour scheme: viridis (default), plasma, inferno, bw")
	f.StringArrayVar(&opts.points, "point", nil, `annotated point as "R,theta" (repeatable)`)
	f.IntVar(&opts.nR, "divisions-r", 0, fmt.Sprintf("grid divisions along R (default %d)", stress.DefaultDivisions))
	f.IntVar(&opts.nTheta, "divisions-theta", 0, fmt.Sprintf("grid divisions along theta (default %d)", stress.DefaultDivisions))
	f.Uint64Var(&opts.pipeline.Seed, "seed", 0, fmt.Sprintf("random grid seed (default %d)", scene.DefaultSeed))
	f.StringVar(&opts.pipeline.Background, "background", "", "SVG and PNG background colour (default #ffffff)")
	f.BoolVar(&opts.pipeline.Ops, "ops", false, "include drawing calls in JSON output")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	f.BoolVar(&opts.pipeline.Refresh, "refresh", false, "ignore cached artifacts but store fresh ones")
	f.StringVar(&opts.redisURL, "redis-url", "", "redis cache URL (env "+redisURLEnv+")")

	return cmd
}

// runRender loads the scene, applies flag overrides, renders every format and
// writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	formats, err := pipeline.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	opts.pipeline.Formats = formats
	if opts.output == stdoutPath && len(formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format (got %s)", strings.Join(formats, ","))
	}

	s, err := loadScene(input)
	if err != nil {
		return err
	}
	if err := applySceneFlags(s, opts); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache, opts.redisURL)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Rendering "+strings.Join(formats, ", "))
	spinner.Start()
	result, err := runner.Execute(ctx, s, opts.pipeline)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", strings.Join(formats, ", ")))

	if opts.output == stdoutPath {
		_, err := os.Stdout.Write(result.Artifacts[formats[0]])
		return err
	}

	paths := outputPaths(opts.output, input, formats)
	for _, format := range formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Rendered %s heatmap", result.Scene.Palette)
	printStats(frameStats{
		cells:    result.Frame.Cells,
		markers:  len(result.Frame.Markers),
		rejected: len(result.Frame.Rejected),
		cached:   result.CacheInfo.AllHit(),
	})
	for _, m := range result.Frame.Markers {
		printDetail("%s %s", m.Label, m.Regime)
	}
	for _, rej := range result.Frame.Rejected {
		printWarning("point %d (R=%g, θ=%g°) skipped: %s", rej.Index, rej.Point.R, rej.Point.Theta, rej.Reason)
	}
	for _, format := range formats {
		printFile(paths[format])
	}
	return nil
}

// loadScene reads input, or returns the default scene when input is empty.
func loadScene(input string) (*scene.Scene, error) {
	if input == "" {
		return scene.Parse(nil, scene.FormatTOML)
	}
	return scene.Load(input)
}

// applySceneFlags adds flag points and divisions to s.
func applySceneFlags(s *scene.Scene, opts *renderOpts) error {
	for _, raw := range opts.points {
		p, err := parsePoint(raw)
		if err != nil {
			return err
		}
		s.Points = append(s.Points, p)
	}
	if opts.nR != 0 || opts.nTheta != 0 {
		if s.HasData() {
			return errors.New(errors.ErrCodeInvalidInput, "--divisions-r and --divisions-theta cannot override a scene with grid data")
		}
		if opts.nR != 0 {
			s.RDivisions = opts.nR
		}
		if opts.nTheta != 0 {
			s.ThetaDivisions = opts.nTheta
		}
	}
	return nil
}

// parsePoint parses "R,theta".
func parsePoint(s string) (stress.Point, error) {
	rs, ts, ok := strings.Cut(s, ",")
	if !ok {
		return stress.Point{}, errors.New(errors.ErrCodeInvalidInput, "invalid point %q (want R,theta)", s)
	}
	r, err := strconv.ParseFloat(strings.TrimSpace(rs), 64)
	if err != nil {
		return stress.Point{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid R in point %q", s)
	}
	theta, err := strconv.ParseFloat(strings.TrimSpace(ts), 64)
	if err != nil {
		return stress.Point{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid theta in point %q", s)
	}
	return stress.Point{R: r, Theta: theta}, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input, or falls back to
// the application name. A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its file. A single format written to an
// explicit output keeps that exact name.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeArtifact(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
