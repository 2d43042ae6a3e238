// Package plotting manages plot output: static images via gonum/plot and
// interactive HTML charts via go-echarts, saved under the configured plot
// directory with slugified names.
package plotting

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/kyelljensen/kjcore/config"
	"github.com/kyelljensen/kjcore/logging"
	"github.com/kyelljensen/kjcore/pathutil"
)

// Style holds the default rendering attributes applied to every plot.
type Style struct {
	WidthInches  float64
	HeightInches float64
	DPI          int
	Grid         bool
}

// DefaultStyle mirrors the package defaults: 8x6 inches at 300 DPI with a
// grid.
func DefaultStyle() Style {
	return Style{WidthInches: 8, HeightInches: 6, DPI: 300, Grid: true}
}

// Renderer is anything that can render itself to a writer. All go-echarts
// chart types satisfy it.
type Renderer interface {
	Render(w io.Writer) error
}

// Manager owns the plot directory.
type Manager struct {
	dir   string
	style Style
	log   *zap.Logger
}

// New creates the plot directory if needed.
func New(cfg *config.Config) (*Manager, error) {
	dir, err := pathutil.EnsureDir(cfg.PlotDirectory)
	if err != nil {
		return nil, err
	}
	m := &Manager{
		dir:   dir,
		style: DefaultStyle(),
		log:   logging.Named("plotting"),
	}
	m.log.Info("plot manager initialized", zap.String("dir", dir))
	return m, nil
}

// Style returns the current style.
func (m *Manager) Style() Style {
	return m.style
}

// SetStyle replaces the rendering defaults.
func (m *Manager) SetStyle(s Style) {
	m.style = s
}

// Dir returns the plot directory.
func (m *Manager) Dir() string {
	return m.dir
}

// slugName normalizes a name for use in file paths, underscore separated.
func slugName(name string) string {
	return strings.ReplaceAll(slug.Make(name), "-", "_")
}

// subdirPath resolves (and creates) the target directory for a plot.
func (m *Manager) subdirPath(subdir string) (string, error) {
	if subdir == "" {
		return m.dir, nil
	}
	return pathutil.EnsureDir(filepath.Join(m.dir, slugName(subdir)))
}

// SaveChart renders an interactive chart as <name>.html and returns the
// file path.
func (m *Manager) SaveChart(c Renderer, name, subdir string) (string, error) {
	timer := logging.StartTimer("plotting", "SaveChart")
	defer timer.Stop()

	dir, err := m.subdirPath(subdir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, slugName(name)+".html")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := c.Render(file); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to render chart %s: %w", name, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	m.log.Debug("chart saved", zap.String("path", path))
	return path, nil
}

// SavePlot renders a static plot as <name>.<format> at the configured size.
// Supported formats: png (honors DPI), svg, pdf.
func (m *Manager) SavePlot(p *plot.Plot, name, subdir, format string) (string, error) {
	timer := logging.StartTimer("plotting", "SavePlot")
	defer timer.Stop()

	if format == "" {
		format = "png"
	}

	dir, err := m.subdirPath(subdir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, slugName(name)+"."+format)

	width := vg.Length(m.style.WidthInches) * vg.Inch
	height := vg.Length(m.style.HeightInches) * vg.Inch

	switch format {
	case "png":
		if err := m.savePNG(p, path, width, height); err != nil {
			return "", err
		}
	case "svg", "pdf":
		if err := p.Save(width, height, path); err != nil {
			return "", fmt.Errorf("failed to save plot %s: %w", path, err)
		}
	default:
		return "", fmt.Errorf("unsupported plot format %q", format)
	}

	m.log.Debug("plot saved", zap.String("path", path))
	return path, nil
}

// savePNG renders through a vgimg canvas so the configured DPI applies.
func (m *Manager) savePNG(p *plot.Plot, path string, width, height vg.Length) error {
	canvas := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(m.style.DPI))
	p.Draw(draw.New(canvas))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

// ChartJob is one chart in a SaveAll batch.
type ChartJob struct {
	Chart  Renderer
	Name   string
	Subdir string
}

// SaveAll renders a batch of charts concurrently. The first failure cancels
// the rest.
func (m *Manager) SaveAll(ctx context.Context, jobs []ChartJob) error {
	timer := logging.StartTimer("plotting", "SaveAll")
	defer timer.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := m.SaveChart(job.Chart, job.Name, job.Subdir)
			return err
		})
	}
	return g.Wait()
}
