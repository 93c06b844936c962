package render

import (
	"fmt"
	"io"
	"log"
	"math"
	"time"

	svg "github.com/ajstarks/svgo"

	"github.com/policyposse/legisnet/internal/layout"
	"github.com/policyposse/legisnet/internal/view"
)

// SlowRenderThreshold is the advisory wall-clock budget for a full render.
// Exceeding it logs a warning; it is never enforced.
const SlowRenderThreshold = 3 * time.Second

const canvasMargin = 120

// SVG draws the view to w as a standalone SVG document: curved edges under
// party-colored nodes under state labels, with a count caption disclosing
// sampling ("showing N of M").
func SVG(w io.Writer, v View) error {
	start := time.Now()
	defer func() {
		if elapsed := time.Since(start); elapsed > SlowRenderThreshold {
			log.Printf("warning: slow render took %s (budget %s)", elapsed, SlowRenderThreshold)
		}
	}()

	side := int(2*(layout.Radius+layout.LabelOffset)) + canvasMargin
	center := side / 2

	canvas := svg.New(w)
	canvas.Start(side, side)
	canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", center, center))

	drawEdges(canvas, v)
	drawNodes(canvas, v)
	drawLabels(canvas, v)

	canvas.Gend()
	canvas.Text(16, 28, countCaption(v), `font-family="sans-serif"`, `font-size="14px"`, `fill="#333"`)
	canvas.End()
	return nil
}

// drawEdges renders every surviving edge whose endpoints are positioned and
// whose highlight opacity is nonzero.
func drawEdges(canvas *svg.SVG, v View) {
	for i, e := range v.Subgraph.Edges {
		em := v.Highlight.Edges[i]
		if em.Opacity == view.HiddenEdgeOpacity {
			continue
		}
		path, ok := v.Layout.EdgePath(e.Source, e.Target)
		if !ok || path == "" {
			// Missing endpoint: skip the edge, never fail the render.
			continue
		}
		color := em.Color
		if color == "" {
			color = view.DefaultEdgeColor
		}
		canvas.Path(path, `fill="none"`, `stroke-width="1"`,
			fmt.Sprintf(`stroke="%s"`, color),
			fmt.Sprintf(`stroke-opacity="%.2f"`, em.Opacity))
	}
}

func drawNodes(canvas *svg.SVG, v View) {
	for _, n := range v.Subgraph.Nodes {
		p, ok := v.Layout.Position(n.ID)
		if !ok {
			continue
		}
		canvas.Circle(round(p.X), round(p.Y), nodeRadius(n.Metrics.TotalCollaborations),
			fmt.Sprintf(`fill="%s"`, view.PartyColor(n.Party)),
			fmt.Sprintf(`fill-opacity="%.2f"`, v.nodeOpacity(n.ID)),
			`stroke="#fff"`, `stroke-width="1"`)
	}
}

func drawLabels(canvas *svg.SVG, v View) {
	for _, l := range v.Layout.Labels {
		canvas.Text(round(l.Point.X), round(l.Point.Y), l.State,
			`font-family="sans-serif"`, `font-size="13px"`, `fill="#444"`,
			`text-anchor="middle"`, `dominant-baseline="middle"`)
	}
}

// nodeRadius sizes a node by its total collaboration count, bounded so
// dense networks stay readable.
func nodeRadius(totalCollaborations int) int {
	r := 3 + int(math.Sqrt(float64(totalCollaborations)))
	if r > 14 {
		r = 14
	}
	return r
}

// countCaption summarizes the subgraph counts, disclosing sampling.
func countCaption(v View) string {
	c := v.Subgraph.Counts
	if c.Sampled {
		return fmt.Sprintf("%d legislators, showing %d of %d connections, %d bills",
			c.Legislators, len(v.Subgraph.Edges), c.Connections, c.Bills)
	}
	return fmt.Sprintf("%d legislators, %d connections, %d bills",
		c.Legislators, c.Connections, c.Bills)
}

func round(f float64) int {
	return int(math.Round(f))
}
