package graph

import (
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/packforce/pkg/errors"
)

// dotSeries names the single series produced from a DOT file.
const dotSeries = "dot"

// parseDOT turns a Graphviz graph into a network chart: every node becomes
// a point of one series and every edge a chart edge. Graph attributes are
// ignored; sizes come from the chart defaults.
func parseDOT(data []byte) (*Chart, error) {
	g, err := graphviz.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse dot")
	}
	defer g.Close()

	wrap := func(err error) error {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "walk dot graph")
	}

	c := &Chart{Kind: KindNetwork, Series: []Series{{Name: dotSeries}}}
	points := &c.Series[0].Points

	n, err := g.FirstNode()
	for ; err == nil && n != nil; n, err = g.NextNode(n) {
		name, err := n.Name()
		if err != nil {
			return nil, wrap(err)
		}
		*points = append(*points, Point{ID: name})

		e, err := g.FirstOut(n)
		for ; err == nil && e != nil; e, err = g.NextOut(e) {
			head, err := e.Head()
			if err != nil {
				return nil, wrap(err)
			}
			to, err := head.Name()
			if err != nil {
				return nil, wrap(err)
			}
			c.Edges = append(c.Edges, Edge{From: name, To: to})
		}
		if err != nil {
			return nil, wrap(err)
		}
	}
	if err != nil {
		return nil, wrap(err)
	}
	return c, nil
}
