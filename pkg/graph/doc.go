// Package graph provides the chart wire format and the adapters between
// chart records and layout engine records.
//
// A [Chart] is what users write: a layout kind, a box size, one or more
// series of points, optional edges and optional simulation overrides. The
// package reads charts from JSON, YAML and Graphviz DOT files, converts
// them into [layout.Node] and [layout.Edge] records with [ToRecords], and
// writes the simulated positions back out as a [Layout].
//
// # Chart Format
//
//	{
//	  "kind": "packedbubble",
//	  "width": 800,
//	  "height": 600,
//	  "series": [
//	    {"name": "europe", "points": [{"id": "de", "value": 83}, {"id": "fr", "value": 67}]},
//	    {"name": "asia",   "points": [{"id": "jp", "value": 125}]}
//	  ],
//	  "simulation": {"split_series": true, "parent_node_limit": true}
//	}
//
// Network charts add "edges": [{"from": "de", "to": "fr"}]. DOT files
// always become network charts with a single series.
//
// # Bubble Sizing
//
// Points without an explicit radius are sized by value so that bubble
// area grows linearly between the chart's min_size and max_size radii.
// Network points without a radius default to zero.
//
// # Split Series
//
// With split_series set on a packed-bubble chart, [ToRecords] adds one
// parent node per series (ID "series:<name>") whose mass is the sum of its
// children's masses. Parent nodes are reported in the output layout with
// parent set to true.
//
// # Parameter Files
//
// [ReadSimulationFile] reads the same overrides from a TOML file:
//
//	friction = 0.2
//	max_iterations = 500
//	cooling = "linear"
package graph
