// Package extensions provides optional diagnostics for a simcore
// DiagramContext: ASCII topology rendering and structured logging around
// cache invalidation and output-freshness events. Nothing here is on the
// hot path of Cache, Context, or DiagramContext; a caller wires it in
// explicitly wherever it wants visibility.
package extensions

import (
	"fmt"

	"github.com/m1gwings/treedrawer/tree"

	simcore "github.com/kestrelsys/simcore"
)

// RenderTopology draws d's subsystems and their output freshness as an
// ASCII tree, one branch per child, one leaf per output port.
func RenderTopology[T simcore.Scalar](d *simcore.DiagramContext[T]) string {
	root := tree.NewTree(tree.NodeString("diagram"))

	for i := 0; i < d.NumSystems(); i++ {
		ctx, err := d.GetSubsystemContext(i)
		if err != nil {
			root.AddChild(tree.NodeString(fmt.Sprintf("system[%d] (not installed)", i)))
			continue
		}

		outputs := ctx.Outputs()
		label := fmt.Sprintf("system[%d] in=%d out=%d", i, ctx.NumInputPorts(), outputs.NumPorts())
		child := root.AddChild(tree.NodeString(label))

		for p := 0; p < outputs.NumPorts(); p++ {
			status := "stale"
			if fresh, err := outputs.IsFresh(p); err == nil && fresh {
				status = "fresh"
			}
			child.AddChild(tree.NodeString(fmt.Sprintf("output[%d] %s", p, status)))
		}
	}

	return root.String()
}

// RenderWiring draws d's internal Connect edges and its exported inputs and
// outputs as aliases of their owning child's ports, complementing
// RenderTopology's per-child view.
func RenderWiring[T simcore.Scalar](d *simcore.DiagramContext[T]) string {
	root := tree.NewTree(tree.NodeString("wiring"))

	edges := root.AddChild(tree.NodeString("connections"))
	for _, c := range d.Connections() {
		label := fmt.Sprintf("system[%d].out[%d] -> system[%d].in[%d]", c.Src.SystemIndex, c.Src.PortIndex, c.Dest.SystemIndex, c.Dest.PortIndex)
		edges.AddChild(tree.NodeString(label))
	}

	exportedIn := root.AddChild(tree.NodeString("exported inputs"))
	for i := 0; i < d.NumInputPorts(); i++ {
		exportedIn.AddChild(tree.NodeString(fmt.Sprintf("diagram.in[%d]", i)))
	}

	exportedOut := root.AddChild(tree.NodeString("exported outputs"))
	for i := 0; i < d.NumOutputPorts(); i++ {
		exportedOut.AddChild(tree.NodeString(fmt.Sprintf("diagram.out[%d]", i)))
	}

	return root.String()
}
