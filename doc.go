// Package simcore is the computation cache and context-graph core for a
// simulation framework of interconnected dynamical systems. It does not
// simulate anything itself: it gives every subsystem a Context to hold
// its time, state, and input/output ports, and a Cache to remember
// derived values until something they depend on changes.
//
// A LeafContext is the Context for one subsystem. It owns a State
// (continuous, discrete, and modal sub-containers), a fixed number of
// input ports, an output port set, and a Cache keyed by Ticket:
//
//	outputs := simcore.NewOutputPortSet[float64](simcore.NewVectorOutputSlot[float64](1))
//	ctx := simcore.NewLeafContext[float64](nil, outputs, 1)
//	ctx.SetTime(0.5)
//	ctx.SetInputPort(0, simcore.NewFreestandingVectorPort[float64]([]float64{3}))
//
// A DiagramContext composes LeafContexts into a subsystem of subsystems.
// Connect wires one child's output to another's input with a
// DependentInputPort; ExportInput and ExportOutput alias a child's port
// as one of the diagram's own:
//
//	d := simcore.NewDiagramContext[float64](2)
//	d.AddSystem(0, srcCtx)
//	d.AddSystem(1, sinkCtx)
//	d.Connect(0, 0, 1, 0)
//	d.MakeState()
//
// Every Cache ticket is a prerequisite graph: MakeTicket declares what a
// value depends on, and Invalidate walks every transitive dependent,
// marking each invalid even if it already was, so a caller that
// short-circuits on "already invalid" elsewhere in the graph never misses
// a downstream invalidation. A Cache never frees an invalidated entry's
// Value; anything a caller already holds a reference to remains valid to
// read, just no longer trusted as current.
//
// This package assumes a single writer: nothing here synchronizes
// concurrent access, and a Context or Cache must not be shared across
// goroutines without an external lock.
package simcore
