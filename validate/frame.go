package validate

import "github.com/go-orderly/orderly/schema"

// anyIdx is the sentinel schema.Idx denoting the synthetic, schemaless
// "any" node: a value that has fallen outside any explicit schedule
// because its container's additional_properties is any_kind, or because
// an ancestor node was itself schema.KindAny. It never addresses a real
// arena slot (spec §9 Design Note 1's arena only ever allocates
// non-negative indices), so it can't collide with a compiled node.
//
// Grounded on ajv_state.c's per-handle `state->any`: a node built once at
// ajv_alloc time and reused for the lifetime of the handle rather than
// allocated into the schema tree.
const anyIdx schema.Idx = -2

func isAny(i schema.Idx) bool { return i == anyIdx }

// frame is one level of the container stack (ajv_node_state in
// ajv_state.c). containerIdx is the schema node for the object/array
// itself, or anyIdx if this frame is a schemaless container (an object or
// array value found where the schema only promised "any").
type frame struct {
	containerIdx schema.Idx
	kind         schema.Kind // schema.KindObject or schema.KindArray

	// seenNames tracks, for an object frame, which named children have
	// been visited (required-check at end_object, spec §4.2).
	seenNames map[string]bool

	// seenCount is the number of direct members/elements consumed so far:
	// object size or array length for the range check at container close.
	seenCount int
}

func newFrame(containerIdx schema.Idx, kind schema.Kind) *frame {
	return &frame{containerIdx: containerIdx, kind: kind}
}
