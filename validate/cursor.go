// Package validate implements the event-driven validation state machine
// (spec §2, §4, §5): a Cursor walks a compiled schema.Schema in lockstep
// with a pushed event.Event stream, the same way ajv_state.c's ajv_state
// walks an ajv_node tree alongside yajl's parser callbacks.
package validate

import (
	"errors"
	"strconv"

	"github.com/go-orderly/orderly/event"
	"github.com/go-orderly/orderly/schema"
	"github.com/go-orderly/orderly/verr"
)

// errStop is returned internally by handlers to abort Feed immediately
// once a validation error has been recorded; it is never surfaced to the
// caller of Cursor.Feed (the recorded verr.Error is, via Err()).
var errStop = errors.New("validate: stop")

// Cursor is the live state of one validation run: the schema position
// expected next, the stack of open containers, and the single live error
// (spec §5). It is not safe for concurrent use; create one per validation
// (orderly.Validator owns exactly one).
type Cursor struct {
	schema *schema.Schema
	frames []*frame
	cur    schema.Idx // the schema node the next event must satisfy
	path   []string   // property names / array indices from the root

	reporter verr.Reporter
	rootSeen bool
}

// anyNode is the shared synthetic node every anyIdx reference resolves to.
var anyNode = schema.Node{Kind: schema.KindAny}

// New creates a Cursor positioned at s's root.
func New(s *schema.Schema) *Cursor {
	return &Cursor{schema: s, cur: s.Root}
}

// Reserve preallocates the container stack to depth n, for callers who
// know their schema nests deeply and want to avoid incremental growth.
func (c *Cursor) Reserve(n int) {
	if cap(c.frames) < n {
		grown := make([]*frame, len(c.frames), n)
		copy(grown, c.frames)
		c.frames = grown
	}
}

// node dereferences idx, honoring the anyIdx sentinel.
func (c *Cursor) node(idx schema.Idx) *schema.Node {
	if isAny(idx) {
		return &anyNode
	}
	return c.schema.Node(idx)
}

// resolve follows union nodes to the first alternative whose top-level
// kind admits evKind, recording a TypeMismatch error if none does (spec
// §4.2 "common preamble"). For non-union nodes it's a no-op returning idx
// unchanged.
func (c *Cursor) resolve(idx schema.Idx, evKind event.Kind) (schema.Idx, bool) {
	n := c.node(idx)
	if n.Kind != schema.KindUnion {
		return idx, true
	}
	want := admittedKind(evKind)
	for _, alt := range n.UnionAlternatives {
		altNode := c.node(alt)
		if altNode.Kind == schema.KindUnion {
			if resolved, ok := c.resolve(alt, evKind); ok {
				return resolved, true
			}
			continue
		}
		if schema.Admits(altNode.Kind, want) {
			return alt, true
		}
	}
	c.typeMismatch(idx, "union")
	return schema.NoIdx, false
}

// admittedKind maps an incoming event kind to the schema.Kind it would
// satisfy at a leaf (StartObject/StartArray map to the container kinds
// directly; leaf events map through schema.Admits).
func admittedKind(k event.Kind) schema.Kind {
	switch k {
	case event.StartObject:
		return schema.KindObject
	case event.StartArray:
		return schema.KindArray
	case event.String:
		return schema.KindString
	case event.Integer:
		return schema.KindInteger
	case event.Double:
		return schema.KindNumber
	case event.Boolean:
		return schema.KindBoolean
	case event.Null:
		return schema.KindNull
	default:
		return schema.KindInvalid
	}
}

// top returns the innermost open frame, or nil at the document root.
func (c *Cursor) top() *frame {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

// push opens a new container frame remembering the container node (mirrors
// ajv_state_push). It leaves c.cur unchanged: an object's next expected
// child is set by the next MapKey, and an array's element schema is
// recomputed by expectedIdx for each element.
func (c *Cursor) push(containerIdx schema.Idx, kind schema.Kind) {
	c.frames = append(c.frames, newFrame(containerIdx, kind))
}

// pop closes the innermost frame and reports the container node that was
// just validated, so the caller can feed it to markSeen against the new
// top frame (mirrors ajv_state_pop followed by ajv_state_mark_seen in
// ajv_state_map_complete/ajv_state_array_complete).
func (c *Cursor) pop() *frame {
	f := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	return f
}

// markSeen records that consumedIdx (a schema node, or anyIdx) has been
// fully validated, against whatever frame is now on top of the stack.
// Grounded on ajv_state_mark_seen, minus its cursor-advance side effect:
// this Cursor recomputes the expected tuple slot from frame.seenCount at
// the start of each array element instead of carrying an advancing
// pointer, so marking only needs to update bookkeeping.
func (c *Cursor) markSeen(consumedIdx schema.Idx) {
	top := c.top()
	if top == nil {
		c.rootSeen = true
		return
	}
	top.seenCount++
	if !isAny(consumedIdx) {
		n := c.schema.Node(consumedIdx)
		// A resolved union branch is bare and unnamed (the grammar puts
		// the member's name on the union node, not its alternatives); walk
		// up through any enclosing union(s) so bookkeeping records the
		// member that was actually declared (spec §4.1 union resolution).
		for n.ParentIdx != schema.NoIdx {
			parent := c.schema.Node(n.ParentIdx)
			if parent.Kind != schema.KindUnion {
				break
			}
			n = parent
		}
		if n.Name != "" {
			if top.seenNames == nil {
				top.seenNames = make(map[string]bool)
			}
			top.seenNames[n.Name] = true
		}
	}
}

// pushPath/popPath track the document path for error locations (spec §7).
func (c *Cursor) pushPath(seg string) { c.path = append(c.path, seg) }
func (c *Cursor) popPath()            { c.path = c.path[:len(c.path)-1] }

func (c *Cursor) pathSnapshot() []string {
	out := make([]string, len(c.path))
	copy(out, c.path)
	return out
}

// Feed advances the cursor by one event. It returns an error only when the
// caller should stop feeding further events immediately (a validation
// error has been recorded, retrievable via Err()); a nil return means
// validation may continue.
func (c *Cursor) Feed(ev event.Event) error {
	if c.reporter.HasError() {
		return errStop
	}
	if c.rootSeen && len(c.frames) == 0 {
		c.setError(&verr.Error{Code: verr.TrailingInput, Path: c.pathSnapshot()})
		return errStop
	}
	var ok bool
	switch ev.Kind {
	case event.StartObject:
		ok = c.handleStartObject()
	case event.EndObject:
		ok = c.handleEndObject()
	case event.StartArray:
		ok = c.handleStartArray()
	case event.EndArray:
		ok = c.handleEndArray()
	case event.MapKey:
		ok = c.handleMapKey(ev.Str)
	default:
		ok = c.handleScalar(ev)
	}
	if !ok {
		return errStop
	}
	return nil
}

// expectedIdx returns the schema node (or anyIdx) that the next Start*/
// scalar event must satisfy, given the current container context. Object
// members are resolved by the most recent MapKey (c.cur); array elements
// are recomputed fresh from the open array frame's element count every
// time, so no advancing cursor needs to be threaded between elements the
// way ajv_state_mark_seen's sibling-walk does.
func (c *Cursor) expectedIdx() (schema.Idx, bool) {
	top := c.top()
	if top == nil {
		return c.schema.Root, true
	}
	if top.kind == schema.KindArray {
		// Push the element's index onto the path even inside a
		// schemaless container, so pushPath/popPath stay balanced
		// regardless of how deep "any" nesting goes.
		if isAny(top.containerIdx) {
			c.pushPath(strconv.Itoa(top.seenCount))
			return anyIdx, true
		}
		return c.arrayElementIdx(top)
	}
	if isAny(top.containerIdx) {
		return anyIdx, true
	}
	return c.cur, true
}

// arrayElementIdx resolves the schema.Idx for the element about to start
// inside array frame top, pushing its index onto the path (spec §7
// locatable errors). Grounded on ajv_state_mark_seen's tuple-overflow
// redirect: past the last tuple slot, additional elements are admitted as
// "any" only when the array's additional_properties is any_kind.
func (c *Cursor) arrayElementIdx(top *frame) (schema.Idx, bool) {
	node := c.schema.Node(top.containerIdx)
	children := c.schema.Arena().Children(top.containerIdx)

	if !node.TupleTyped {
		c.pushPath(strconv.Itoa(top.seenCount))
		if len(children) == 0 {
			return anyIdx, true
		}
		return children[0], true
	}

	if top.seenCount < len(children) {
		c.pushPath(strconv.Itoa(top.seenCount))
		return children[top.seenCount], true
	}
	if node.AdditionalProperties == schema.AnyKind {
		c.pushPath(strconv.Itoa(top.seenCount))
		return anyIdx, true
	}
	c.setError(&verr.Error{
		Code:     verr.UnexpectedKey,
		Path:     append(c.pathSnapshot(), strconv.Itoa(top.seenCount)),
		Property: "[" + strconv.Itoa(top.seenCount) + "]",
	})
	return schema.NoIdx, false
}

// Complete checks the document-level completeness invariant (spec §4.2,
// ajv_parse_complete's "empty root" promotion): after all input has been
// fed, the root value must have actually been seen. Call this once after
// the last Feed to catch an entirely empty document, which Feed alone
// never flags since it only ever sees zero events.
func (c *Cursor) Complete() error {
	if c.reporter.HasError() {
		return c.reporter.Err()
	}
	if !c.Finished() {
		e := &verr.Error{Code: verr.IncompleteContainer, Path: nil, Property: "root"}
		c.setError(e)
		return e
	}
	return nil
}

// Finished reports whether the document seen so far forms a complete,
// valid instance (spec §4.2 "finished" / ajv_state_finished): the root
// value has closed and no error is outstanding.
func (c *Cursor) Finished() bool {
	return c.rootSeen && len(c.frames) == 0 && !c.reporter.HasError()
}

// Err returns the single live validation error, or nil.
func (c *Cursor) Err() *verr.Error { return c.reporter.Err() }

func (c *Cursor) setError(e *verr.Error) { c.reporter.Set(e) }

// typeMismatch records a TypeMismatch error for idx. When the offending
// value sits at a position inside a tuple-typed array, the 1-based element
// index is reported instead of a property name (spec §4.3).
func (c *Cursor) typeMismatch(idx schema.Idx, expected string) {
	n := c.node(idx)
	if expected == "" {
		expected = n.Kind.String()
	}
	e := &verr.Error{
		Code:     verr.TypeMismatch,
		Path:     c.pathSnapshot(),
		Property: n.Name,
		Expected: expected,
	}
	if top := c.top(); top != nil && top.kind == schema.KindArray && !isAny(top.containerIdx) {
		if container := c.schema.Node(top.containerIdx); container.TupleTyped {
			e.Index = top.seenCount + 1
			e.Property = ""
		}
	}
	c.setError(e)
}
