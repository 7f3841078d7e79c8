package validate

import (
	"strconv"
	"unicode/utf8"

	"github.com/go-orderly/orderly/event"
	"github.com/go-orderly/orderly/schema"
	"github.com/go-orderly/orderly/verr"
)

func (c *Cursor) handleStartObject() bool {
	idx, ok := c.expectedIdx()
	if !ok {
		return false
	}
	idx, ok = c.resolve(idx, event.StartObject)
	if !ok {
		return false
	}
	n := c.node(idx)
	switch n.Kind {
	case schema.KindObject:
		c.push(idx, schema.KindObject)
	case schema.KindAny:
		c.push(anyIdx, schema.KindObject)
	default:
		c.typeMismatch(idx, "")
		return false
	}
	return true
}

func (c *Cursor) handleStartArray() bool {
	idx, ok := c.expectedIdx()
	if !ok {
		return false
	}
	idx, ok = c.resolve(idx, event.StartArray)
	if !ok {
		return false
	}
	n := c.node(idx)
	switch n.Kind {
	case schema.KindArray:
		c.push(idx, schema.KindArray)
	case schema.KindAny:
		c.push(anyIdx, schema.KindArray)
	default:
		c.typeMismatch(idx, "")
		return false
	}
	return true
}

func (c *Cursor) handleEndObject() bool {
	top := c.top()
	if top == nil || top.kind != schema.KindObject {
		c.setError(&verr.Error{Code: verr.IncompleteContainer, Path: c.pathSnapshot()})
		return false
	}
	if !isAny(top.containerIdx) {
		if !c.checkRequired(top) {
			return false
		}
		node := c.schema.Node(top.containerIdx)
		if node.HasRange && !node.Range.CheckInt(int64(top.seenCount)) {
			c.setError(&verr.Error{Code: verr.OutOfRange, Path: c.pathSnapshot(), Kind: "object", IsLength: true, Value: strconv.Itoa(top.seenCount), Range: node.Range.String()})
			return false
		}
	}
	closed := c.pop()
	c.markSeen(closed.containerIdx)
	if len(c.frames) > 0 {
		c.popPath()
	}
	return true
}

func (c *Cursor) handleEndArray() bool {
	top := c.top()
	if top == nil || top.kind != schema.KindArray {
		c.setError(&verr.Error{Code: verr.IncompleteContainer, Path: c.pathSnapshot()})
		return false
	}
	if !isAny(top.containerIdx) {
		node := c.schema.Node(top.containerIdx)
		if node.HasRange && !node.Range.CheckInt(int64(top.seenCount)) {
			c.setError(&verr.Error{Code: verr.OutOfRange, Path: c.pathSnapshot(), Kind: "array", IsLength: true, Value: strconv.Itoa(top.seenCount), Range: node.Range.String()})
			return false
		}
		if node.TupleTyped {
			if !c.completeTuple(top) {
				return false
			}
		}
	}
	closed := c.pop()
	c.markSeen(closed.containerIdx)
	if len(c.frames) > 0 {
		c.popPath()
	}
	return true
}

// completeTuple synthesizes defaults for any unconsumed trailing tuple
// slots, or reports incomplete_container for the first one without a
// default (spec §4.2; grounded on ajv_state_array_complete's sibling-walk,
// expressed as a slice walk since Arena.Children already gives an ordered
// list rather than a linked chain).
func (c *Cursor) completeTuple(top *frame) bool {
	children := c.schema.Arena().Children(top.containerIdx)
	// top.seenCount advances by exactly one with every element
	// synthesizeDefault successfully replays, so re-reading it each
	// iteration (rather than a separately incremented loop counter) keeps
	// this in lockstep with the frame's real state even if a default
	// value is itself a multi-event container.
	for top.seenCount < len(children) {
		child := c.schema.Node(children[top.seenCount])
		if !child.HasDefault {
			c.setError(&verr.Error{Code: verr.IncompleteContainer, Path: c.pathSnapshot(), Container: "array", Missing: len(children) - top.seenCount})
			return false
		}
		before := top.seenCount
		if !c.synthesizeDefault("", child.Default) {
			return false
		}
		if top.seenCount == before {
			// Defensive: a malformed default (e.g. replaying zero events)
			// must not spin forever.
			c.setError(&verr.Error{Code: verr.IncompleteContainer, Path: c.pathSnapshot(), Container: "array", Missing: len(children) - top.seenCount})
			return false
		}
	}
	return true
}

func (c *Cursor) handleMapKey(name string) bool {
	top := c.top()
	if top == nil || top.kind != schema.KindObject {
		c.setError(&verr.Error{Code: verr.IncompleteContainer, Path: append(c.pathSnapshot(), name), Property: name})
		return false
	}
	if isAny(top.containerIdx) {
		c.pushPath(name)
		c.cur = anyIdx
		return true
	}
	for _, childIdx := range c.schema.Arena().Children(top.containerIdx) {
		if c.schema.Node(childIdx).Name == name {
			c.pushPath(name)
			c.cur = childIdx
			return true
		}
	}
	containerNode := c.schema.Node(top.containerIdx)
	if containerNode.AdditionalProperties == schema.AnyKind {
		c.pushPath(name)
		c.cur = anyIdx
		return true
	}
	c.setError(&verr.Error{Code: verr.UnexpectedKey, Path: append(c.pathSnapshot(), name), Property: name})
	return false
}

func (c *Cursor) handleScalar(ev event.Event) bool {
	hasParent := len(c.frames) > 0
	idx, ok := c.expectedIdx()
	if !ok {
		return false
	}
	idx, ok = c.resolve(idx, ev.Kind)
	if !ok {
		return false
	}
	n := c.node(idx)
	if n.Kind != schema.KindAny {
		want := admittedKind(ev.Kind)
		if !schema.Admits(n.Kind, want) {
			c.typeMismatch(idx, "")
			return false
		}
		if !c.checkLeafConstraints(idx, n, ev) {
			return false
		}
	}
	c.markSeen(idx)
	if hasParent {
		c.popPath()
	}
	return true
}

// checkLeafConstraints runs the range/enum/regex/format checks common to
// every leaf kind (spec §4.2 leaf handler steps 2-4).
func (c *Cursor) checkLeafConstraints(idx schema.Idx, n *schema.Node, ev event.Event) bool {
	if n.HasRange {
		switch n.Kind {
		case schema.KindString:
			length := int64(utf8.RuneCountInString(ev.Str))
			if !n.Range.CheckInt(length) {
				c.setError(&verr.Error{Code: verr.OutOfRange, Path: c.pathSnapshot(), Kind: "string", IsLength: true, Value: strconv.FormatInt(length, 10), Range: n.Range.String()})
				return false
			}
		case schema.KindInteger:
			if !n.Range.CheckInt(ev.Int) {
				c.setError(&verr.Error{Code: verr.OutOfRange, Path: c.pathSnapshot(), Kind: "integer", Value: strconv.FormatInt(ev.Int, 10), Range: n.Range.String()})
				return false
			}
		case schema.KindNumber:
			v := schema.NewRat(numericValue(ev))
			if v == nil || !n.Range.CheckRat(v) {
				c.setError(&verr.Error{Code: verr.OutOfRange, Path: c.pathSnapshot(), Kind: "number", Value: renderEventValue(ev), Range: n.Range.String()})
				return false
			}
		}
	}

	if n.Kind == schema.KindString && n.HasRegex {
		re, err := c.schema.Arena().CompiledRegex(idx)
		if err != nil || re == nil || !re.MatchString(ev.Str) {
			c.setError(&verr.Error{Code: verr.RegexFailed, Path: c.pathSnapshot(), Pattern: n.RegexSrc})
			return false
		}
	}

	if n.Kind == schema.KindString && n.HasFormat {
		if !schema.EvaluateFormat(c.schema.Formats(), n, ev.Str) {
			c.setError(&verr.Error{Code: verr.InvalidFormat, Path: c.pathSnapshot(), Format: n.FormatName})
			return false
		}
	}

	if n.HasEnum && !schema.EvaluateEnum(n, eventValue(ev)) {
		c.setError(&verr.Error{Code: verr.IllegalValue, Path: c.pathSnapshot(), Value: renderEventValue(ev)})
		return false
	}

	return true
}

func numericValue(ev event.Event) any {
	if ev.Kind == event.Integer {
		return ev.Int
	}
	return ev.Flt
}

func renderEventValue(ev event.Event) string {
	switch ev.Kind {
	case event.String:
		return ev.Str
	case event.Integer:
		return strconv.FormatInt(ev.Int, 10)
	case event.Double:
		return strconv.FormatFloat(ev.Flt, 'g', -1, 64)
	case event.Boolean:
		return strconv.FormatBool(ev.Bool)
	case event.Null:
		return "null"
	default:
		return ""
	}
}

func eventValue(ev event.Event) any {
	switch ev.Kind {
	case event.String:
		return ev.Str
	case event.Integer:
		return ev.Int
	case event.Double:
		return ev.Flt
	case event.Boolean:
		return ev.Bool
	case event.Null:
		return nil
	default:
		return nil
	}
}

// synthesizeDefault feeds a required-but-absent member's default value
// through the cursor as if it had arrived on the wire (spec §4.2 end_object
// step 3 / completeTuple), reusing the exact same Feed path real input
// takes — grounded on ajv_state_map_complete calling the map_key callback
// and then orderly_synthesize_callbacks with the very same callback table
// real parsing uses, rather than a bespoke default-application path.
func (c *Cursor) synthesizeDefault(name string, value any) bool {
	if name != "" {
		if err := c.Feed(event.Event{Kind: event.MapKey, Str: name}); err != nil {
			return false
		}
	}
	ok := true
	_ = event.Replay(value, func(ev event.Event) error {
		if err := c.Feed(ev); err != nil {
			ok = false
			return err
		}
		return nil
	})
	return ok
}

// checkRequired synthesizes defaults or reports incomplete_container for
// every named, non-optional child of an object frame that wasn't seen
// (spec §4.2 end_object step 3). Grounded on ajv_state_map_complete,
// collapsed from its two redundant required-list loops (frame-local vs.
// node-level) into one pass over the schema's own children, since this
// module computes "required" structurally rather than registering it at
// runtime.
func (c *Cursor) checkRequired(top *frame) bool {
	for _, childIdx := range c.schema.Arena().Children(top.containerIdx) {
		child := c.schema.Node(childIdx)
		if child.Name == "" || child.Optional {
			continue
		}
		if top.seenNames[child.Name] {
			continue
		}
		if child.HasDefault {
			if !c.synthesizeDefault(child.Name, child.Default) {
				return false
			}
			continue
		}
		c.setError(&verr.Error{Code: verr.IncompleteContainer, Path: c.pathSnapshot(), Container: "object", Property: child.Name})
		return false
	}
	return true
}
