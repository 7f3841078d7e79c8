package event

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-json-experiment/json/jsontext"
)

// FromJSON decodes r one token at a time and pushes the corresponding
// events to sink, stopping at the first error sink returns (the push-parser
// adapter spec §2.1/§9 Design Note names as the streaming event source,
// grounded on jsontext.Decoder.ReadToken's token-at-a-time shape rather
// than a whole-document unmarshal). It returns the number of bytes
// consumed from r, for Validator.BytesConsumed (spec §5).
//
// jsontext reports an object member's key and its value as two separate
// '"'-kind tokens with nothing distinguishing them but position, so this
// adapter tracks a small stack with one state per open container ('[' for
// an array, 'k' / 'v' for an object awaiting its next key / a member value)
// to turn the first, third, fifth, ... value-level token inside each object
// into a MapKey event rather than a String event.
func FromJSON(r io.Reader, sink Sink) (int64, error) {
	dec := jsontext.NewDecoder(r)
	var awaitKey []byte // one entry per open '{' or '[', top is awaitKey[len-1]
	// opened pushes a new container; as a member value it completes the
	// enclosing object's member, whose next token is then a key.
	opened := func(state byte) {
		if top := len(awaitKey) - 1; top >= 0 && awaitKey[top] == 'v' {
			awaitKey[top] = 'k'
		}
		awaitKey = append(awaitKey, state)
	}

	for {
		tok, err := dec.ReadToken()
		if err != nil {
			if err == io.EOF {
				return dec.InputOffset(), nil
			}
			return dec.InputOffset(), err
		}

		switch tok.Kind() {
		case '{':
			if err := sink(Event{Kind: StartObject}); err != nil {
				return dec.InputOffset(), err
			}
			opened('k')
			continue
		case '}':
			awaitKey = awaitKey[:len(awaitKey)-1]
			if err := sink(Event{Kind: EndObject}); err != nil {
				return dec.InputOffset(), err
			}
			continue
		case '[':
			if err := sink(Event{Kind: StartArray}); err != nil {
				return dec.InputOffset(), err
			}
			opened('[')
			continue
		case ']':
			awaitKey = awaitKey[:len(awaitKey)-1]
			if err := sink(Event{Kind: EndArray}); err != nil {
				return dec.InputOffset(), err
			}
			continue
		}

		top := len(awaitKey) - 1
		if top >= 0 && awaitKey[top] == 'k' {
			if tok.Kind() != '"' {
				return dec.InputOffset(), fmt.Errorf("event: non-string object key at offset %d", dec.InputOffset())
			}
			awaitKey[top] = 'v'
			if err := sink(Event{Kind: MapKey, Str: tok.String()}); err != nil {
				return dec.InputOffset(), err
			}
			continue
		}
		if top >= 0 && awaitKey[top] == 'v' {
			awaitKey[top] = 'k'
		}

		ev, err := scalarEvent(tok)
		if err != nil {
			return dec.InputOffset(), err
		}
		if err := sink(ev); err != nil {
			return dec.InputOffset(), err
		}
	}
}

func scalarEvent(tok jsontext.Token) (Event, error) {
	switch tok.Kind() {
	case '"':
		return Event{Kind: String, Str: tok.String()}, nil
	case '0':
		if i, ok := tok.Int(); ok {
			return Event{Kind: Integer, Int: i}, nil
		}
		return Event{Kind: Double, Flt: tok.Float()}, nil
	case 't', 'f':
		return Event{Kind: Boolean, Bool: tok.Bool()}, nil
	case 'n':
		return Event{Kind: Null}, nil
	default:
		return Event{}, fmt.Errorf("event: unexpected token kind %q", tok.Kind())
	}
}

// FromValue walks an in-memory Go value (as produced by encoding/json or
// goccy/go-json unmarshaling into `any`: map[string]any, []any, string,
// float64, int64, bool, nil) and pushes the same event vocabulary FromJSON
// does. Object keys are visited in sorted order for determinism.
func FromValue(v any, sink Sink) error {
	return walkValue(v, sink)
}

// Replay is FromValue under a name that reflects its other use: feeding a
// compiled default-value fragment through the cursor as if it had arrived
// on the wire (spec §4.2 end_object step 3, "the default's own sub-tree of
// events, exactly as if they had been read from the document").
func Replay(v any, sink Sink) error {
	return walkValue(v, sink)
}

func walkValue(v any, sink Sink) error {
	switch x := v.(type) {
	case nil:
		return sink(Event{Kind: Null})
	case bool:
		return sink(Event{Kind: Boolean, Bool: x})
	case string:
		return sink(Event{Kind: String, Str: x})
	case int:
		return sink(Event{Kind: Integer, Int: int64(x)})
	case int64:
		return sink(Event{Kind: Integer, Int: x})
	case float64:
		if x == float64(int64(x)) {
			return sink(Event{Kind: Integer, Int: int64(x)})
		}
		return sink(Event{Kind: Double, Flt: x})
	case map[string]any:
		if err := sink(Event{Kind: StartObject}); err != nil {
			return err
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := sink(Event{Kind: MapKey, Str: k}); err != nil {
				return err
			}
			if err := walkValue(x[k], sink); err != nil {
				return err
			}
		}
		return sink(Event{Kind: EndObject})
	case []any:
		if err := sink(Event{Kind: StartArray}); err != nil {
			return err
		}
		for _, elem := range x {
			if err := walkValue(elem, sink); err != nil {
				return err
			}
		}
		return sink(Event{Kind: EndArray})
	default:
		return fmt.Errorf("event: cannot replay value of type %T", v)
	}
}
