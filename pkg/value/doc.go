// Package value defines the neutral JSON-like value model exchanged between
// the template engine and helper handlers.
//
// A Value is a closed tagged union over null, booleans, integers, floats,
// strings, arrays and insertion-ordered objects. Values round-trip losslessly
// through the codec and compare structurally: objects by key set regardless
// of insertion order, arrays positionally, numbers by numeric value
// regardless of integer/float representation.
//
// Example usage:
//
//	v, err := value.Encode(map[string]interface{}{"name": "dago", "retries": 3})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, _ := v.JSON()          // {"name":"dago","retries":3}
//	back := value.Decode(v)      // map[string]interface{}
package value
