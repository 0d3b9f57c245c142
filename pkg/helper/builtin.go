package helper

// Builtins returns the native reference helpers keyed by their registration
// names:
//
//   - ifEquals:     {{#ifEquals a b}}...{{else}}...{{/ifEquals}}
//   - unlessEquals: {{#unlessEquals a b}}...{{else}}...{{/unlessEquals}}
//   - json:         {{json data}} or {{json data indent=2}}
func Builtins() map[string]Helper {
	return map[string]Helper{
		"ifEquals":     IfEquals(),
		"unlessEquals": UnlessEquals(),
		"json":         JSON(),
	}
}

// IfEquals returns a block helper that renders the main block when its two
// parameters are structurally equal, and the inverse block otherwise.
func IfEquals() Helper {
	return Func(2, func(inv *Invocation, block *BlockHandle) (string, error) {
		first, _ := inv.Param(0)
		second, _ := inv.Param(1)
		if first.Equal(second) {
			return block.RenderMain()
		}
		return block.RenderInverse()
	})
}

// UnlessEquals returns a block helper that renders the main block when its
// two parameters differ, and the inverse block otherwise.
func UnlessEquals() Helper {
	return Func(2, func(inv *Invocation, block *BlockHandle) (string, error) {
		first, _ := inv.Param(0)
		second, _ := inv.Param(1)
		if !first.Equal(second) {
			return block.RenderMain()
		}
		return block.RenderInverse()
	})
}

// JSON returns a helper that serializes its parameter to JSON text: compact
// by default, pretty-printed when the indent hash option is present.
//
// The helper is deliberately lenient: no parameter yields the empty string,
// a non-numeric indent falls back to two spaces, and a value that fails to
// serialize degrades to "{}" instead of aborting the render.
func JSON() Helper {
	return Func(0, func(inv *Invocation, block *BlockHandle) (string, error) {
		param, ok := inv.Param(0)
		if !ok {
			return "", nil
		}

		var (
			text string
			err  error
		)
		if indent, pretty := inv.HashValue("indent"); pretty {
			width := int(indent.Int())
			if width < 1 {
				width = 2
			}
			text, err = param.JSONIndent(width)
		} else {
			text, err = param.JSON()
		}
		if err != nil {
			return "{}", nil
		}
		return text, nil
	})
}
