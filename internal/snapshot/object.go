package snapshot

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Object is a schema-less block of a snapshot. It implements probe.Dynamic
// and probe.Typed.
type Object struct {
	kind     string
	label    string
	attrs    map[string]cty.Value
	blocks   map[string][]*Object
	labelled map[string]bool
}

// newObject evaluates every attribute of body and converts nested blocks
// recursively. Attributes must be constant: snapshots record values, not
// expressions.
func newObject(kind, label string, body hcl.Body) (*Object, hcl.Diagnostics) {
	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported snapshot syntax",
			Detail:   fmt.Sprintf("Block %s %q must be written in native HCL syntax.", kind, label),
		}}
	}

	obj := &Object{
		kind:     kind,
		label:    label,
		attrs:    make(map[string]cty.Value, len(syntaxBody.Attributes)),
		blocks:   make(map[string][]*Object),
		labelled: make(map[string]bool),
	}

	var diags hcl.Diagnostics
	for name, attr := range syntaxBody.Attributes {
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		obj.attrs[name] = val
	}

	for _, block := range syntaxBody.Blocks {
		childLabel := ""
		if len(block.Labels) > 0 {
			childLabel = block.Labels[0]
			obj.labelled[block.Type] = true
		}
		child, childDiags := newObject(block.Type, childLabel, block.Body)
		diags = append(diags, childDiags...)
		if child != nil {
			obj.blocks[block.Type] = append(obj.blocks[block.Type], child)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return obj, diags
}

// Name returns the block label.
func (o *Object) Name() string { return o.label }

// TypeName returns the "type" attribute, falling back to the block type.
func (o *Object) TypeName() string {
	if v, ok := o.attrs["type"]; ok && v.Type() == cty.String && v.IsKnown() && !v.IsNull() {
		return v.AsString()
	}
	return o.kind
}

// Lookup resolves a CamelCase accessor against the attributes and nested
// blocks of the object.
func (o *Object) Lookup(accessor string) (any, bool) {
	key := snakeCase(accessor)

	if v, ok := o.attrs[key]; ok {
		native, err := ctyToNative(v)
		if err != nil {
			return nil, false
		}
		return native, true
	}
	if key == "name" && o.label != "" {
		return o.label, true
	}

	for _, blockType := range []string{key, strings.TrimSuffix(key, "s")} {
		children, ok := o.blocks[blockType]
		if !ok {
			continue
		}
		if len(children) == 1 && !o.labelled[blockType] {
			return children[0], true
		}
		list := make([]any, len(children))
		for i, c := range children {
			list[i] = c
		}
		return list, true
	}
	return nil, false
}

// String implements fmt.Stringer for log output.
func (o *Object) String() string {
	if o.label == "" {
		return o.kind
	}
	return fmt.Sprintf("%s %q", o.kind, o.label)
}

// snakeCase maps an accessor name to its HCL attribute name:
// CompileKotlinTaskName becomes compile_kotlin_task_name and JsIrTarget
// becomes js_ir_target.
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
