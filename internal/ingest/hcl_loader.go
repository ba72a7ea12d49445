package ingest

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/pgdebus/scenewalk/internal/scene"
	"github.com/zclconf/go-cty/cty"
)

// HCL scene documents are nested object blocks:
//
//	object "A" {
//	  tags = ["Circle"]
//	  object "B" {
//	    active = false
//	  }
//	}
//
// Exactly one top-level object block, the root. Same defaults as the JSON
// form: active is true unless set, tags register themselves.

// LoadHCL parses an HCL scene document and builds the graph. filename is
// only used in diagnostics.
func LoadHCL(data []byte, filename string) (*scene.Graph, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse scene hcl %s: %s", filename, diags.Error())
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("parse scene hcl %s: unexpected body type %T", filename, file.Body)
	}

	var root *hclsyntax.Block
	for _, b := range body.Blocks {
		if b.Type != "object" {
			return nil, fmt.Errorf("%s: unsupported block %q, want object", filename, b.Type)
		}
		if root != nil {
			return nil, errors.New(filename + ": multiple top-level object blocks, want exactly one root")
		}
		root = b
	}
	if root == nil {
		return nil, errors.New(filename + ": no root object block")
	}
	name, err := blockName(root)
	if err != nil {
		return nil, err
	}

	g := scene.NewGraph(name)
	if err := applyBlock(g, g.Root(), root.Body); err != nil {
		return nil, err
	}
	return g, nil
}

func applyBlock(g *scene.Graph, obj *scene.Object, body *hclsyntax.Body) error {
	for attrName, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("node %q: attribute %q: %s", obj.Name(), attrName, diags.Error())
		}
		switch attrName {
		case "active":
			if val.Type() != cty.Bool {
				return fmt.Errorf("node %q: active must be a bool", obj.Name())
			}
			obj.SetActive(val.True())
		case "tags":
			if !val.CanIterateElements() {
				return fmt.Errorf("node %q: tags must be a list of strings", obj.Name())
			}
			for _, tv := range val.AsValueSlice() {
				if tv.Type() != cty.String {
					return fmt.Errorf("node %q: tags must be a list of strings", obj.Name())
				}
				tag := tv.AsString()
				g.RegisterTag(tag)
				if err := g.Tag(obj, tag); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("node %q: unsupported attribute %q", obj.Name(), attrName)
		}
	}
	for _, b := range body.Blocks {
		if b.Type != "object" {
			return fmt.Errorf("node %q: unsupported block %q, want object", obj.Name(), b.Type)
		}
		name, err := blockName(b)
		if err != nil {
			return err
		}
		child := g.NewObject(name)
		if err := obj.AddChild(child); err != nil {
			return err
		}
		if err := applyBlock(g, child, b.Body); err != nil {
			return err
		}
	}
	return nil
}

func blockName(b *hclsyntax.Block) (string, error) {
	if len(b.Labels) != 1 || b.Labels[0] == "" {
		return "", fmt.Errorf("object block needs exactly one non-empty name label")
	}
	return b.Labels[0], nil
}
