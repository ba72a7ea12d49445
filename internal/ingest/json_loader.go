package ingest

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/pgdebus/scenewalk/internal/scene"
)

// JSON scene documents are nested objects:
//
//	{"name": "A", "active": true, "tags": ["Circle"], "children": [...]}
//
// name is required at every level; active defaults to true; tags found in
// the document are registered with the graph as they appear.

// LoadJSON parses a JSON scene document and builds the graph.
func LoadJSON(data []byte) (*scene.Graph, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse scene json: %w", err)
	}
	return buildFromDoc(doc)
}

// LoadJSONAt is LoadJSON with a JSONPath selector choosing which part of
// a larger document is the scene root. The selector must match exactly
// one node object.
func LoadJSONAt(data []byte, selector string) (*scene.Graph, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse scene json: %w", err)
	}
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath %q: %w", selector, err)
	}
	results := x.Get(doc)
	if len(results) == 0 {
		return nil, fmt.Errorf("jsonpath %q matched nothing", selector)
	}
	if len(results) > 1 {
		return nil, fmt.Errorf("jsonpath %q matched %d nodes, want exactly one", selector, len(results))
	}
	return buildFromDoc(results[0])
}

func buildFromDoc(doc any) (*scene.Graph, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("scene root must be an object, got %T", doc)
	}
	name, err := nodeName(m)
	if err != nil {
		return nil, err
	}
	g := scene.NewGraph(name)
	if err := applyDoc(g, g.Root(), m); err != nil {
		return nil, err
	}
	return g, nil
}

func applyDoc(g *scene.Graph, obj *scene.Object, m map[string]any) error {
	if v, ok := m["active"]; ok {
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("node %q: active must be a bool, got %T", obj.Name(), v)
		}
		obj.SetActive(b)
	}
	if v, ok := m["tags"]; ok {
		list, ok := v.([]any)
		if !ok {
			return fmt.Errorf("node %q: tags must be an array, got %T", obj.Name(), v)
		}
		for _, tv := range list {
			tag, ok := tv.(string)
			if !ok {
				return fmt.Errorf("node %q: tag must be a string, got %T", obj.Name(), tv)
			}
			g.RegisterTag(tag)
			if err := g.Tag(obj, tag); err != nil {
				return err
			}
		}
	}
	if v, ok := m["children"]; ok {
		list, ok := v.([]any)
		if !ok {
			return fmt.Errorf("node %q: children must be an array, got %T", obj.Name(), v)
		}
		for _, cv := range list {
			cm, ok := cv.(map[string]any)
			if !ok {
				return fmt.Errorf("node %q: child must be an object, got %T", obj.Name(), cv)
			}
			name, err := nodeName(cm)
			if err != nil {
				return err
			}
			child := g.NewObject(name)
			if err := obj.AddChild(child); err != nil {
				return err
			}
			if err := applyDoc(g, child, cm); err != nil {
				return err
			}
		}
	}
	return nil
}

func nodeName(m map[string]any) (string, error) {
	v, ok := m["name"]
	if !ok {
		return "", fmt.Errorf("scene node is missing its name")
	}
	name, ok := v.(string)
	if !ok || name == "" {
		return "", fmt.Errorf("scene node name must be a non-empty string, got %v", v)
	}
	return name, nil
}
