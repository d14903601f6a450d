// Package snapshot records accessibility trees and replays them through the
// resolver's TreeProvider interface.
package snapshot

import (
	"encoding/json"
	"io"
	"maps"

	"go.trai.ch/zerr"
)

// ErrInvalidSnapshot is returned when a recorded tree cannot be decoded.
var ErrInvalidSnapshot = zerr.New("invalid snapshot")

// Node is one element of a recorded tree.
type Node struct {
	Role       string            `json:"role"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Children   []*Node           `json:"children,omitempty"`
}

// ReadNode decodes a JSON tree from r. Every node must carry a role.
func ReadNode(r io.Reader) (*Node, error) {
	var n Node
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, zerr.With(zerr.Wrap(ErrInvalidSnapshot, "decode json"), "cause", err.Error())
	}
	if err := n.validate("/"); err != nil {
		return nil, err
	}
	return &n, nil
}

func (n *Node) validate(at string) error {
	if n == nil {
		return zerr.With(zerr.Wrap(ErrInvalidSnapshot, "null node"), "at", at)
	}
	if n.Role == "" {
		return zerr.With(zerr.Wrap(ErrInvalidSnapshot, "node without role"), "at", at)
	}
	for _, c := range n.Children {
		if err := c.validate(at + n.Role + "/"); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Role: n.Role, Attributes: maps.Clone(n.Attributes)}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, k := range n.Children {
			c.Children[i] = k.Clone()
		}
	}
	return c
}
