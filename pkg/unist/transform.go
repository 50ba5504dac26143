package unist

import "context"

// Transformer turns one tree into another. Implementations must not modify
// their input; they build a new tree, reusing unchanged subtrees if they like.
type Transformer interface {
	Transform(ctx context.Context, tree Node) (Node, error)
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(ctx context.Context, tree Node) (Node, error)

// Transform calls f.
func (f TransformerFunc) Transform(ctx context.Context, tree Node) (Node, error) {
	return f(ctx, tree)
}
