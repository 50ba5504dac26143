package unist

// WireBase holds the fields every node shares in the JSON form of a tree.
// The hast and mdast codecs embed it in their wire structs.
type WireBase struct {
	Position *Position `json:"position,omitempty"`
	Data     *Data     `json:"data,omitempty"`
}

// WireBaseOf captures n's position and data for encoding.
func WireBaseOf(n Node) WireBase {
	var wire WireBase
	if pos, ok := n.Position(); ok {
		wire.Position = &pos
	}
	if data := n.Data(); data != nil {
		wire.Data = &data
	}
	return wire
}

// Options converts decoded base fields back into constructor options.
func (w WireBase) Options() []Option {
	var opts []Option
	if w.Position != nil {
		opts = append(opts, WithPosition(*w.Position))
	}
	if w.Data != nil {
		data := *w.Data
		if data == nil {
			data = Data{}
		}
		opts = append(opts, WithData(data))
	}
	return opts
}
