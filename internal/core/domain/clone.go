package domain

// Clone returns a deep copy of the notebook. Raw JSON values are shared;
// they are never modified in place.
func (n *Notebook) Clone() *Notebook {
	if n == nil {
		return nil
	}
	out := &Notebook{
		Format:   n.Format,
		Metadata: n.Metadata.Clone(),
		Extra:    n.Extra.Clone(),
	}
	if n.Cells != nil {
		out.Cells = make([]Cell, len(n.Cells))
		for i := range n.Cells {
			out.Cells[i] = n.Cells[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the cell.
func (c *Cell) Clone() Cell {
	out := *c
	out.ExecutionCount = cloneCount(c.ExecutionCount)
	out.Metadata = c.Metadata.Clone()
	out.Extra = c.Extra.Clone()
	if c.Outputs != nil {
		out.Outputs = make([]Output, len(c.Outputs))
		for i, o := range c.Outputs {
			out.Outputs[i] = CloneOutput(o)
		}
	}
	return out
}

// CloneOutput returns a deep copy of an output.
func CloneOutput(o Output) Output {
	switch v := o.(type) {
	case *StreamOutput:
		c := *v
		c.Extra = v.Extra.Clone()
		return &c
	case *ExecuteResult:
		c := *v
		c.ExecutionCount = cloneCount(v.ExecutionCount)
		c.Data = v.Data.Clone()
		c.Metadata = v.Metadata.Clone()
		c.Extra = v.Extra.Clone()
		return &c
	case *DisplayData:
		c := *v
		c.Data = v.Data.Clone()
		c.Metadata = v.Metadata.Clone()
		c.Extra = v.Extra.Clone()
		return &c
	case *ErrorOutput:
		c := *v
		if v.Traceback != nil {
			c.Traceback = append([]string(nil), v.Traceback...)
		}
		c.Extra = v.Extra.Clone()
		return &c
	default:
		return o
	}
}

// Clone returns a copy of the bundle.
func (b MimeBundle) Clone() MimeBundle {
	if b == nil {
		return nil
	}
	out := make(MimeBundle, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

func cloneCount(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
