package export

// Result is the outcome of an export call. Array reports whether the caller
// should treat Outputs as a list; when false there is exactly one output.
type Result struct {
	Outputs []Output `json:"outputs"`
	Array   bool     `json:"array"`
}

// Single wraps one output, or a one-element list when array is set.
func Single(o Output, array bool) Result {
	return Result{Outputs: []Output{o}, Array: array}
}

// Many wraps a list of outputs.
func Many(outs []Output) Result {
	return Result{Outputs: outs, Array: true}
}

// First returns the first output. It panics on an empty result.
func (r Result) First() Output {
	return r.Outputs[0]
}
