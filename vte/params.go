package vte

// maxParams bounds how many top-level parameters a single CSI/DCS sequence
// may carry before the parser stops collecting more and marks the sequence
// as ignored (it is dispatched with ignore set). Matches the defensive cap used by real VT
// parsers to avoid unbounded allocation from a hostile or garbled stream.
const maxParams = 32

// maxSubParams bounds the colon-separated sub-parameters within one
// top-level parameter slot (e.g. the "2" and "r:g:b" in "38:2::r:g:b").
const maxSubParams = 8

// Params holds the parameters collected for a CSI or DCS sequence. Each
// top-level parameter may itself carry colon-separated sub-parameters, so a
// param slot is represented as []int64 rather than a bare int64.
type Params struct {
	values [][]int64
}

func newParams() *Params {
	return &Params{values: make([][]int64, 0, 8)}
}

func (p *Params) reset() {
	p.values = p.values[:0]
}

// pushParam appends a new top-level parameter with a single value.
func (p *Params) pushParam(v int64) {
	if len(p.values) >= maxParams {
		return
	}
	p.values = append(p.values, []int64{v})
}

// extendLast appends a sub-parameter to the most recently pushed parameter.
func (p *Params) extendLast(v int64) {
	if len(p.values) == 0 {
		p.pushParam(v)
		return
	}
	last := &p.values[len(p.values)-1]
	if len(*last) >= maxSubParams {
		return
	}
	*last = append(*last, v)
}

// Len reports the number of top-level parameters.
func (p *Params) Len() int {
	return len(p.values)
}

// IsEmpty reports whether no parameters were supplied at all (e.g. bare
// "CSI m").
func (p *Params) IsEmpty() bool {
	return len(p.values) == 0
}

// Get returns the first (main) value of the i-th top-level parameter, or def
// if i is out of range. A literal 0 is returned as 0 (see GetNonZero).
func (p *Params) Get(i int, def int64) int64 {
	if i < 0 || i >= len(p.values) || len(p.values[i]) == 0 {
		return def
	}
	return p.values[i][0]
}

// GetNonZero is like Get but additionally coerces a literal 0 to def, per
// the VT convention that a parameter of 0 means "use the default" for most
// count-like CSI finals (CUU, CUD, ...).
func (p *Params) GetNonZero(i int, def int64) int64 {
	v := p.Get(i, def)
	if v == 0 {
		return def
	}
	return v
}

// All returns the raw parameter list for callers that want to iterate
// directly (e.g. the SGR reducer).
func (p *Params) All() [][]int64 {
	return p.values
}
