package markov

import "github.com/goccy/go-json"

// Result is the outcome of one generation: either generated text or an error
// from the taxonomy. Exactly one of the two is meaningful, selected by Err.
type Result struct {
	Text string
	Err  *Error
}

// NewResult builds a Result from a generation's return values.
func NewResult(text string, err error) Result {
	if err != nil {
		return Result{Err: AsError(err)}
	}
	return Result{Text: text}
}

// OK reports whether the result holds generated text.
func (r Result) OK() bool {
	return r.Err == nil
}

// String renders the result as a single human-readable line.
func (r Result) String() string {
	if r.Err != nil {
		return "error: " + r.Err.Error()
	}
	return r.Text
}

// MarshalJSON encodes the result as {"Success":"text"} or {"Error":<error>}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(struct {
			Error *Error `json:"Error"`
		}{r.Err})
	}
	return json.Marshal(struct {
		Success string `json:"Success"`
	}{r.Text})
}
