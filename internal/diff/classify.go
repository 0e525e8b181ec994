package diff

// Classification labels the outcome of comparing one pair of values.
// The categories are mutually exclusive and evaluated in a fixed order.
type Classification int

const (
	NilMismatch        Classification = iota //exactly one side absent
	BothNil                                  //both sides absent, terminal
	ValueEqual                               //scalars, equality semantics
	ValueDifferent
	ReferenceEqual //non-scalars, identity semantics
	ReferenceDifferent
	LengthMismatch //enumerables of unequal length
	ReadFailure    //accessor failed on one or both sides
)

var classificationNames = map[Classification]string{
	NilMismatch:        "nil-mismatch",
	BothNil:            "both-nil",
	ValueEqual:         "value-equal",
	ValueDifferent:     "value-different",
	ReferenceEqual:     "reference-equal",
	ReferenceDifferent: "reference-different",
	LengthMismatch:     "length-mismatch",
	ReadFailure:        "read-failure",
}

func (c Classification) String() string {
	if name, known := classificationNames[c]; known {
		return name
	}
	return "unknown"
}

// Side identifies which graph an observation belongs to.
type Side int

const (
	Left Side = iota
	Right
	BothSides
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "both"
}

// Report gates which classifications are surfaced. Every comparison is still
// computed; suppression only drops the finding from output, so e.g. equal
// noise can be hidden while differences stay visible.
type Report struct {
	NilMismatch        bool
	BothNil            bool
	ValueEqual         bool
	ValueDifferent     bool
	ReferenceEqual     bool
	ReferenceDifferent bool
	LengthMismatch     bool
	ReadFailure        bool
}

// DefaultReport surfaces everything except equal-value and equal-reference
// noise.
func DefaultReport() Report {
	return Report{
		NilMismatch:        true,
		BothNil:            false,
		ValueEqual:         false,
		ValueDifferent:     true,
		ReferenceEqual:     false,
		ReferenceDifferent: true,
		LengthMismatch:     true,
		ReadFailure:        true,
	}
}

// FullReport surfaces every classification.
func FullReport() Report {
	return Report{
		NilMismatch:        true,
		BothNil:            true,
		ValueEqual:         true,
		ValueDifferent:     true,
		ReferenceEqual:     true,
		ReferenceDifferent: true,
		LengthMismatch:     true,
		ReadFailure:        true,
	}
}

func (r Report) includes(c Classification) bool {
	switch c {
	case NilMismatch:
		return r.NilMismatch
	case BothNil:
		return r.BothNil
	case ValueEqual:
		return r.ValueEqual
	case ValueDifferent:
		return r.ValueDifferent
	case ReferenceEqual:
		return r.ReferenceEqual
	case ReferenceDifferent:
		return r.ReferenceDifferent
	case LengthMismatch:
		return r.LengthMismatch
	case ReadFailure:
		return r.ReadFailure
	}
	return false
}

// Finding is one reportable comparison outcome.
type Finding struct {
	Path           string
	Classification Classification
	Left           interface{}
	Right          interface{}
	FailedSide     Side   //meaningful for ReadFailure only
	Detail         string //human-readable amplification
}
