package plant

// Duration classifies a plant's growth cycle.
type Duration int

const (
	DurationUnknown Duration = iota
	DurationAnnual
	DurationPerennial
)

// durationUndefined marks a value not present in the payload. It never leaves
// the domain layer: merges skip it and serialization renders it as Unknown.
const durationUndefined Duration = -1

var durationNames = map[Duration]string{
	DurationUnknown:   "Unknown",
	DurationAnnual:    "Annual",
	DurationPerennial: "Perennial",
}

var durationValues = map[string]Duration{
	"Unknown":   DurationUnknown,
	"Annual":    DurationAnnual,
	"Perennial": DurationPerennial,
}

// Defined reports whether d is one of the declared members.
func (d Duration) Defined() bool {
	_, ok := durationNames[d]
	return ok
}

// String returns the member name; out-of-range values print as Unknown.
func (d Duration) String() string {
	if name, ok := durationNames[d]; ok {
		return name
	}
	return "Unknown"
}

// ParseDuration resolves a member name. Matching is case-sensitive.
func ParseDuration(s string) (Duration, bool) {
	d, ok := durationValues[s]
	return d, ok
}

// DurationFromPayload maps a request value to a Duration. Empty or
// unrecognized names become the undefined sentinel, which the merge treats as
// "keep the stored value".
func DurationFromPayload(s string) Duration {
	if d, ok := durationValues[s]; ok {
		return d
	}
	return durationUndefined
}

// DurationFromStorage maps a persisted value to a Duration. Invalid stored
// values degrade to Unknown rather than failing the read.
func DurationFromStorage(s string) Duration {
	if d, ok := durationValues[s]; ok {
		return d
	}
	return DurationUnknown
}

// MarshalJSON renders the duration as its member name.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}
