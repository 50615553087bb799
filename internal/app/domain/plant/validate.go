package plant

import (
	"fmt"
	"regexp"
	"strings"
)

// UsdaProfileURLPrefix is the only accepted base for plant profile links.
const UsdaProfileURLPrefix = "https://plants.usda.gov/plant-profile"

const (
	nameMinLen = 2
	nameMaxLen = 100
	urlMaxLen  = 200
	ageMin     = 1
	ageMax     = 500
)

var namePattern = regexp.MustCompile(`^[a-zA-Z ]+$`)

// injectionPattern rejects SQL keywords and metacharacters inside the URL.
var injectionPattern = regexp.MustCompile(`(?i)(\b(SELECT|INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|EXEC|EXECUTE|UNION|SCRIPT|JAVASCRIPT|VBSCRIPT)\b)|(--|/\*|\*/|;|'|"|<|>|&|%|@|\+|\||\\|\^|\$|#|!|\?|\*|\(|\)|\[|\]|\{|\})`)

// FieldErrors maps a request field to its collected violation messages.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Empty reports whether no violations were collected.
func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// check returns a violation message or an empty string.
type check func() string

type rule struct {
	field  string
	checks []check
}

// runRules evaluates every check of every rule; validation never stops at the
// first violation.
func runRules(rules []rule) FieldErrors {
	errs := make(FieldErrors)
	for _, r := range rules {
		for _, c := range r.checks {
			if msg := c(); msg != "" {
				errs.add(r.field, msg)
			}
		}
	}
	return errs
}

// Validate collects every violation in the create payload. All fields are
// required.
func (r CreateRequest) Validate() FieldErrors {
	return runRules([]rule{
		{"commonName", requiredName("Common Name", r.CommonName)},
		{"scientificName", requiredName("Scientific Name", r.ScientificName)},
		{"duration", durationRequired(r.Duration)},
		{"age", ageRequired(r.Age)},
		{"url", requiredURL(r.URL)},
	})
}

// Validate collects every violation in the update payload. Fields are only
// checked when provided. Duration is deliberately unchecked: unrecognized
// names fall back to the stored value during the merge.
func (r UpdateRequest) Validate() FieldErrors {
	return runRules([]rule{
		{"commonName", optionalName("Common Name", r.CommonName)},
		{"scientificName", optionalName("Scientific Name", r.ScientificName)},
		{"age", ageRange(r.Age)},
		{"url", optionalURL(r.URL)},
	})
}

func nameChecks(label, value string) []check {
	return []check{
		func() string {
			if len(value) < nameMinLen || len(value) > nameMaxLen {
				return fmt.Sprintf("%s must be between %d and %d characters.", label, nameMinLen, nameMaxLen)
			}
			return ""
		},
		func() string {
			if !namePattern.MatchString(value) {
				return label + " may only contain letters and spaces."
			}
			return ""
		},
	}
}

func requiredName(label, value string) []check {
	if strings.TrimSpace(value) == "" {
		return []check{func() string { return label + " is required." }}
	}
	return nameChecks(label, value)
}

func optionalName(label, value string) []check {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return nameChecks(label, value)
}

func durationRequired(value string) []check {
	return []check{func() string {
		if strings.TrimSpace(value) == "" {
			return "Duration is required."
		}
		if _, ok := ParseDuration(value); !ok {
			return "Duration must be one of Unknown, Annual or Perennial."
		}
		return ""
	}}
}

func ageRequired(age *int) []check {
	return []check{func() string {
		if age == nil {
			return "Age is required."
		}
		if *age < 0 {
			return "Age cannot be negative."
		}
		return ""
	}}
}

func ageRange(age *int) []check {
	if age == nil {
		return nil
	}
	return []check{func() string {
		if *age < ageMin || *age > ageMax {
			return fmt.Sprintf("Age must be between %d and %d.", ageMin, ageMax)
		}
		return ""
	}}
}

func urlChecks(value string) []check {
	return []check{
		func() string {
			// Prefix matching ignores case.
			if !strings.HasPrefix(strings.ToLower(value), UsdaProfileURLPrefix) {
				return "Url must start with " + UsdaProfileURLPrefix + "."
			}
			return ""
		},
		func() string {
			if len(value) > urlMaxLen {
				return fmt.Sprintf("Url must not exceed %d characters.", urlMaxLen)
			}
			return ""
		},
		func() string {
			if injectionPattern.MatchString(value) {
				return "Url contains disallowed characters."
			}
			return ""
		},
	}
}

func requiredURL(value string) []check {
	if strings.TrimSpace(value) == "" {
		return []check{func() string { return "Url is required." }}
	}
	return urlChecks(value)
}

func optionalURL(value string) []check {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return urlChecks(value)
}
