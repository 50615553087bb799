package plant

// CreateRequest is the payload for creating a plant. Every field is required.
type CreateRequest struct {
	CommonName     string `json:"commonName"`
	ScientificName string `json:"scientificName"`
	Duration       string `json:"duration"`
	Age            *int   `json:"age"`
	URL            string `json:"url"`
}

// ToPlant maps a validated create payload to a domain record. Validation has
// already established that Duration names a declared member.
func (r CreateRequest) ToPlant() Plant {
	duration, _ := ParseDuration(r.Duration)
	return Plant{
		CommonName:     r.CommonName,
		ScientificName: r.ScientificName,
		Age:            r.Age,
		Duration:       duration,
		URL:            r.URL,
	}
}

// UpdateRequest is the payload for a partial update. Every field is optional;
// absent fields keep their stored value.
type UpdateRequest struct {
	CommonName     string `json:"commonName"`
	ScientificName string `json:"scientificName"`
	Duration       string `json:"duration"`
	Age            *int   `json:"age"`
	URL            string `json:"url"`
}

// ToPlant maps an update payload to a domain record addressed by id. An empty
// or unrecognized duration name becomes the undefined sentinel so the merge
// keeps the stored value.
func (r UpdateRequest) ToPlant(id string) Plant {
	return Plant{
		ID:             id,
		CommonName:     r.CommonName,
		ScientificName: r.ScientificName,
		Age:            r.Age,
		Duration:       DurationFromPayload(r.Duration),
		URL:            r.URL,
	}
}
