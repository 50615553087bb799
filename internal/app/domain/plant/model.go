// Package plant holds the plant domain model, its request payloads and the
// declarative validation rules over them.
package plant

import "time"

// Plant is the stored record. Age is a pointer so that partial updates can
// distinguish "not provided" from zero.
type Plant struct {
	ID             string
	CommonName     string
	ScientificName string
	Age            *int
	Duration       Duration
	URL            string
	CreatedAt      time.Time
	ModifiedAt     time.Time
}

// Response is the API projection of a plant record. Timestamps are internal
// bookkeeping and are not exposed.
type Response struct {
	ID             string   `json:"id"`
	CommonName     string   `json:"commonName"`
	ScientificName string   `json:"scientificName"`
	Age            int      `json:"age"`
	Duration       Duration `json:"duration"`
	URL            string   `json:"url"`
}

// ToResponse maps the record to its API projection.
func (p Plant) ToResponse() Response {
	age := 0
	if p.Age != nil {
		age = *p.Age
	}
	return Response{
		ID:             p.ID,
		CommonName:     p.CommonName,
		ScientificName: p.ScientificName,
		Age:            age,
		Duration:       p.Duration,
		URL:            p.URL,
	}
}
