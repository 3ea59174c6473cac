package entity

// DisabilityData holds the step-5 disability declaration. The detail fields
// are only meaningful when HasDisability is set.
type DisabilityData struct {
	HasDisability       bool   `json:"hasDisability"`
	DisabilityType      string `json:"disabilityType"`
	CID                 string `json:"cid"`
	NeedsAccommodation  bool   `json:"needsAccommodation"`
	AccommodationDetail string `json:"accommodationDetail"`
}

func (DisabilityData) Key() StepKey { return KeyDisability }
