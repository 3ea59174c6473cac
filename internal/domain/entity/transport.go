package entity

// TransportLineRecord is a single commute line owned by the transport step.
type TransportLineRecord struct {
	ID         string `json:"id"`
	LineName   string `json:"lineName"`
	Company    string `json:"company"`
	FareAmount string `json:"fareAmount"`
	TripsPerDay int   `json:"tripsPerDay"`
}

// TransportData holds the step-6 transport allowance request.
type TransportData struct {
	NeedsTransport bool                  `json:"needsTransport"`
	Lines          []TransportLineRecord `json:"lines"`
}

func (TransportData) Key() StepKey { return KeyTransport }
