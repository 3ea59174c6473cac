package entity

// ForeignerData holds the step-7 foreign-national registry fields.
type ForeignerData struct {
	IsForeigner bool   `json:"isForeigner"`
	RNE         string `json:"rne"`
	VisaType    string `json:"visaType"`
	VisaExpiry  string `json:"visaExpiry"`
	ArrivalDate string `json:"arrivalDate"`
}

func (ForeignerData) Key() StepKey { return KeyForeigner }
