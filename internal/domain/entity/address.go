package entity

// AddressData holds the step-3 residential address fields.
type AddressData struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

func (AddressData) Key() StepKey { return KeyAddress }
