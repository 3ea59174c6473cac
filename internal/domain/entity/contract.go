package entity

// ContractData holds the step-4 contractual fields.
type ContractData struct {
	Position      string `json:"position"`
	Department    string `json:"department"`
	Salary        string `json:"salary"`
	AdmissionDate string `json:"admissionDate"`
	ContractType  string `json:"contractType"` // CLT, estágio, aprendiz
	WorkSchedule  string `json:"workSchedule"`
}

func (ContractData) Key() StepKey { return KeyContract }
