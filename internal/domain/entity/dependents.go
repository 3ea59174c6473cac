package entity

// DependentRecord is a single dependent owned by the dependents step.
// IDs are generated locally on add and never leave the wizard.
type DependentRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CPF          string `json:"cpf"`
	BirthDate    string `json:"birthDate"`
	Relationship string `json:"relationship"` // filho, cônjuge, ...
}

// DependentsData holds the step-2 dependents list.
type DependentsData struct {
	HasDependents bool              `json:"hasDependents"`
	Dependents    []DependentRecord `json:"dependents"`
}

func (DependentsData) Key() StepKey { return KeyDependents }
