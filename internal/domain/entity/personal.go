package entity

// PersonalData holds the step-1 personal identification fields.
type PersonalData struct {
	FullName      string `json:"fullName"`
	CPF           string `json:"cpf"`
	RG            string `json:"rg"`
	BirthDate     string `json:"birthDate"` // 2006-01-02
	Gender        string `json:"gender"`
	MaritalStatus string `json:"maritalStatus"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	MotherName    string `json:"motherName"`
	FatherName    string `json:"fatherName"`
	Nationality   string `json:"nationality"`
	BirthPlace    string `json:"birthPlace"`
	PIS           string `json:"pis"`
}

func (PersonalData) Key() StepKey { return KeyPersonal }
