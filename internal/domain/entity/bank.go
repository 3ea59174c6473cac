package entity

// BankData holds the step-9 salary account fields. The account fields are
// only required when the employee already holds an account at the partner
// bank (IsBankCustomer).
type BankData struct {
	IsBankCustomer bool   `json:"isBankCustomer"`
	BankCode       string `json:"bankCode"`
	Agency         string `json:"agency"`
	Account        string `json:"account"`
	AccountDigit   string `json:"accountDigit"`
	AccountType    string `json:"accountType"` // corrente, poupança
	PixKey         string `json:"pixKey"`
}

func (BankData) Key() StepKey { return KeyBank }
