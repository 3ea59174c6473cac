package entity

import "fmt"

// TotalSteps is the number of onboarding steps.
const TotalSteps = 10

// Step identifies one onboarding step by its 1-based position.
type Step int

const (
	StepPersonal Step = iota + 1
	StepDependents
	StepAddress
	StepContract
	StepDisability
	StepTransport
	StepForeigner
	StepApprentice
	StepBank
	StepDocuments
)

// StepKey identifies a step's payload slot in the wizard form data.
type StepKey string

const (
	KeyPersonal   StepKey = "personalData"
	KeyDependents StepKey = "dependents"
	KeyAddress    StepKey = "address"
	KeyContract   StepKey = "contract"
	KeyDisability StepKey = "disability"
	KeyTransport  StepKey = "transport"
	KeyForeigner  StepKey = "foreigner"
	KeyApprentice StepKey = "apprentice"
	KeyBank       StepKey = "bankData"
	KeyDocuments  StepKey = "documents"
)

var stepKeys = [TotalSteps]StepKey{
	KeyPersonal, KeyDependents, KeyAddress, KeyContract, KeyDisability,
	KeyTransport, KeyForeigner, KeyApprentice, KeyBank, KeyDocuments,
}

// Path segments used by the admissão API, one per step.
var stepSlugs = [TotalSteps]string{
	"dados-pessoais", "dependentes", "endereco", "contrato", "deficiencia",
	"vale-transporte", "estrangeiro", "aprendiz", "dados-bancarios", "documentos",
}

// Valid reports whether s is within [1, TotalSteps].
func (s Step) Valid() bool {
	return s >= 1 && s <= TotalSteps
}

// Key returns the payload key for the step. Panics on an invalid step;
// callers are expected to bounds-check with Valid first.
func (s Step) Key() StepKey {
	if !s.Valid() {
		panic(fmt.Sprintf("entity: invalid step %d", int(s)))
	}
	return stepKeys[s-1]
}

// Slug returns the API path segment for the step.
func (s Step) Slug() string {
	if !s.Valid() {
		panic(fmt.Sprintf("entity: invalid step %d", int(s)))
	}
	return stepSlugs[s-1]
}

// StepForKey returns the step owning the given payload key.
func StepForKey(key StepKey) (Step, bool) {
	for i, k := range stepKeys {
		if k == key {
			return Step(i + 1), true
		}
	}
	return 0, false
}

// StepPayload is the sealed union of all per-step form payloads. Each payload
// type reports its own key, which keeps the wizard's form data map and the
// wire codec exhaustive over the ten steps.
type StepPayload interface {
	Key() StepKey
}
