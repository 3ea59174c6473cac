// Package validate holds the per-step declarative validation schemas. Rules
// are stateless: the same payload always yields the same result, and nothing
// here performs I/O. Messages are the pt-BR strings surfaced to the user.
package validate

import (
	"fmt"
	"regexp"
	"time"

	"github.com/torralabs/torra-onboarding/internal/domain/entity"
)

// FieldError points a message at one payload field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is either valid or a non-empty list of field errors.
type Result struct {
	Errors []FieldError `json:"errors,omitempty"`
}

// Valid reports whether the payload passed every rule.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

func (r *Result) add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

func (r *Result) requireString(field, value string) {
	if value == "" {
		r.add(field, msgRequired)
	}
}

const (
	msgRequired      = "Campo obrigatório"
	msgInvalidCPF    = "CPF inválido"
	msgInvalidCEP    = "CEP inválido"
	msgInvalidPhone  = "Telefone inválido"
	msgInvalidEmail  = "E-mail inválido"
	msgInvalidDate   = "Data inválida"
	msgFutureDate    = "Data não pode estar no futuro"
	msgBelowMinAge   = "Idade abaixo do mínimo permitido"
	msgInvalidAmount = "Valor inválido"
	msgTermsRequired = "É necessário aceitar os termos"
)

var (
	cpfRe   = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	phoneRe = regexp.MustCompile(`^\(\d{2}\) (?:\d{5}-\d{4}|\d{4}-\d{4})$`)
	cepRe   = regexp.MustCompile(`^\d{5}-\d{3}$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	fareRe  = regexp.MustCompile(`^\d+(?:[.,]\d{1,2})?$`)
)

const dateLayout = "2006-01-02"

// Options carries the tunable thresholds. MinHireAge defaults to 14, the
// Brazilian apprenticeship floor; the exact bound is a configuration choice.
type Options struct {
	MinHireAge int
	Now        time.Time
}

func (o Options) normalized() Options {
	if o.MinHireAge <= 0 {
		o.MinHireAge = 14
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Payload runs the schema for the payload's step. The switch is exhaustive
// over the step union.
func Payload(p entity.StepPayload, opts Options) Result {
	opts = opts.normalized()
	switch v := p.(type) {
	case entity.PersonalData:
		return personal(v, opts)
	case entity.DependentsData:
		return dependents(v)
	case entity.AddressData:
		return address(v)
	case entity.ContractData:
		return contract(v)
	case entity.DisabilityData:
		return disability(v)
	case entity.TransportData:
		return transport(v)
	case entity.ForeignerData:
		return foreigner(v)
	case entity.ApprenticeData:
		return apprentice(v)
	case entity.BankData:
		return bank(v)
	case entity.DocumentsData:
		return documents(v)
	}
	var r Result
	r.add("payload", fmt.Sprintf("tipo de etapa desconhecido: %T", p))
	return r
}

// pastDate validates a required date field that must not be in the future.
// Returns the parsed time when usable.
func pastDate(r *Result, field, value string, now time.Time) (time.Time, bool) {
	if value == "" {
		r.add(field, msgRequired)
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		r.add(field, msgInvalidDate)
		return time.Time{}, false
	}
	if t.After(now) {
		r.add(field, msgFutureDate)
		return time.Time{}, false
	}
	return t, true
}

func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	anniversary := from.AddDate(years, 0, 0)
	if anniversary.After(to) {
		years--
	}
	return years
}
