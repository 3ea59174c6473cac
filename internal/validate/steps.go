package validate

import (
	"time"

	"github.com/torralabs/torra-onboarding/internal/domain/entity"
)

func personal(p entity.PersonalData, opts Options) Result {
	var r Result
	r.requireString("fullName", p.FullName)
	r.requireString("motherName", p.MotherName)
	r.requireString("nationality", p.Nationality)

	switch {
	case p.CPF == "":
		r.add("cpf", msgRequired)
	case !cpfRe.MatchString(p.CPF):
		r.add("cpf", msgInvalidCPF)
	case !CPF(p.CPF):
		r.add("cpf", msgInvalidCPF)
	}

	if p.Phone == "" {
		r.add("phone", msgRequired)
	} else if !phoneRe.MatchString(p.Phone) {
		r.add("phone", msgInvalidPhone)
	}

	if p.Email == "" {
		r.add("email", msgRequired)
	} else if !emailRe.MatchString(p.Email) {
		r.add("email", msgInvalidEmail)
	}

	if birth, ok := pastDate(&r, "birthDate", p.BirthDate, opts.Now); ok {
		if yearsBetween(birth, opts.Now) < opts.MinHireAge {
			r.add("birthDate", msgBelowMinAge)
		}
	}
	return r
}

func dependents(p entity.DependentsData) Result {
	var r Result
	if !p.HasDependents {
		return r
	}
	if len(p.Dependents) == 0 {
		r.add("dependents", msgRequired)
		return r
	}
	for _, dep := range p.Dependents {
		if dep.Name == "" {
			r.add("dependents."+dep.ID+".name", msgRequired)
		}
		if dep.Relationship == "" {
			r.add("dependents."+dep.ID+".relationship", msgRequired)
		}
		if dep.BirthDate != "" {
			if _, err := time.Parse(dateLayout, dep.BirthDate); err != nil {
				r.add("dependents."+dep.ID+".birthDate", msgInvalidDate)
			}
		}
		if dep.CPF != "" && !CPF(dep.CPF) {
			r.add("dependents."+dep.ID+".cpf", msgInvalidCPF)
		}
	}
	return r
}

func address(p entity.AddressData) Result {
	var r Result
	if p.CEP == "" {
		r.add("cep", msgRequired)
	} else if !cepRe.MatchString(p.CEP) {
		r.add("cep", msgInvalidCEP)
	}
	r.requireString("street", p.Street)
	r.requireString("number", p.Number)
	r.requireString("neighborhood", p.Neighborhood)
	r.requireString("city", p.City)
	r.requireString("state", p.State)
	return r
}

// Admission dates may legitimately sit in the future (scheduled start), so
// only the format is checked here.
func contract(p entity.ContractData) Result {
	var r Result
	r.requireString("position", p.Position)
	r.requireString("department", p.Department)
	r.requireString("salary", p.Salary)
	r.requireString("contractType", p.ContractType)
	r.requireString("workSchedule", p.WorkSchedule)
	if p.AdmissionDate == "" {
		r.add("admissionDate", msgRequired)
	} else if _, err := time.Parse(dateLayout, p.AdmissionDate); err != nil {
		r.add("admissionDate", msgInvalidDate)
	}
	return r
}

func disability(p entity.DisabilityData) Result {
	var r Result
	if !p.HasDisability {
		return r
	}
	r.requireString("disabilityType", p.DisabilityType)
	r.requireString("cid", p.CID)
	if p.NeedsAccommodation {
		r.requireString("accommodationDetail", p.AccommodationDetail)
	}
	return r
}

func transport(p entity.TransportData) Result {
	var r Result
	if !p.NeedsTransport {
		return r
	}
	if len(p.Lines) == 0 {
		r.add("lines", msgRequired)
		return r
	}
	for _, line := range p.Lines {
		if line.LineName == "" {
			r.add("lines."+line.ID+".lineName", msgRequired)
		}
		if line.Company == "" {
			r.add("lines."+line.ID+".company", msgRequired)
		}
		if line.FareAmount == "" {
			r.add("lines."+line.ID+".fareAmount", msgRequired)
		} else if !fareRe.MatchString(line.FareAmount) {
			r.add("lines."+line.ID+".fareAmount", msgInvalidAmount)
		}
	}
	return r
}

func foreigner(p entity.ForeignerData) Result {
	var r Result
	if !p.IsForeigner {
		return r
	}
	r.requireString("rne", p.RNE)
	r.requireString("visaType", p.VisaType)
	if p.VisaExpiry != "" {
		if _, err := time.Parse(dateLayout, p.VisaExpiry); err != nil {
			r.add("visaExpiry", msgInvalidDate)
		}
	}
	if p.ArrivalDate != "" {
		if _, err := time.Parse(dateLayout, p.ArrivalDate); err != nil {
			r.add("arrivalDate", msgInvalidDate)
		}
	}
	return r
}

func apprentice(p entity.ApprenticeData) Result {
	var r Result
	if !p.IsApprentice {
		return r
	}
	r.requireString("institution", p.Institution)
	r.requireString("courseName", p.CourseName)
	r.requireString("courseEndDate", p.CourseEndDate)
	if p.CourseEndDate != "" {
		if _, err := time.Parse(dateLayout, p.CourseEndDate); err != nil {
			r.add("courseEndDate", msgInvalidDate)
		}
	}
	return r
}

func bank(p entity.BankData) Result {
	var r Result
	if !p.IsBankCustomer {
		return r
	}
	r.requireString("bankCode", p.BankCode)
	r.requireString("agency", p.Agency)
	r.requireString("account", p.Account)
	r.requireString("accountDigit", p.AccountDigit)
	r.requireString("accountType", p.AccountType)
	return r
}

func documents(p entity.DocumentsData) Result {
	var r Result
	if !p.AcceptedTerms {
		r.add("acceptedTerms", msgTermsRequired)
	}
	return r
}
