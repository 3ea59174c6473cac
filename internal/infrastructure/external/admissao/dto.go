package admissao

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/torralabs/torra-onboarding/internal/domain/entity"
)

// Wire DTOs carry the Portuguese field names the admissão API speaks.
// toWire translates the wizard's internal payloads outward; fromWire
// hydrates server-normalized data back into internal shapes.

type personalDTO struct {
	NomeCompleto  string `json:"nomeCompleto"`
	CPF           string `json:"cpf"`
	RG            string `json:"rg"`
	DataNasc      string `json:"dataNascimento"`
	Sexo          string `json:"sexo"`
	EstadoCivil   string `json:"estadoCivil"`
	Telefone      string `json:"telefone"`
	Email         string `json:"email"`
	NomeMae       string `json:"nomeMae"`
	NomePai       string `json:"nomePai"`
	Nacionalidade string `json:"nacionalidade"`
	Naturalidade  string `json:"naturalidade"`
	PIS           string `json:"pis"`
}

type dependentDTO struct {
	ID         string `json:"id"`
	Nome       string `json:"nome"`
	CPF        string `json:"cpf"`
	DataNasc   string `json:"dataNascimento"`
	Parentesco string `json:"parentesco"`
}

type dependentsDTO struct {
	PossuiDependentes bool           `json:"possuiDependentes"`
	Dependentes       []dependentDTO `json:"dependentes"`
}

type addressDTO struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
}

type contractDTO struct {
	Cargo           string `json:"cargo"`
	Departamento    string `json:"departamento"`
	Salario         string `json:"salario"`
	DataAdmissao    string `json:"dataAdmissao"`
	TipoContrato    string `json:"tipoContrato"`
	JornadaTrabalho string `json:"jornadaTrabalho"`
}

type disabilityDTO struct {
	PossuiDeficiencia  bool   `json:"possuiDeficiencia"`
	TipoDeficiencia    string `json:"tipoDeficiencia"`
	CID                string `json:"cid"`
	NecessitaAdaptacao bool   `json:"necessitaAdaptacao"`
	DescricaoAdaptacao string `json:"descricaoAdaptacao"`
}

type transportLineDTO struct {
	ID            string `json:"id"`
	NomeLinha     string `json:"nomeLinha"`
	Empresa       string `json:"empresa"`
	ValorTarifa   string `json:"valorTarifa"`
	ViagensPorDia int    `json:"viagensPorDia"`
}

type transportDTO struct {
	NecessitaValeTransporte bool               `json:"necessitaValeTransporte"`
	Linhas                  []transportLineDTO `json:"linhas"`
}

type foreignerDTO struct {
	Estrangeiro   bool   `json:"estrangeiro"`
	RNE           string `json:"rne"`
	TipoVisto     string `json:"tipoVisto"`
	ValidadeVisto string `json:"validadeVisto"`
	DataChegada   string `json:"dataChegada"`
}

type apprenticeDTO struct {
	Aprendiz         bool   `json:"aprendiz"`
	Instituicao      string `json:"instituicao"`
	NomeCurso        string `json:"nomeCurso"`
	DataTerminoCurso string `json:"dataTerminoCurso"`
}

type bankDTO struct {
	Correntista bool   `json:"correntista"`
	CodigoBanco string `json:"codigoBanco"`
	Agencia     string `json:"agencia"`
	Conta       string `json:"conta"`
	DigitoConta string `json:"digitoConta"`
	TipoConta   string `json:"tipoConta"`
	ChavePix    string `json:"chavePix"`
}

type documentsDTO struct {
	AceitouTermos bool   `json:"aceitouTermos"`
	Observacoes   string `json:"observacoes"`
}

// toWire translates an internal payload into its wire DTO.
func toWire(p entity.StepPayload) (any, error) {
	switch v := p.(type) {
	case entity.PersonalData:
		return personalDTO{
			NomeCompleto: v.FullName, CPF: v.CPF, RG: v.RG, DataNasc: v.BirthDate,
			Sexo: v.Gender, EstadoCivil: v.MaritalStatus, Telefone: v.Phone,
			Email: v.Email, NomeMae: v.MotherName, NomePai: v.FatherName,
			Nacionalidade: v.Nationality, Naturalidade: v.BirthPlace, PIS: v.PIS,
		}, nil
	case entity.DependentsData:
		out := dependentsDTO{PossuiDependentes: v.HasDependents, Dependentes: []dependentDTO{}}
		for _, d := range v.Dependents {
			out.Dependentes = append(out.Dependentes, dependentDTO{
				ID: d.ID, Nome: d.Name, CPF: d.CPF, DataNasc: d.BirthDate, Parentesco: d.Relationship,
			})
		}
		return out, nil
	case entity.AddressData:
		return addressDTO{
			CEP: v.CEP, Logradouro: v.Street, Numero: v.Number, Complemento: v.Complement,
			Bairro: v.Neighborhood, Cidade: v.City, Estado: v.State,
		}, nil
	case entity.ContractData:
		return contractDTO{
			Cargo: v.Position, Departamento: v.Department, Salario: v.Salary,
			DataAdmissao: v.AdmissionDate, TipoContrato: v.ContractType, JornadaTrabalho: v.WorkSchedule,
		}, nil
	case entity.DisabilityData:
		return disabilityDTO{
			PossuiDeficiencia: v.HasDisability, TipoDeficiencia: v.DisabilityType, CID: v.CID,
			NecessitaAdaptacao: v.NeedsAccommodation, DescricaoAdaptacao: v.AccommodationDetail,
		}, nil
	case entity.TransportData:
		out := transportDTO{NecessitaValeTransporte: v.NeedsTransport, Linhas: []transportLineDTO{}}
		for _, l := range v.Lines {
			out.Linhas = append(out.Linhas, transportLineDTO{
				ID: l.ID, NomeLinha: l.LineName, Empresa: l.Company,
				ValorTarifa: l.FareAmount, ViagensPorDia: l.TripsPerDay,
			})
		}
		return out, nil
	case entity.ForeignerData:
		return foreignerDTO{
			Estrangeiro: v.IsForeigner, RNE: v.RNE, TipoVisto: v.VisaType,
			ValidadeVisto: v.VisaExpiry, DataChegada: v.ArrivalDate,
		}, nil
	case entity.ApprenticeData:
		return apprenticeDTO{
			Aprendiz: v.IsApprentice, Instituicao: v.Institution,
			NomeCurso: v.CourseName, DataTerminoCurso: v.CourseEndDate,
		}, nil
	case entity.BankData:
		return bankDTO{
			Correntista: v.IsBankCustomer, CodigoBanco: v.BankCode, Agencia: v.Agency,
			Conta: v.Account, DigitoConta: v.AccountDigit, TipoConta: v.AccountType, ChavePix: v.PixKey,
		}, nil
	case entity.DocumentsData:
		return documentsDTO{AceitouTermos: v.AcceptedTerms, Observacoes: v.Notes}, nil
	}
	return nil, fmt.Errorf("admissao: no wire mapping for payload %T", p)
}

// fromWire hydrates a server payload back into the internal shape for key.
func fromWire(key entity.StepKey, raw []byte) (entity.StepPayload, error) {
	switch key {
	case entity.KeyPersonal:
		var d personalDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return entity.PersonalData{
			FullName: d.NomeCompleto, CPF: d.CPF, RG: d.RG, BirthDate: d.DataNasc,
			Gender: d.Sexo, MaritalStatus: d.EstadoCivil, Phone: d.Telefone,
			Email: d.Email, MotherName: d.NomeMae, FatherName: d.NomePai,
			Nationality: d.Nacionalidade, BirthPlace: d.Naturalidade, PIS: d.PIS,
		}, nil
	case entity.KeyDependents:
		var d dependentsDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		out := entity.DependentsData{HasDependents: d.PossuiDependentes, Dependents: []entity.DependentRecord{}}
		for _, dep := range d.Dependentes {
			out.Dependents = append(out.Dependents, entity.DependentRecord{
				ID: dep.ID, Name: dep.Nome, CPF: dep.CPF, BirthDate: dep.DataNasc, Relationship: dep.Parentesco,
			})
		}
		return out, nil
	case entity.KeyAddress:
		var d addressDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return entity.AddressData{
			CEP: d.CEP, Street: d.Logradouro, Number: d.Numero, Complement: d.Complemento,
			Neighborhood: d.Bairro, City: d.Cidade, State: d.Estado,
		}, nil
	case entity.KeyContract:
		var d contractDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return entity.ContractData{
			Position: d.Cargo, Department: d.Departamento, Salary: d.Salario,
			AdmissionDate: d.DataAdmissao, ContractType: d.TipoContrato, WorkSchedule: d.JornadaTrabalho,
		}, nil
	case entity.KeyDisability:
		var d disabilityDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return entity.DisabilityData{
			HasDisability: d.PossuiDeficiencia, DisabilityType: d.TipoDeficiencia, CID: d.CID,
			NeedsAccommodation: d.NecessitaAdaptacao, AccommodationDetail: d.DescricaoAdaptacao,
		}, nil
	case entity.KeyTransport:
		var d transportDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		out := entity.TransportData{NeedsTransport: d.NecessitaValeTransporte, Lines: []entity.TransportLineRecord{}}
		for _, l := range d.Linhas {
			out.Lines = append(out.Lines, entity.TransportLineRecord{
				ID: l.ID, LineName: l.NomeLinha, Company: l.Empresa,
				FareAmount: l.ValorTarifa, TripsPerDay: l.ViagensPorDia,
			})
		}
		return out, nil
	case entity.KeyForeigner:
		var d foreignerDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return entity.ForeignerData{
			IsForeigner: d.Estrangeiro, RNE: d.RNE, VisaType: d.TipoVisto,
			VisaExpiry: d.ValidadeVisto, ArrivalDate: d.DataChegada,
		}, nil
	case entity.KeyApprentice:
		var d apprenticeDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return entity.ApprenticeData{
			IsApprentice: d.Aprendiz, Institution: d.Instituicao,
			CourseName: d.NomeCurso, CourseEndDate: d.DataTerminoCurso,
		}, nil
	case entity.KeyBank:
		var d bankDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return entity.BankData{
			IsBankCustomer: d.Correntista, BankCode: d.CodigoBanco, Agency: d.Agencia,
			Account: d.Conta, AccountDigit: d.DigitoConta, AccountType: d.TipoConta, PixKey: d.ChavePix,
		}, nil
	case entity.KeyDocuments:
		var d documentsDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return entity.DocumentsData{AcceptedTerms: d.AceitouTermos, Notes: d.Observacoes}, nil
	}
	return nil, fmt.Errorf("admissao: no wire mapping for key %q", key)
}
