package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/torralabs/torra-onboarding/internal/domain/entity"
	"github.com/torralabs/torra-onboarding/internal/domain/wizard"
)

// SummaryExporter renders the wizard state into a "ficha de admissão"
// spreadsheet for the HR back office.
type SummaryExporter struct {
	wizard *wizard.Wizard
	logger *zap.Logger
}

// NewSummaryExporter creates the exporter.
func NewSummaryExporter(w *wizard.Wizard, logger *zap.Logger) *SummaryExporter {
	return &SummaryExporter{wizard: w, logger: logger}
}

const summarySheet = "Ficha de Admissão"

// Export writes the spreadsheet to path.
func (e *SummaryExporter) Export(path string) error {
	snap := e.wizard.Snapshot()

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(summarySheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	row := 1
	setRow := func(label, value string) {
		e.setCell(f, fmt.Sprintf("A%d", row), label)
		e.setCell(f, fmt.Sprintf("B%d", row), value)
		row++
	}
	section := func(title string) {
		row++
		e.setCell(f, fmt.Sprintf("A%d", row), title)
		row++
	}

	setRow("Etapa atual", fmt.Sprintf("%d de %d", snap.CurrentStep, entity.TotalSteps))
	setRow("Etapas concluídas", fmt.Sprintf("%d", len(snap.CompletedSteps)))

	for step := entity.Step(1); step <= entity.TotalSteps; step++ {
		payload, ok := snap.FormData[step.Key()]
		if !ok {
			continue
		}
		section(sectionTitle(step))
		for _, pair := range summaryRows(payload) {
			setRow(pair[0], pair[1])
		}
	}

	if len(snap.Documents) > 0 {
		section("Documentos")
		for _, doc := range snap.Documents {
			setRow(doc.Name, fmt.Sprintf("%s (%s)", doc.Type, doc.Status))
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	e.logger.Info("Admission summary exported", zap.String("path", path))
	return nil
}

func (e *SummaryExporter) setCell(f *excelize.File, cell, value string) {
	if err := f.SetCellValue(summarySheet, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value", zap.String("cell", cell), zap.Error(err))
	}
}

func sectionTitle(step entity.Step) string {
	titles := map[entity.Step]string{
		entity.StepPersonal:   "Dados Pessoais",
		entity.StepDependents: "Dependentes",
		entity.StepAddress:    "Endereço",
		entity.StepContract:   "Contrato",
		entity.StepDisability: "Deficiência",
		entity.StepTransport:  "Vale-Transporte",
		entity.StepForeigner:  "Estrangeiro",
		entity.StepApprentice: "Aprendiz",
		entity.StepBank:       "Dados Bancários",
		entity.StepDocuments:  "Documentos e Termos",
	}
	return titles[step]
}

func boolPT(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// summaryRows flattens one payload into label/value pairs.
func summaryRows(p entity.StepPayload) [][2]string {
	switch v := p.(type) {
	case entity.PersonalData:
		return [][2]string{
			{"Nome completo", v.FullName}, {"CPF", v.CPF}, {"RG", v.RG},
			{"Data de nascimento", v.BirthDate}, {"Telefone", v.Phone},
			{"E-mail", v.Email}, {"Nome da mãe", v.MotherName},
			{"Nacionalidade", v.Nationality}, {"PIS", v.PIS},
		}
	case entity.DependentsData:
		rows := [][2]string{{"Possui dependentes", boolPT(v.HasDependents)}}
		for _, d := range v.Dependents {
			rows = append(rows, [2]string{d.Name, d.Relationship})
		}
		return rows
	case entity.AddressData:
		return [][2]string{
			{"CEP", v.CEP}, {"Logradouro", v.Street}, {"Número", v.Number},
			{"Complemento", v.Complement}, {"Bairro", v.Neighborhood},
			{"Cidade", v.City}, {"Estado", v.State},
		}
	case entity.ContractData:
		return [][2]string{
			{"Cargo", v.Position}, {"Departamento", v.Department},
			{"Salário", v.Salary}, {"Data de admissão", v.AdmissionDate},
			{"Tipo de contrato", v.ContractType}, {"Jornada", v.WorkSchedule},
		}
	case entity.DisabilityData:
		rows := [][2]string{{"Possui deficiência", boolPT(v.HasDisability)}}
		if v.HasDisability {
			rows = append(rows,
				[2]string{"Tipo", v.DisabilityType},
				[2]string{"CID", v.CID},
				[2]string{"Necessita adaptação", boolPT(v.NeedsAccommodation)})
		}
		return rows
	case entity.TransportData:
		rows := [][2]string{{"Necessita vale-transporte", boolPT(v.NeedsTransport)}}
		for _, l := range v.Lines {
			rows = append(rows, [2]string{l.LineName, fmt.Sprintf("%s, R$ %s", l.Company, l.FareAmount)})
		}
		return rows
	case entity.ForeignerData:
		rows := [][2]string{{"Estrangeiro", boolPT(v.IsForeigner)}}
		if v.IsForeigner {
			rows = append(rows,
				[2]string{"RNE", v.RNE},
				[2]string{"Tipo de visto", v.VisaType})
		}
		return rows
	case entity.ApprenticeData:
		rows := [][2]string{{"Aprendiz", boolPT(v.IsApprentice)}}
		if v.IsApprentice {
			rows = append(rows,
				[2]string{"Instituição", v.Institution},
				[2]string{"Curso", v.CourseName})
		}
		return rows
	case entity.BankData:
		rows := [][2]string{{"Correntista", boolPT(v.IsBankCustomer)}}
		if v.IsBankCustomer {
			rows = append(rows,
				[2]string{"Banco", v.BankCode},
				[2]string{"Agência", v.Agency},
				[2]string{"Conta", v.Account + "-" + v.AccountDigit})
		}
		return rows
	case entity.DocumentsData:
		return [][2]string{
			{"Aceitou os termos", boolPT(v.AcceptedTerms)},
			{"Observações", v.Notes},
		}
	}
	return nil
}
