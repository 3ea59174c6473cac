package entity

import "time"

// DocumentStatus is the upload lifecycle of a document. The approved and
// rejected transitions are driven exclusively by server responses; the
// client never infers them.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentUploaded DocumentStatus = "uploaded"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

// IsValid reports whether s is a known document status.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentPending, DocumentUploaded, DocumentApproved, DocumentRejected:
		return true
	}
	return false
}

// DocumentRecord is the metadata for one uploaded file.
type DocumentRecord struct {
	ID         string         `json:"id"`
	StepID     int            `json:"stepId"`
	Name       string         `json:"name"`
	Type       string         `json:"type"` // rg, cpf, comprovante-residencia, ...
	URL        string         `json:"url"`
	Status     DocumentStatus `json:"status"`
	UploadedAt time.Time      `json:"uploadedAt"`
}

// DocumentsData holds the step-10 final confirmation.
type DocumentsData struct {
	AcceptedTerms bool   `json:"acceptedTerms"`
	Notes         string `json:"notes"`
}

func (DocumentsData) Key() StepKey { return KeyDocuments }
