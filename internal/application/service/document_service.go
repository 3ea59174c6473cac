package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/torralabs/torra-onboarding/internal/domain/entity"
	"github.com/torralabs/torra-onboarding/internal/domain/wizard"
	"github.com/torralabs/torra-onboarding/internal/infrastructure/external/admissao"
)

// ErrAllUploadsFailed is returned when no file in a batch made it through.
// Partial failure is not an error at the batch level.
var ErrAllUploadsFailed = errors.New("no document in the batch could be uploaded")

// Uploader is the document upload boundary.
type Uploader interface {
	UploadBatch(ctx context.Context, items []admissao.UploadItem) *admissao.BatchResult
}

// DocumentService records upload results into the wizard state.
type DocumentService struct {
	wizard   *wizard.Wizard
	uploader Uploader
	logger   *zap.Logger
}

// NewDocumentService creates the service.
func NewDocumentService(w *wizard.Wizard, uploader Uploader, logger *zap.Logger) *DocumentService {
	return &DocumentService{wizard: w, uploader: uploader, logger: logger}
}

// Upload sends the batch and registers every successful upload. Failures
// are reported per file; the batch errors only when nothing succeeded.
func (s *DocumentService) Upload(ctx context.Context, items []admissao.UploadItem) (*admissao.BatchResult, error) {
	result := s.uploader.UploadBatch(ctx, items)

	for _, record := range result.Uploaded {
		s.wizard.AddDocument(record)
	}
	for _, failure := range result.Failures {
		s.logger.Warn("Document upload failed",
			zap.String("file", failure.FileName),
			zap.String("kind", string(failure.Err.Kind)))
	}

	if result.AllFailed() {
		return result, ErrAllUploadsFailed
	}
	return result, nil
}

// ApplyServerStatus applies a server-reported status change (e.g. a later
// review outcome) to a stored document. The client never decides approval
// or rejection on its own.
func (s *DocumentService) ApplyServerStatus(id string, status entity.DocumentStatus) {
	if !status.IsValid() {
		s.logger.Debug("Ignoring unknown document status", zap.String("document_id", id), zap.String("status", string(status)))
		return
	}
	s.wizard.UpdateDocument(id, wizard.DocumentPatch{Status: &status})
}
