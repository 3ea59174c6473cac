package admissao

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/torralabs/torra-onboarding/internal/domain/entity"
)

// defaultUploadParallelism bounds concurrent uploads in a batch.
const defaultUploadParallelism = 4

// UploadItem is one file to send.
type UploadItem struct {
	FileName     string
	DocumentType string
	StepID       int
	Content      io.Reader
}

// UploadFailure records one file that could not be uploaded.
type UploadFailure struct {
	FileName string
	Err      *Error
}

// BatchResult accounts for a best-effort batch: partial failure is
// tolerated, and the batch only counts as an overall failure when nothing
// succeeded.
type BatchResult struct {
	Uploaded []entity.DocumentRecord
	Failures []UploadFailure
}

// AllFailed reports whether the batch produced no successful upload.
func (r *BatchResult) AllFailed() bool {
	return len(r.Uploaded) == 0 && len(r.Failures) > 0
}

// uploadResponseDTO is the wire shape of a successful upload.
type uploadResponseDTO struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Tipo      string `json:"tipo"`
	URL       string `json:"url"`
	Status    string `json:"status"`
	EnviadoEm string `json:"enviadoEm"`
}

// UploadDocument sends one file as multipart form data.
func (c *Client) UploadDocument(ctx context.Context, item UploadItem) (*entity.DocumentRecord, *Error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("arquivo", item.FileName)
	if err != nil {
		return nil, newError(KindInvalidInput)
	}
	if _, err := io.Copy(part, item.Content); err != nil {
		return nil, newError(KindInvalidInput)
	}
	if err := writer.WriteField("tipoDocumento", item.DocumentType); err != nil {
		return nil, newError(KindInvalidInput)
	}
	if err := writer.WriteField("stepId", strconv.Itoa(item.StepID)); err != nil {
		return nil, newError(KindInvalidInput)
	}
	if err := writer.Close(); err != nil {
		return nil, newError(KindInvalidInput)
	}

	url := fmt.Sprintf("%s/api/documentos/upload/%s", c.baseURL, c.employeeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, newError(KindNetwork)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	env, apiErr := c.do(req, item.StepID)
	if apiErr != nil {
		return nil, apiErr
	}

	record := entity.DocumentRecord{
		ID:         uuid.NewString(),
		StepID:     item.StepID,
		Name:       item.FileName,
		Type:       item.DocumentType,
		Status:     entity.DocumentUploaded,
		UploadedAt: time.Now(),
	}
	if len(env.Data) > 0 {
		var dto uploadResponseDTO
		if err := json.Unmarshal(env.Data, &dto); err == nil {
			if dto.ID != "" {
				record.ID = dto.ID
			}
			if dto.Nome != "" {
				record.Name = dto.Nome
			}
			if dto.Tipo != "" {
				record.Type = dto.Tipo
			}
			record.URL = dto.URL
			// Status transitions are server-driven; take whatever the
			// server says as long as it is a known status.
			if st := entity.DocumentStatus(dto.Status); st.IsValid() {
				record.Status = st
			}
			if ts, err := time.Parse(time.RFC3339, dto.EnviadoEm); err == nil {
				record.UploadedAt = ts
			}
		}
	}
	return &record, nil
}

// UploadBatch uploads the items concurrently, each independently. One
// file's failure never aborts the others.
func (c *Client) UploadBatch(ctx context.Context, items []UploadItem) *BatchResult {
	result := &BatchResult{}
	if len(items) == 0 {
		return result
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.uploadLimit)

	for _, item := range items {
		item := item
		g.Go(func() error {
			record, err := c.UploadDocument(gctx, item)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures = append(result.Failures, UploadFailure{FileName: item.FileName, Err: err})
				return nil
			}
			result.Uploaded = append(result.Uploaded, *record)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures are accounted per file

	c.logger.Info("Document batch finished",
		zap.Int("total", len(items)),
		zap.Int("uploaded", len(result.Uploaded)),
		zap.Int("failed", len(result.Failures)))
	return result
}
