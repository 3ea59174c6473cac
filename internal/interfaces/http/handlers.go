package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/torralabs/torra-onboarding/internal/application/service"
	"github.com/torralabs/torra-onboarding/internal/domain/entity"
	"github.com/torralabs/torra-onboarding/internal/infrastructure/external/admissao"
	"github.com/torralabs/torra-onboarding/internal/validate"
)

// CEPLookup is the postal-code prefill boundary.
type CEPLookup interface {
	Lookup(ctx context.Context, cep string) (*entity.AddressData, *admissao.Error)
}

// Handlers contains all HTTP request handlers.
type Handlers struct {
	onboarding *service.OnboardingService
	documents  *service.DocumentService
	exporter   *service.SummaryExporter
	cep        CEPLookup
	exportDir  string
	logger     *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	onboarding *service.OnboardingService,
	documents *service.DocumentService,
	exporter *service.SummaryExporter,
	cep CEPLookup,
	exportDir string,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		onboarding: onboarding,
		documents:  documents,
		exporter:   exporter,
		cep:        cep,
		exportDir:  exportDir,
		logger:     logger,
	}
}

// Response represents a standard JSON response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SubmitResponse reports one submission attempt back to the UI. Exactly one
// of the branches carries information: completion, local field errors or a
// classified remote failure.
type SubmitResponse struct {
	Completed   bool                  `json:"completed"`
	CurrentStep int                   `json:"currentStep"`
	Stale       bool                  `json:"stale,omitempty"`
	FieldErrors []validate.FieldError `json:"fieldErrors,omitempty"`
	ErrorKind   string                `json:"errorKind,omitempty"`
	Retryable   bool                  `json:"retryable,omitempty"`
	Message     string                `json:"message,omitempty"`
	Details     []string              `json:"details,omitempty"`
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"status":    "healthy",
			"service":   "torra-onboarding",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// GetState handles GET /api/onboarding.
func (h *Handlers) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    h.onboarding.Wizard().Snapshot(),
	})
}

// SaveDraft handles PUT /api/onboarding/steps/:step/draft. Drafts are stored
// without validation; completion is untouched.
func (h *Handlers) SaveDraft(c *gin.Context) {
	_, payload, ok := h.bindStepPayload(c)
	if !ok {
		return
	}
	h.onboarding.SaveDraft(payload)
	c.JSON(http.StatusOK, Response{Success: true})
}

// SubmitStep handles POST /api/onboarding/steps/:step.
func (h *Handlers) SubmitStep(c *gin.Context) {
	step, payload, ok := h.bindStepPayload(c)
	if !ok {
		return
	}

	outcome, err := h.onboarding.SubmitStep(c.Request.Context(), step, payload)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionInFlight) {
			c.JSON(http.StatusConflict, Response{Success: false, Error: "submissão já em andamento para esta etapa"})
			return
		}
		h.logger.Error("Submission failed", zap.Int("step", int(step)), zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "etapa inválida"})
		return
	}

	resp := SubmitResponse{
		Completed:   outcome.Completed,
		CurrentStep: int(outcome.CurrentStep),
		Stale:       outcome.Stale,
	}

	switch {
	case outcome.Completed || outcome.Stale:
		c.JSON(http.StatusOK, Response{Success: outcome.Completed, Data: resp})
	case len(outcome.FieldErrors) > 0:
		resp.FieldErrors = outcome.FieldErrors
		c.JSON(http.StatusUnprocessableEntity, Response{Success: false, Data: resp})
	default:
		resp.ErrorKind = string(outcome.Remote.Kind)
		resp.Retryable = outcome.Remote.Retryable()
		resp.Message = outcome.Remote.Message
		resp.Details = outcome.Remote.FieldErrors
		c.JSON(statusForKind(outcome.Remote.Kind), Response{Success: false, Data: resp})
	}
}

// Navigate handles POST /api/onboarding/navigate/:step. The route guard has
// already vetoed unreachable steps; the service check here is the authority
// and covers direct calls too.
func (h *Handlers) Navigate(c *gin.Context) {
	step, ok := h.stepParam(c)
	if !ok {
		return
	}

	current, err := h.onboarding.Navigate(step)
	if err != nil {
		c.JSON(http.StatusForbidden, Response{
			Success: false,
			Error:   "etapa não liberada",
			Data:    gin.H{"furthestReachableStep": int(current)},
		})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"currentStep": int(current)}})
}

// Reset handles POST /api/onboarding/reset.
func (h *Handlers) Reset(c *gin.Context) {
	h.onboarding.Reset()
	c.JSON(http.StatusOK, Response{Success: true})
}

// UploadDocuments handles POST /api/documents/upload. Several files may come
// in one request; each is uploaded independently and partial failure still
// answers 200 with the per-file breakdown.
func (h *Handlers) UploadDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "formulário multipart inválido"})
		return
	}

	stepID, err := strconv.Atoi(c.PostForm("stepId"))
	if err != nil || !entity.Step(stepID).Valid() {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "stepId inválido"})
		return
	}

	files := form.File["arquivo"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "nenhum arquivo enviado"})
		return
	}
	types := form.Value["tipoDocumento"]

	var items []admissao.UploadItem
	var opened []io.Closer
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{Success: false, Error: "não foi possível ler o arquivo " + fh.Filename})
			return
		}
		opened = append(opened, f)

		docType := "documento"
		if i < len(types) {
			docType = types[i]
		}
		items = append(items, admissao.UploadItem{
			FileName:     fh.Filename,
			DocumentType: docType,
			StepID:       stepID,
			Content:      f,
		})
	}

	result, uploadErr := h.documents.Upload(c.Request.Context(), items)
	data := gin.H{
		"uploaded": result.Uploaded,
		"failed":   len(result.Failures),
	}
	if uploadErr != nil {
		c.JSON(http.StatusBadGateway, Response{Success: false, Error: "nenhum documento pôde ser enviado", Data: data})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// LookupCEP handles GET /api/cep/:code.
func (h *Handlers) LookupCEP(c *gin.Context) {
	addr, apiErr := h.cep.Lookup(c.Request.Context(), c.Param("code"))
	if apiErr != nil {
		c.JSON(statusForKind(apiErr.Kind), Response{Success: false, Error: apiErr.Message})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: addr})
}

// ExportSummary handles POST /api/onboarding/export.
func (h *Handlers) ExportSummary(c *gin.Context) {
	path := h.exportDir + "/ficha-admissao-" + time.Now().Format("20060102-150405") + ".xlsx"
	if err := h.exporter.Export(path); err != nil {
		h.logger.Error("Summary export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "não foi possível gerar a ficha"})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"path": path}})
}

// bindStepPayload parses the :step param and decodes the request body through
// the step union. Unknown steps and mismatched bodies answer 400.
func (h *Handlers) bindStepPayload(c *gin.Context) (entity.Step, entity.StepPayload, bool) {
	step, ok := h.stepParam(c)
	if !ok {
		return 0, nil, false
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "corpo da requisição ilegível"})
		return 0, nil, false
	}

	payload, err := entity.DecodePayload(step.Key(), body)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "dados da etapa inválidos"})
		return 0, nil, false
	}
	return step, payload, true
}

func (h *Handlers) stepParam(c *gin.Context) (entity.Step, bool) {
	n, err := strconv.Atoi(c.Param("step"))
	if err != nil || !entity.Step(n).Valid() {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "etapa inválida"})
		return 0, false
	}
	return entity.Step(n), true
}

// statusForKind maps the adapter's error taxonomy back onto HTTP statuses.
func statusForKind(kind admissao.Kind) int {
	switch kind {
	case admissao.KindInvalidInput:
		return http.StatusUnprocessableEntity
	case admissao.KindUnauthorized:
		return http.StatusUnauthorized
	case admissao.KindForbidden:
		return http.StatusForbidden
	case admissao.KindNotFound:
		return http.StatusNotFound
	case admissao.KindConflict:
		return http.StatusConflict
	case admissao.KindRateLimited:
		return http.StatusTooManyRequests
	case admissao.KindNetwork:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
