// Package viacep is the postal-code lookup side channel. It is a pure
// convenience query: its results prefill the address step and its failures
// never block submission.
package viacep

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/torralabs/torra-onboarding/internal/domain/entity"
	"github.com/torralabs/torra-onboarding/internal/format"
	"github.com/torralabs/torra-onboarding/internal/infrastructure/external/admissao"
)

// Client queries the CEP lookup endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a lookup client. A zero timeout falls back to the
// adapter default.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = admissao.DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// cepResponseDTO is the lookup's wire shape.
type cepResponseDTO struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
}

// Lookup resolves an address prefill for the given postal code. The input
// must contain exactly 8 digits (mask allowed); anything else fails fast
// with an invalid-input classification before any request is issued.
func (c *Client) Lookup(ctx context.Context, cep string) (*entity.AddressData, *admissao.Error) {
	digits := format.Unmask(cep)
	if len(digits) != 8 {
		return nil, &admissao.Error{
			Kind:    admissao.KindInvalidInput,
			Message: "CEP deve conter exatamente 8 dígitos.",
		}
	}

	url := fmt.Sprintf("%s/api/cep/%s", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &admissao.Error{Kind: admissao.KindNetwork, Message: "Não foi possível consultar o CEP."}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("CEP lookup failed", zap.String("cep", digits), zap.Error(err))
		return nil, &admissao.Error{Kind: admissao.KindNetwork, Message: "Não foi possível consultar o CEP."}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &admissao.Error{Kind: admissao.KindNotFound, Message: "CEP não encontrado."}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &admissao.Error{Kind: admissao.KindServer, Message: "Não foi possível consultar o CEP."}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &admissao.Error{Kind: admissao.KindNetwork, Message: "Não foi possível consultar o CEP."}
	}

	var dto cepResponseDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, &admissao.Error{Kind: admissao.KindServer, Message: "Não foi possível consultar o CEP."}
	}

	return &entity.AddressData{
		CEP:          format.CEP(dto.CEP),
		Street:       dto.Logradouro,
		Neighborhood: dto.Bairro,
		City:         dto.Localidade,
		State:        dto.UF,
	}, nil
}
