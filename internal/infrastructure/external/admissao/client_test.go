package admissao

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/torralabs/torra-onboarding/internal/domain/entity"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *MemoryTokenStore, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := NewMemoryTokenStore("test-token")
	client := NewClient(Config{BaseURL: srv.URL, EmployeeID: "emp-123"}, tokens, zap.NewNop())
	return client, tokens, srv
}

func TestSubmitStep_Success(t *testing.T) {
	var gotPath, gotAuth string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		// Server echoes normalized data with Portuguese field names.
		w.Write([]byte(`{"success":true,"data":{"nomeCompleto":"JOÃO SILVA","cpf":"529.982.247-25"},"message":"ok"}`))
	})

	result, apiErr := client.SubmitStep(context.Background(), entity.StepPersonal, entity.PersonalData{
		FullName: "João Silva",
		CPF:      "529.982.247-25",
	})

	require.Nil(t, apiErr)
	assert.Equal(t, "/api/admissao/emp-123/step1/dados-pessoais", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)

	require.NotNil(t, result.Normalized)
	personal := result.Normalized.(entity.PersonalData)
	assert.Equal(t, "JOÃO SILVA", personal.FullName)
}

func TestSubmitStep_WirePayloadIsPortuguese(t *testing.T) {
	var body string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		body = string(buf)
		w.Write([]byte(`{"success":true}`))
	})

	_, apiErr := client.SubmitStep(context.Background(), entity.StepAddress, entity.AddressData{
		CEP: "01310-100", Street: "Avenida Paulista", Number: "1000",
		Neighborhood: "Bela Vista", City: "São Paulo", State: "SP",
	})

	require.Nil(t, apiErr)
	assert.Contains(t, body, `"logradouro":"Avenida Paulista"`)
	assert.Contains(t, body, `"bairro":"Bela Vista"`)
	assert.NotContains(t, body, "street")
}

func TestSubmitStep_Classification(t *testing.T) {
	tests := []struct {
		status    int
		kind      Kind
		retryable bool
	}{
		{400, KindInvalidInput, false},
		{422, KindInvalidInput, false},
		{401, KindUnauthorized, false},
		{403, KindForbidden, false},
		{404, KindNotFound, false},
		{409, KindConflict, false},
		{429, KindRateLimited, true},
		{500, KindServer, true},
		{503, KindServer, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"success":false,"message":"raw server detail"}`))
			})

			result, apiErr := client.SubmitStep(context.Background(), entity.StepPersonal, entity.PersonalData{})
			assert.Nil(t, result)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.retryable, apiErr.Retryable())
			assert.Equal(t, messages[tt.kind], apiErr.Message, "user message is fixed per category, never the raw body")
		})
	}
}

func TestSubmitStep_InvalidInputCarriesFieldErrors(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"errors":["CPF já cadastrado"]}`))
	})

	_, apiErr := client.SubmitStep(context.Background(), entity.StepPersonal, entity.PersonalData{})
	require.NotNil(t, apiErr)
	assert.Equal(t, KindInvalidInput, apiErr.Kind)
	assert.Equal(t, []string{"CPF já cadastrado"}, apiErr.FieldErrors)
}

func TestSubmitStep_UnauthorizedClearsToken(t *testing.T) {
	client, tokens, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, apiErr := client.SubmitStep(context.Background(), entity.StepPersonal, entity.PersonalData{})
	require.NotNil(t, apiErr)
	assert.Equal(t, KindUnauthorized, apiErr.Kind)
	assert.Empty(t, tokens.Token())
}

func TestSubmitStep_NetworkError(t *testing.T) {
	client, _, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // nothing listening anymore

	_, apiErr := client.SubmitStep(context.Background(), entity.StepPersonal, entity.PersonalData{})
	require.NotNil(t, apiErr)
	assert.Equal(t, KindNetwork, apiErr.Kind)
	assert.True(t, apiErr.Retryable())
}

func TestSubmitStep_PayloadStepMismatch(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued")
	})

	_, apiErr := client.SubmitStep(context.Background(), entity.StepAddress, entity.PersonalData{})
	require.NotNil(t, apiErr)
	assert.Equal(t, KindInvalidInput, apiErr.Kind)
}

func TestHydrateStep(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`{"success":true,"data":{"cep":"01310-100","cidade":"São Paulo"}}`))
	})

	payload, apiErr := client.HydrateStep(context.Background(), entity.StepAddress)
	require.Nil(t, apiErr)
	assert.Equal(t, "01310-100", payload.(entity.AddressData).CEP)
}

func TestUploadDocument(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "rg", r.FormValue("tipoDocumento"))
		assert.Equal(t, "10", r.FormValue("stepId"))

		_, header, err := r.FormFile("arquivo")
		require.NoError(t, err)
		assert.Equal(t, "rg.pdf", header.Filename)

		w.Write([]byte(`{"success":true,"data":{"id":"srv-1","url":"https://cdn/docs/srv-1","status":"uploaded","enviadoEm":"2026-09-01T10:00:00Z"}}`))
	})

	record, apiErr := client.UploadDocument(context.Background(), UploadItem{
		FileName:     "rg.pdf",
		DocumentType: "rg",
		StepID:       10,
		Content:      strings.NewReader("%PDF-1.4 fake"),
	})

	require.Nil(t, apiErr)
	assert.Equal(t, "srv-1", record.ID)
	assert.Equal(t, "https://cdn/docs/srv-1", record.URL)
	assert.Equal(t, entity.DocumentUploaded, record.Status)
	assert.Equal(t, 10, record.StepID)
}

func TestUploadBatch_PartialFailure(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		if r.FormValue("tipoDocumento") == "cpf" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"success":true}`))
	})

	result := client.UploadBatch(context.Background(), []UploadItem{
		{FileName: "rg.pdf", DocumentType: "rg", StepID: 10, Content: strings.NewReader("a")},
		{FileName: "cpf.pdf", DocumentType: "cpf", StepID: 10, Content: strings.NewReader("b")},
		{FileName: "foto.png", DocumentType: "foto", StepID: 10, Content: strings.NewReader("c")},
	})

	assert.Len(t, result.Uploaded, 2)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "cpf.pdf", result.Failures[0].FileName)
	assert.Equal(t, KindServer, result.Failures[0].Err.Kind)
	assert.False(t, result.AllFailed(), "batch fails only when nothing succeeds")
}

func TestUploadBatch_AllFailed(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	result := client.UploadBatch(context.Background(), []UploadItem{
		{FileName: "rg.pdf", DocumentType: "rg", StepID: 10, Content: strings.NewReader("a")},
		{FileName: "cpf.pdf", DocumentType: "cpf", StepID: 10, Content: strings.NewReader("b")},
	})

	assert.True(t, result.AllFailed())
}

func TestWireRoundTrip_EveryStep(t *testing.T) {
	payloads := []entity.StepPayload{
		entity.PersonalData{FullName: "João", CPF: "529.982.247-25", BirthDate: "1990-03-15"},
		entity.DependentsData{HasDependents: true, Dependents: []entity.DependentRecord{{ID: "d1", Name: "Maria", Relationship: "filha"}}},
		entity.AddressData{CEP: "01310-100", City: "São Paulo"},
		entity.ContractData{Position: "Analista", ContractType: "CLT"},
		entity.DisabilityData{HasDisability: true, DisabilityType: "física", CID: "M54.5"},
		entity.TransportData{NeedsTransport: true, Lines: []entity.TransportLineRecord{{ID: "l1", LineName: "8000-10", FareAmount: "5.00", TripsPerDay: 2}}},
		entity.ForeignerData{IsForeigner: true, RNE: "V123456-7", VisaType: "permanente"},
		entity.ApprenticeData{IsApprentice: true, Institution: "SENAI"},
		entity.BankData{IsBankCustomer: true, BankCode: "237", Agency: "0001", Account: "12345", AccountDigit: "6", AccountType: "corrente"},
		entity.DocumentsData{AcceptedTerms: true, Notes: "ok"},
	}

	for _, p := range payloads {
		t.Run(string(p.Key()), func(t *testing.T) {
			dto, err := toWire(p)
			require.NoError(t, err)

			raw, err := json.Marshal(dto)
			require.NoError(t, err)

			back, err := fromWire(p.Key(), raw)
			require.NoError(t, err)
			assert.Equal(t, p, back)
		})
	}
}
