package admissao

import "fmt"

// Kind classifies a failed remote call. The category, not just the message,
// is what callers branch on: retryable kinds get a "tentar novamente"
// affordance, the rest keep the user on the current step.
type Kind string

const (
	KindInvalidInput Kind = "invalid-input" // 400 / 422
	KindUnauthorized Kind = "unauthorized"  // 401
	KindForbidden    Kind = "forbidden"     // 403
	KindNotFound     Kind = "not-found"     // 404
	KindConflict     Kind = "conflict"      // 409
	KindRateLimited  Kind = "rate-limited"  // 429
	KindServer       Kind = "server-error"  // 500 / 503
	KindNetwork      Kind = "network-error" // no response received
)

// Retryable reports whether a manual retry is worth offering.
func (k Kind) Retryable() bool {
	switch k {
	case KindNetwork, KindServer, KindRateLimited:
		return true
	}
	return false
}

// Fixed localized user-facing messages, one per category. Raw HTTP bodies
// and transport errors never reach the user.
var messages = map[Kind]string{
	KindInvalidInput: "Alguns campos precisam de correção. Verifique os dados informados.",
	KindUnauthorized: "Sua sessão expirou. Faça login novamente.",
	KindForbidden:    "Você não tem permissão para realizar esta operação.",
	KindNotFound:     "Registro não encontrado.",
	KindConflict:     "Estes dados já foram registrados anteriormente.",
	KindRateLimited:  "Muitas tentativas em sequência. Aguarde um instante e tente novamente.",
	KindServer:       "O servidor está indisponível no momento. Tente novamente em instantes.",
	KindNetwork:      "Não foi possível conectar ao servidor. Verifique sua conexão.",
}

// Error is a classified remote failure.
type Error struct {
	Kind        Kind
	Message     string
	FieldErrors []string // server-provided detail, only for invalid-input
}

func (e *Error) Error() string {
	return fmt.Sprintf("admissao: %s: %s", e.Kind, e.Message)
}

// Retryable reports whether the caller should offer a manual retry.
func (e *Error) Retryable() bool { return e.Kind.Retryable() }

func newError(kind Kind, fieldErrors ...string) *Error {
	return &Error{Kind: kind, Message: messages[kind], FieldErrors: fieldErrors}
}

// classify maps an HTTP status to an error kind. Unlisted statuses in the
// 4xx range are treated as invalid input, anything else as a server error.
func classify(status int) Kind {
	switch status {
	case 400, 422:
		return KindInvalidInput
	case 401:
		return KindUnauthorized
	case 403:
		return KindForbidden
	case 404:
		return KindNotFound
	case 409:
		return KindConflict
	case 429:
		return KindRateLimited
	case 500, 503:
		return KindServer
	}
	if status >= 400 && status < 500 {
		return KindInvalidInput
	}
	return KindServer
}
