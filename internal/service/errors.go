package service

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports bad or missing input. User-correctable, mapped to
// 400 by the handlers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError reports a missing credential. Operator-correctable; the
// gateway returns it before attempting any network call.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// UpstreamError wraps any transport, timeout or non-2xx failure from the
// completion API. The message text is kept verbatim so it can be classified
// for a remediation hint.
type UpstreamError struct {
	Message string
	Timeout bool
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// EmptyResponseError means the upstream call succeeded but carried no text
// content. Treated like an UpstreamError by the handlers.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "Groq retornou resposta vazia"
}

// StorageError wraps a persistence failure
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// SolutionFor returns a user-facing remediation hint for a generation
// failure, keyed on the error category. Classification is advisory only and
// never changes retry behavior; an empty string means no hint applies.
func SolutionFor(err error) string {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return "Verifique se a GROQ_API_KEY está configurada corretamente no arquivo .env"
	}

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		return ""
	}

	msg := strings.ToLower(upErr.Message)
	switch {
	case upErr.Timeout || strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return "Tempo limite excedido. Tente novamente com um prompt mais simples."
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "rate_limit"):
		return "Limite de requisições atingido. Aguarde alguns minutos e tente novamente."
	case strings.Contains(msg, "api key") || strings.Contains(msg, "api_key"):
		return "Verifique se a GROQ_API_KEY está configurada corretamente no arquivo .env"
	}
	return ""
}
