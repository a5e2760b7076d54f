package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/curatorapp/curator-server/internal/http/response"
)

// EnvelopeVersion is stamped on every response as "v".
const EnvelopeVersion = response.EnvelopeVersion

// APIEnvelope wraps successful responses and plain errors.
type APIEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// APIErrorEnvelope wraps structured errors.
type APIErrorEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every huma response body in the envelope.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	switch body := v.(type) {
	case *APIError:
		return APIErrorEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Code:    body.Code,
			Message: body.Message,
			Details: body.Details,
		}, nil
	case error:
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   body.Error(),
		}, nil
	}

	code, err := strconv.Atoi(status)
	if err != nil {
		code = 200
	}
	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: code < 400,
		Data:    v,
	}, nil
}
