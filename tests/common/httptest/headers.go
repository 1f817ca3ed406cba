//go:build unit || e2e

package httptest

import (
	"collabflow/internal/infra/payment"
)

// SignedHeaders returns the headers a gateway sends with a webhook body.
func SignedHeaders(secret string, body []byte) map[string]string {
	return map[string]string{
		"Content-Type":          "application/json",
		payment.SignatureHeader: payment.Sign(secret, body),
	}
}
