package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"

	"booking-concierge/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const SignatureHeader = "X-Webhook-Signature"

type SignatureMiddleware struct {
	secret         []byte
	maxPayloadSize int64
}

func NewSignatureMiddleware(cfg config.WebhookConfig) *SignatureMiddleware {
	return &SignatureMiddleware{
		secret:         []byte(cfg.Secret),
		maxPayloadSize: cfg.MaxPayloadSize,
	}
}

// Verify authenticates the delivery with an HMAC-SHA256 signature over the
// raw body and enforces the payload cap. The body is rewound for downstream
// binding.
func (m *SignatureMiddleware) Verify() gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader(SignatureHeader)
		if signature == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Falta la firma del webhook",
			})
			return
		}

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, m.maxPayloadSize+1))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Error al procesar la solicitud",
			})
			return
		}
		if int64(len(body)) > m.maxPayloadSize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "Payload demasiado grande",
			})
			return
		}

		if !m.validSignature(body, signature) {
			slog.Warn("webhook signature rejected", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Firma del webhook inválida",
			})
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}

func (m *SignatureMiddleware) validSignature(body []byte, signature string) bool {
	if len(body) == 0 || len(m.secret) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, m.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
