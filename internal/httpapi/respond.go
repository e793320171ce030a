package httpapi

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"github.com/alexanderramin/kanban/internal/domain"
)

// maxBodyBytes bounds request bodies. Images travel base64 encoded, so the
// limit sits above imagestore.MaxImageBytes * 4/3.
const maxBodyBytes = 8 << 20

type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := sonic.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"encoding response","code":"storage"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// statusFor maps an error kind onto its HTTP status.
func statusFor(err error) int {
	switch domain.Kind(err) {
	case "validation":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	case "conflict":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Storage failures are logged and
// answered with a generic message so driver details stay server side.
func respondError(w http.ResponseWriter, r *http.Request, logger log.FieldLogger, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("request failed")
		msg = "internal error"
	}
	respondJSON(w, status, errorEnvelope{Error: msg, Code: domain.Kind(err)})
}

type successResponse struct {
	Success bool `json:"success"`
}

// readBody reads the bounded request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.Validationf("reading request body: %v", err)
	}
	return body, nil
}

// decodeJSON unmarshals body into dst, reporting malformed input as a
// validation error.
func decodeJSON(body []byte, dst any) error {
	if len(body) == 0 {
		return domain.Validationf("request body is required")
	}
	if err := sonic.Unmarshal(body, dst); err != nil {
		return domain.Validationf("invalid request body: %v", err)
	}
	return nil
}

// decodeRequest reads and decodes the body in one step.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) ([]byte, error) {
	body, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(body, dst); err != nil {
		return nil, err
	}
	return body, nil
}
