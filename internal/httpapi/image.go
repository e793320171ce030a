package httpapi

import (
	"encoding/base64"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/alexanderramin/kanban/internal/domain"
)

// decodeImage turns a base64 payload or a data URL into an upload. The
// content type comes from the data URL when present; otherwise the image
// store sniffs it.
func decodeImage(s string) (*domain.ImageUpload, error) {
	contentType := ""
	payload := s
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		meta, data, found := strings.Cut(rest, ",")
		if !found {
			return nil, domain.Validationf("image data URL has no payload")
		}
		mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
		if !isBase64 {
			return nil, domain.Validationf("image data URL must be base64 encoded")
		}
		contentType = mediaType
		payload = data
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, domain.Validationf("image is not valid base64: %v", err)
	}
	if len(data) == 0 {
		return nil, domain.Validationf("image is empty")
	}
	return &domain.ImageUpload{Data: data, ContentType: contentType}, nil
}

// imagePatchFromBody reads the tri-state "image" field: absent keeps the
// current image, null removes it and a string replaces it.
func imagePatchFromBody(body []byte) (domain.ImagePatch, error) {
	var fields map[string]any
	if err := sonic.Unmarshal(body, &fields); err != nil {
		return domain.ImagePatch{}, domain.Validationf("invalid request body: %v", err)
	}
	raw, present := fields["image"]
	if !present {
		return domain.ImagePatch{Action: domain.ImageKeep}, nil
	}
	switch v := raw.(type) {
	case nil:
		return domain.ImagePatch{Action: domain.ImageRemove}, nil
	case string:
		upload, err := decodeImage(v)
		if err != nil {
			return domain.ImagePatch{}, err
		}
		return domain.ImagePatch{Action: domain.ImageReplace, Upload: upload}, nil
	default:
		return domain.ImagePatch{}, domain.Validationf("image must be a string or null")
	}
}
