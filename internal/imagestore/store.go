// Package imagestore keeps task images outside the task rows. Images are
// content addressed: the reference is derived from the bytes, so storing the
// same image twice yields one blob.
package imagestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/alexanderramin/kanban/internal/domain"
)

const refPrefix = "sha256-"

// MaxImageBytes caps a single upload.
const MaxImageBytes = 5 << 20

// Store is the image collaborator: store bytes, get back a reference.
type Store interface {
	Put(ctx context.Context, data []byte, contentType string) (string, error)
	Get(ctx context.Context, ref string) (*Image, error)
	Delete(ctx context.Context, ref string) error
}

// Image is a stored blob with its media type.
type Image struct {
	Ref         string
	ContentType string
	Data        []byte
}

// Ref returns the content reference for data.
func Ref(data []byte) string {
	sum := sha256.Sum256(data)
	return refPrefix + hex.EncodeToString(sum[:])
}

// ValidRef reports whether ref has the shape produced by Ref.
func ValidRef(ref string) bool {
	hexPart, ok := strings.CutPrefix(ref, refPrefix)
	if !ok || len(hexPart) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hexPart)
	return err == nil
}

// prepare validates an upload and settles its content type.
func prepare(data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", domain.Validationf("image is empty")
	}
	if len(data) > MaxImageBytes {
		return "", domain.Validationf("image is %d bytes, limit is %d", len(data), MaxImageBytes)
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.Validationf("content type %q is not an image", contentType)
	}
	return contentType, nil
}

func checkRef(ref string) error {
	if !ValidRef(ref) {
		return domain.Validationf("image reference %q is malformed", ref)
	}
	return nil
}
