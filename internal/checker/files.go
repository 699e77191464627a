package checker

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/llm"
)

// Accepted file extensions.
var (
	FormExtensions     = []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png"}
	EvidenceExtensions = []string{".pdf", ".jpg", ".jpeg", ".png"}
)

var extTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// DetectMIME guesses the MIME type from the extension, then from the content.
func DetectMIME(name string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

// LoadFile reads path as an attachment. allowed lists the accepted
// extensions; maxBytes caps the size.
func LoadFile(path string, allowed []string, maxBytes int64) (llm.Attachment, error) {
	ext := strings.ToLower(filepath.Ext(path))
	ok := false
	for _, a := range allowed {
		if ext == a {
			ok = true
			break
		}
	}
	if !ok {
		return llm.Attachment{}, fmt.Errorf("%s: %w (accepted: %s)", filepath.Base(path), ErrUnsupportedFile, strings.Join(allowed, ", "))
	}

	info, err := os.Stat(path)
	if err != nil {
		return llm.Attachment{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return llm.Attachment{}, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > maxBytes {
		return llm.Attachment{}, fmt.Errorf("%s is %d bytes, limit is %d: %w", filepath.Base(path), info.Size(), maxBytes, ErrFileTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return llm.Attachment{}, fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)
	return llm.Attachment{Name: name, MIMEType: DetectMIME(name, data), Data: data}, nil
}
