package shared

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/DrOksusu/email-automation/internal/transport/http/api"
)

var (
	ErrEmptyUpload    = errors.New("empty upload")
	ErrUploadTooLarge = errors.New("upload exceeds size limit")
)

// Upload is a request body read either from a multipart "file" part or
// directly from the body.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadUpload reads the uploaded document. A document longer than maxBytes is
// rejected with ErrUploadTooLarge, never shortened.
func ReadUpload(r *http.Request, maxBytes int64) (Upload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			if tooLarge(err) {
				return Upload{}, ErrUploadTooLarge
			}
			return Upload{}, fmt.Errorf("parse multipart: %w", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return Upload{}, fmt.Errorf("read file part: %w", err)
		}
		defer file.Close()
		data, err := readLimited(file, maxBytes)
		if err != nil {
			return Upload{}, err
		}
		partType, _, _ := mime.ParseMediaType(header.Header.Get("Content-Type"))
		return Upload{Name: header.Filename, ContentType: partType, Data: data}, nil
	}

	data, err := readLimited(r.Body, maxBytes)
	if err != nil {
		return Upload{}, err
	}
	return Upload{ContentType: mediaType, Data: data}, nil
}

// readLimited reads one byte past maxBytes so an oversized body is detected
// rather than cut at the limit. maxBytes <= 0 means no limit.
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		if tooLarge(err) {
			return nil, ErrUploadTooLarge
		}
		return nil, err
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrUploadTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}
	return data, nil
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

// FailUpload answers a ReadUpload error: 413 for oversized documents and 400
// otherwise.
func FailUpload(w http.ResponseWriter, err error, message, requestID string) {
	if errors.Is(err, ErrUploadTooLarge) {
		api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "upload exceeds the size limit", requestID)
		return
	}
	api.Fail(w, http.StatusBadRequest, "invalid_upload", message, requestID)
}
