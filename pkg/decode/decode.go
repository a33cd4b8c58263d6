// Package decode reads JSON, urlencoded, and multipart request bodies into
// a uniform field map so handlers validate every encoding the same way.
package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Flogerbe/HelloCSEFlorian/pkg/validation"
)

var (
	ErrMalformed   = errors.New("malformed request body")
	ErrTooLarge    = errors.New("request body too large")
	ErrUnsupported = errors.New("unsupported content type")
)

// File is an uploaded multipart file held in memory.
type File struct {
	Filename string
	Size     int64
	Data     []byte
}

// Fields maps a field name to its decoded value. Absent fields are missing
// from the map; strings are trimmed and blank strings become null.
type Fields map[string]validation.Value

// Request decodes the body of r, reading at most maxBytes. An empty body
// decodes to no fields.
func Request(w http.ResponseWriter, r *http.Request, maxBytes int64) (Fields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		mediaType = mt
	}

	switch mediaType {
	case "application/json":
		return decodeJSON(r.Body)
	case "multipart/form-data":
		return decodeMultipart(r, maxBytes)
	case "application/x-www-form-urlencoded":
		return decodeURLEncoded(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, mediaType)
	}
}

func decodeJSON(body io.Reader) (Fields, error) {
	var raw map[string]any
	dec := json.NewDecoder(body)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Fields{}, nil
		}
		return nil, wrap(err)
	}

	fields := make(Fields, len(raw))
	for name, v := range raw {
		fields[name] = normalize(v)
	}
	return fields, nil
}

func decodeMultipart(r *http.Request, maxBytes int64) (Fields, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, wrap(err)
	}
	defer r.MultipartForm.RemoveAll()

	fields := make(Fields)
	for name, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			fields[name] = normalize(values[0])
		}
	}

	for name, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		f, err := readFile(headers[0])
		if err != nil {
			return nil, wrap(err)
		}
		fields[name] = validation.Of(f)
	}
	return fields, nil
}

func decodeURLEncoded(r *http.Request) (Fields, error) {
	if err := r.ParseForm(); err != nil {
		return nil, wrap(err)
	}

	fields := make(Fields, len(r.PostForm))
	for name, values := range r.PostForm {
		if len(values) > 0 {
			fields[name] = normalize(values[0])
		}
	}
	return fields, nil
}

func readFile(fh *multipart.FileHeader) (*File, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	return &File{
		Filename: fh.Filename,
		Size:     int64(len(data)),
		Data:     data,
	}, nil
}

func normalize(v any) validation.Value {
	s, ok := v.(string)
	if !ok {
		return validation.Of(v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return validation.Null()
	}
	return validation.Of(s)
}

func wrap(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || errors.Is(err, multipart.ErrMessageTooLarge) {
		return ErrTooLarge
	}
	return fmt.Errorf("%w: %v", ErrMalformed, err)
}

// Status maps a decode error to its HTTP status.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupported):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}
