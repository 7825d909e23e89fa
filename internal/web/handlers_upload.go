package web

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
)

const (
	// multipartOverhead allows for form boundaries and headers around the file.
	multipartOverhead = 1 << 20

	// multipartMemory is kept in memory before spilling to temp files.
	multipartMemory = 8 << 20

	// defaultUploadName names raw-body uploads without a ?name= parameter.
	defaultUploadName = "batch.jsonl"
)

// readUpload returns the uploaded file name and contents.
//
// multipart/form-data requests carry the file in the "file" field; any
// other content type is read as the raw file with its name in ?name=.
// Files larger than the configured limit fail with errFileTooLarge.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	limit := s.cfg.Upload.MaxFileSize

	if r.ContentLength > limit+multipartOverhead {
		return "", nil, s.tooLarge()
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := readLimited(r.Body, limit)
		if err != nil {
			return "", nil, s.uploadError(err, err)
		}
		if len(data) == 0 {
			return "", nil, errNoFile
		}
		name := r.URL.Query().Get("name")
		if name == "" {
			name = defaultUploadName
		}
		return name, data, nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return "", nil, s.uploadError(err, errNoFile)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, errNoFile
	}
	defer file.Close()

	if header.Size > limit {
		return "", nil, s.tooLarge()
	}
	data, err := readLimited(file, limit)
	if err != nil {
		return "", nil, s.uploadError(err, err)
	}
	return header.Filename, data, nil
}

var errOverLimit = errors.New("over limit")

// readLimited reads at most limit bytes and fails when more remain.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errOverLimit
	}
	return data, nil
}

func (s *Server) tooLarge() error {
	return fmt.Errorf("%w: limit is %d bytes", errFileTooLarge, s.cfg.Upload.MaxFileSize)
}

// uploadError maps size-limit failures to errFileTooLarge and wraps
// anything else around fallback.
func (s *Server) uploadError(err, fallback error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) || errors.Is(err, errOverLimit) {
		return s.tooLarge()
	}
	if fallback == err {
		return fmt.Errorf("read upload: %w", err)
	}
	return fmt.Errorf("%w: %v", fallback, err)
}

// sendExport writes the batch as a JSONL attachment.
func sendExport(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "application/x-ndjson; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
