package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var ErrInvalidUpload = errors.New("invalid upload")

var pdfMagic = []byte("%PDF-")

type StorageService interface {
	// ReadUpload validates an uploaded resume and returns its bytes for storage
	// in the resumes collection.
	ReadUpload(file *multipart.FileHeader) ([]byte, error)
}

type storageService struct {
	maxFileSize int64
}

func NewStorageService(maxFileSize int64) StorageService {
	return &storageService{
		maxFileSize: maxFileSize,
	}
}

// ReadUpload implements StorageService.
func (s *storageService) ReadUpload(file *multipart.FileHeader) ([]byte, error) {
	// Validate file extensions
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return nil, fmt.Errorf("%w: invalid file extension: %q", ErrInvalidUpload, ext)
	}

	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: file too large, max size: %d bytes", ErrInvalidUpload, s.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	return s.readPDF(src)
}

func (s *storageService) readPDF(r io.Reader) ([]byte, error) {
	if s.maxFileSize > 0 {
		r = io.LimitReader(r, s.maxFileSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return nil, fmt.Errorf("%w: file too large, max size: %d bytes", ErrInvalidUpload, s.maxFileSize)
	}

	// The header may be preceded by junk bytes within the first kilobyte.
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	if !bytes.Contains(head, pdfMagic) {
		return nil, fmt.Errorf("%w: file is not a pdf", ErrInvalidUpload)
	}

	return data, nil
}
