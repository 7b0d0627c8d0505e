package scan

import (
	"bytes"
	"fmt"
	"os"

	serrors "github.com/standardbeagle/smellscan/internal/errors"
)

// sniffLen is how much of a file is inspected for binary content
const sniffLen = 512

// magicNumbers are the leading bytes of common binary formats
var magicNumbers = [][]byte{
	{0x1F, 0x8B},             // gzip
	{0x50, 0x4B, 0x03, 0x04}, // ZIP
	{0x50, 0x4B, 0x05, 0x06}, // empty ZIP
	{0x89, 0x50, 0x4E, 0x47}, // PNG
	{0xFF, 0xD8, 0xFF},       // JPEG
	{0x47, 0x49, 0x46, 0x38}, // GIF
	{0x25, 0x50, 0x44, 0x46}, // PDF
	{0x7F, 0x45, 0x4C, 0x46}, // ELF
	{0x4D, 0x5A},             // PE/MZ
	{0xCA, 0xFE, 0xBA, 0xBE}, // Mach-O fat binary, Java class
	{0x77, 0x4F, 0x46, 0x46}, // WOFF
	{0x77, 0x4F, 0x46, 0x32}, // WOFF2
}

// FileValidator rejects files that should not reach the parser
type FileValidator struct {
	MaxFileSize int64
}

// NewFileValidator returns a validator with the given size limit. A
// non-positive limit disables the size check.
func NewFileValidator(maxFileSize int64) *FileValidator {
	return &FileValidator{MaxFileSize: maxFileSize}
}

// CheckSize stats path and rejects it when it exceeds the size limit.
func (fv *FileValidator) CheckSize(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, serrors.NewFileError("stat", path, err)
	}
	if info.IsDir() {
		return nil, serrors.NewFileError("read", path, fmt.Errorf("is a directory"))
	}
	if fv.MaxFileSize > 0 && info.Size() > fv.MaxFileSize {
		return nil, serrors.NewFileError("validate", path,
			fmt.Errorf("file size %d exceeds limit %d", info.Size(), fv.MaxFileSize)).
			WithType(serrors.ErrorTypeFileTooLarge)
	}
	return info, nil
}

// CheckContent rejects content that looks binary.
func (fv *FileValidator) CheckContent(path string, content []byte) error {
	if IsBinary(content) {
		return serrors.NewFileError("validate", path, fmt.Errorf("binary content")).
			WithType(serrors.ErrorTypeBinaryFile)
	}
	return nil
}

// IsBinary inspects the first 512 bytes of content: a known magic number,
// more than 1% NUL bytes or more than 30% control characters mark it binary.
func IsBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	sample := content[:min(len(content), sniffLen)]

	for _, magic := range magicNumbers {
		if bytes.HasPrefix(sample, magic) {
			return true
		}
	}

	nulls, control := 0, 0
	for _, b := range sample {
		switch {
		case b == 0:
			nulls++
		case b < 0x20 && b != '\t' && b != '\n' && b != '\r':
			control++
		}
	}
	if float64(nulls)/float64(len(sample)) > 0.01 {
		return true
	}
	return float64(nulls+control)/float64(len(sample)) > 0.30
}
