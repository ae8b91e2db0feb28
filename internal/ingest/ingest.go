// Package ingest turns user-supplied files into the text or image payload sent
// to the extraction endpoint. Every size check happens before any decoding.
package ingest

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"volunteerhub/internal/config"
	"volunteerhub/internal/domain"
	"volunteerhub/internal/port"
)

// Payload is a decoded file. Exactly one of Text or ImageDataURL is set.
type Payload struct {
	Name         string
	Kind         domain.FileKind
	FileType     string
	Text         string
	ImageDataURL string
}

// IsImage reports whether the payload takes the image path.
func (p *Payload) IsImage() bool {
	return p.ImageDataURL != ""
}

// Options bound the work done per file.
type Options struct {
	MaxBytes     int64
	ImageMaxEdge int
	JPEGQuality  int
}

// OptionsFromConfig derives Options from intake config, applying defaults.
func OptionsFromConfig(cfg *config.IntakeConfig) Options {
	opts := Options{
		MaxBytes:     cfg.MaxFileBytes(),
		ImageMaxEdge: cfg.ImageMaxEdge,
		JPEGQuality:  cfg.JPEGQuality,
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 20 * 1024 * 1024
	}
	if opts.ImageMaxEdge <= 0 {
		opts.ImageMaxEdge = 1600
	}
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = 80
	}
	return opts
}

// Ingestor loads and decodes files from disk or object storage.
type Ingestor struct {
	opts    Options
	objects port.ObjectSource
}

// New creates an Ingestor. objects may be nil when s3:// refs are not needed.
func New(opts Options, objects port.ObjectSource) *Ingestor {
	return &Ingestor{opts: opts, objects: objects}
}

// MaxBytes returns the file size ceiling.
func (i *Ingestor) MaxBytes() int64 {
	return i.opts.MaxBytes
}

// CheckSize rejects sizes above the ceiling.
func (i *Ingestor) CheckSize(size int64) error {
	if size > i.opts.MaxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", domain.ErrFileTooLarge, size, i.opts.MaxBytes)
	}
	return nil
}

// Load reads ref (a local path or s3://bucket/key) and decodes it.
func (i *Ingestor) Load(ctx context.Context, ref string) (*Payload, error) {
	if bucket, key, ok := ParseS3Ref(ref); ok {
		return i.loadObject(ctx, bucket, key)
	}

	info, err := os.Stat(ref)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", ref, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", ref)
	}
	if err := i.CheckSize(info.Size()); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref, err)
	}
	return i.Decode(filepath.Base(ref), data)
}

func (i *Ingestor) loadObject(ctx context.Context, bucket, key string) (*Payload, error) {
	if i.objects == nil {
		return nil, fmt.Errorf("s3 source not configured for s3://%s/%s", bucket, key)
	}
	info, err := i.objects.Stat(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("stat s3://%s/%s: %w", bucket, key, err)
	}
	if err := i.CheckSize(info.Size); err != nil {
		return nil, err
	}
	data, err := i.objects.Download(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("downloading s3://%s/%s: %w", bucket, key, err)
	}
	return i.Decode(filepath.Base(key), data)
}

// Decode classifies data by extension (falling back to content sniffing) and
// converts it to a Payload.
func (i *Ingestor) Decode(name string, data []byte) (*Payload, error) {
	if err := i.CheckSize(int64(len(data))); err != nil {
		return nil, err
	}

	kind, fileType, err := Detect(name, data)
	if err != nil {
		return nil, err
	}

	p := &Payload{Name: name, Kind: kind, FileType: fileType}
	switch kind {
	case domain.FileKindText, domain.FileKindCSV:
		p.Text = strings.TrimSpace(string(data))
	case domain.FileKindHTML:
		p.Text, err = HTMLText(data)
	case domain.FileKindPDF:
		p.Text, err = PDFText(data)
	case domain.FileKindSpreadsheet:
		p.Text, err = SpreadsheetCSV(data)
	case domain.FileKindImage:
		p.ImageDataURL, err = CompressImage(data, i.opts.ImageMaxEdge, i.opts.JPEGQuality)
		p.FileType = "image/jpeg"
	}
	if err != nil {
		return nil, err
	}
	if !p.IsImage() && p.Text == "" {
		return nil, fmt.Errorf("%w: %s contains no readable text", domain.ErrUnprocessable, name)
	}

	zap.L().Debug("ingest.Decode: decoded file",
		zap.String("name", name),
		zap.String("kind", string(kind)),
		zap.Int("bytes", len(data)),
		zap.Int("text_chars", len(p.Text)))
	return p, nil
}

// Detect resolves the FileKind and MIME type of a file.
func Detect(name string, data []byte) (domain.FileKind, string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	sniffed := http.DetectContentType(data)
	if i := strings.IndexByte(sniffed, ';'); i >= 0 {
		sniffed = sniffed[:i]
	}

	if kind, ok := domain.AllowedExtensions[ext]; ok {
		// binary formats must look like what the extension claims
		if kind == domain.FileKindPDF || kind == domain.FileKindImage {
			if sniffedKind, ok := domain.AllowedContentTypes[sniffed]; !ok || sniffedKind != kind {
				return "", "", fmt.Errorf("%w: %s does not look like a %s file", domain.ErrUnsupportedFileType, name, ext)
			}
			return kind, sniffed, nil
		}
		return kind, mimeForKind(kind, ext), nil
	}

	if kind, ok := domain.AllowedContentTypes[sniffed]; ok {
		return kind, sniffed, nil
	}
	switch sniffed {
	case "text/plain":
		return domain.FileKindText, sniffed, nil
	case "text/html":
		return domain.FileKindHTML, sniffed, nil
	}
	return "", "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, name)
}

func mimeForKind(kind domain.FileKind, ext string) string {
	switch kind {
	case domain.FileKindCSV:
		return "text/csv"
	case domain.FileKindHTML:
		return "text/html"
	case domain.FileKindSpreadsheet:
		if ext == "xlsm" {
			return "application/vnd.ms-excel.sheet.macroEnabled.12"
		}
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain"
	}
}

// ParseS3Ref splits s3://bucket/key.
func ParseS3Ref(ref string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(ref, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
