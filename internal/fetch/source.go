package fetch

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
)

// Loader resolves a document location to its bytes. S3 is optional; s3://
// locations fail when it is nil.
type Loader struct {
	HTTP *Options
	S3   *S3Source
}

// Load reads a local path, an http(s) URL or an s3://bucket/key object into
// a pipeline document. Format detection is left to the pipeline.
func (l *Loader) Load(ctx context.Context, location string) (*pipeline.Document, error) {
	switch scheme := schemeOf(location); scheme {
	case "http", "https":
		result, err := URL(ctx, location, l.HTTP)
		if err != nil {
			return nil, err
		}
		return &pipeline.Document{
			Name:     nameFromURL(location),
			MIMEType: result.ContentType,
			Data:     result.Body,
		}, nil

	case "s3":
		if l.S3 == nil {
			return nil, &Error{URL: location, Message: "no S3 client configured"}
		}
		return l.S3.Load(ctx, location)

	case "", "file":
		return loadFile(ctx, strings.TrimPrefix(location, "file://"), l.HTTP.maxBytes())

	default:
		return nil, &Error{URL: location, Message: fmt.Sprintf("unsupported scheme %q", scheme)}
	}
}

func loadFile(ctx context.Context, filePath string, limit int64) (*pipeline.Document, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, &Error{URL: filePath, Message: "cannot open file", Cause: err}
	}
	if info.IsDir() {
		return nil, &Error{URL: filePath, Message: "is a directory"}
	}
	if info.Size() > limit {
		return nil, &Error{URL: filePath, Message: fmt.Sprintf("document exceeds %d bytes", limit)}
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &Error{URL: filePath, Message: "cannot read file", Cause: err}
	}
	logging.Ctx(ctx).Debug().Str("path", filePath).Int("bytes", len(data)).Msg("loaded local document")

	return &pipeline.Document{
		Name:     filepath.Base(filePath),
		MIMEType: mime.TypeByExtension(filepath.Ext(filePath)),
		Data:     data,
	}, nil
}

// schemeOf returns the lower-cased URL scheme, or "" for plain paths
// (including Windows drive letters)
func schemeOf(location string) string {
	i := strings.Index(location, "://")
	if i <= 1 {
		return ""
	}
	return strings.ToLower(location[:i])
}

func nameFromURL(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	if base := path.Base(u.Path); base != "/" && base != "." {
		return base
	}
	return u.Host
}
