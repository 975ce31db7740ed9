package llmclient

import (
	"context"
	"encoding/base64"
	"net/http"
)

// FileResolver fetches a remote attachment. Failures never propagate:
// any transport problem yields the zero ResolvedFile, which downstream
// size checks then exclude.
type FileResolver interface {
	Resolve(ctx context.Context, url string) ResolvedFile
}

type httpResolver struct {
	transport Transport
}

// NewHTTPResolver creates a FileResolver that downloads over the given
// transport and base64-encodes the content.
func NewHTTPResolver(transport Transport) FileResolver {
	return &httpResolver{transport: transport}
}

func (r *httpResolver) Resolve(ctx context.Context, url string) ResolvedFile {
	resp, err := r.transport.Get(ctx, url)
	if err != nil || resp == nil || resp.StatusCode != http.StatusOK {
		return ResolvedFile{}
	}
	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return ResolvedFile{
		MimeType: mimeType,
		Content:  []byte(base64.StdEncoding.EncodeToString(resp.Body)),
		Size:     len(resp.Body),
	}
}
