package llmclient

// Role tags one conversation turn.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
	RoleModel  Role = "model"
)

// Turn is one role-tagged chunk of conversation text. Multi-line text
// is kept as an ordered slice of strings and joined with newlines when
// the payload is built.
type Turn struct {
	Role Role
	Text []string
}

// FileKind classifies a queued attachment.
type FileKind string

const (
	FilePDF   FileKind = "pdf"
	FileImage FileKind = "image"
	FileText  FileKind = "text"
	FileOther FileKind = "other"
)

// FileReference points at a remote attachment. References are queued
// on a client and consumed at most once: building a payload drains the
// queue whether or not each entry ends up embedded.
type FileReference struct {
	URL  string
	Kind FileKind
}

// ResolvedFile is the outcome of fetching a FileReference. Content
// holds the standard base64 encoding of the raw bytes; Size is the raw
// byte count. The zero value signals a resolution failure.
type ResolvedFile struct {
	MimeType string
	Content  []byte
	Size     int
}

// Settings is the immutable per-client configuration: credentials,
// model identifier, and any vendor-specific generation fields.
type Settings struct {
	APIKey string
	Model  string
	Extra  map[string]interface{}
}

// ToRequestDict returns the base request fields with the
// vendor-specific extras layered on top.
func (s Settings) ToRequestDict() map[string]interface{} {
	out := map[string]interface{}{
		"model": s.Model,
	}
	for k, v := range s.Extra {
		out[k] = v
	}
	return out
}

// Tokens reports the usage a vendor attributed to one request.
type Tokens struct {
	Prompt    int
	Generated int
}

// UnifiedResponse is the vendor-agnostic outcome of one request
// attempt. On success Text holds the generated text; on any failure it
// holds the raw or synthesized error body, with zeroed tokens.
type UnifiedResponse struct {
	Code   int
	Text   string
	Tokens Tokens
}
