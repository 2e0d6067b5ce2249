package generateddocs

import "time"

// Kind names the document type an archive holds.
type Kind string

const (
	KindResume      Kind = "resume"
	KindCoverLetter Kind = "cover_letter"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindResume || k == KindCoverLetter
}

// GeneratedDocument records one archive produced by a generation request.
type GeneratedDocument struct {
	ID           string    `json:"id"`
	Kind         Kind      `json:"kind"`
	BaseName     string    `json:"baseName"`
	FileName     string    `json:"fileName"`
	StorageKey   string    `json:"-"`
	MimeType     string    `json:"mimeType"`
	SizeBytes    int64     `json:"sizeBytes"`
	JobOfferHash string    `json:"jobOfferHash"`
	CreatedAt    time.Time `json:"createdAt"`
}
