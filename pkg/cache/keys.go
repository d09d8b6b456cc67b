package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies the export of one description in one format.
	ArtifactKey(descHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the export options that change the rendered bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Response    string  `json:"response,omitempty"`
	ConfigsHash string  `json:"configs,omitempty"`
	Individual  bool    `json:"individual,omitempty"`
	Array       bool    `json:"array,omitempty"`
	Background  string  `json:"background,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Supersample float64 `json:"supersample,omitempty"`
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Map keys are sorted by the
// encoder, so equal values hash equally.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<format>:<hash>" where hash covers the
// description hash and every option.
func (DefaultKeyer) ArtifactKey(descHash string, opts ArtifactKeyOpts) string {
	// ArtifactKeyOpts holds only plain fields, so encoding cannot fail.
	h, _ := HashJSON(struct {
		Desc string          `json:"desc"`
		Opts ArtifactKeyOpts `json:"opts"`
	}{descHash, opts})
	return "artifact:" + opts.Format + ":" + h
}

// ScopedKeyer prefixes every key of another Keyer. The CLI scopes by build
// version so a new release never reads entries written by an old one.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey returns the inner key behind the prefix.
func (k *ScopedKeyer) ArtifactKey(descHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(descHash, opts)
}
