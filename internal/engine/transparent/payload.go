package transparent

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

// FieldName is the form field the provider reads the token from.
const FieldName = "data"

const tokenSeparator = "|"

// SignedPayload is a canonical query string together with its signature.
type SignedPayload struct {
	Signature string
	Query     string
}

// Token returns the wire form "signature|query".
func (p SignedPayload) Token() string {
	return p.Signature + tokenSeparator + p.Query
}

// Values parses the canonical query back into url.Values.
func (p SignedPayload) Values() (url.Values, error) {
	v, err := url.ParseQuery(p.Query)
	if err != nil {
		return nil, &Error{Kind: KindInvalidArgument, Op: "SignedPayload.Values", Message: ErrMalformedToken.Message, Err: err}
	}
	return v, nil
}

// Builder signs parameter trees with the private key of a Site. It holds no
// mutable state and is safe for concurrent use.
type Builder struct {
	site Site
}

func NewBuilder(site Site) *Builder {
	return &Builder{site: site}
}

func (b *Builder) Site() Site {
	return b.site
}

// CheckCredentials reports ErrMissingPrivateKey when the site has no key.
func (b *Builder) CheckCredentials() error {
	if len(b.site.PrivateKey()) == 0 {
		return newError("CheckCredentials", ErrMissingPrivateKey, "")
	}
	return nil
}

// Build canonicalizes p and signs the result. A missing private key is
// reported before any encoding work is done.
func (b *Builder) Build(p Params) (SignedPayload, error) {
	key := b.site.PrivateKey()
	if len(key) == 0 {
		return SignedPayload{}, newError("Build", ErrMissingPrivateKey, "")
	}

	query := QueryString(p)
	sig, err := Sign(key, query)
	if err != nil {
		return SignedPayload{}, err
	}
	return SignedPayload{Signature: sig, Query: query}, nil
}

// Encode returns the token posted in the hidden form field.
func (b *Builder) Encode(p Params) (string, error) {
	payload, err := b.Build(p)
	if err != nil {
		return "", err
	}
	return payload.Token(), nil
}

// HiddenField renders the token as a hidden input element.
func (b *Builder) HiddenField(p Params) (string, error) {
	token, err := b.Encode(p)
	if err != nil {
		return "", err
	}
	return HiddenField(token), nil
}

// HiddenField wraps an already encoded token in a hidden input element.
func HiddenField(token string) string {
	return fmt.Sprintf(`<input type="hidden" name="%s" value="%s" />`, FieldName, html.EscapeString(token))
}

// URL returns the endpoint a form for action should post to.
func (b *Builder) URL(action Action) (string, error) {
	return URL(action, b.site)
}

// Verify checks a token produced by Encode against the site's private key
// and returns its parts.
func (b *Builder) Verify(token string) (SignedPayload, error) {
	key := b.site.PrivateKey()
	if len(key) == 0 {
		return SignedPayload{}, newError("Verify", ErrMissingPrivateKey, "")
	}

	sig, query, ok := strings.Cut(token, tokenSeparator)
	if !ok || len(sig) != SignatureLength {
		return SignedPayload{}, newError("Verify", ErrMalformedToken, "expected signature|query")
	}

	valid, err := Verify(key, query, sig)
	if err != nil {
		return SignedPayload{}, err
	}
	if !valid {
		return SignedPayload{}, newError("Verify", ErrSignatureMismatch, "")
	}
	return SignedPayload{Signature: sig, Query: query}, nil
}
