package transparent

import (
	"fmt"
	"strings"
)

type Environment string

const (
	Sandbox    Environment = "sandbox"
	Production Environment = "production"
)

func ParseEnvironment(s string) (Environment, error) {
	switch Environment(strings.ToLower(strings.TrimSpace(s))) {
	case Sandbox:
		return Sandbox, nil
	case Production:
		return Production, nil
	default:
		return "", newError("ParseEnvironment", &Error{Kind: KindConfiguration, Message: "unknown environment"}, fmt.Sprintf("%q", s))
	}
}

// Site is the read-only configuration a Builder signs and resolves URLs with.
type Site interface {
	Subdomain() string
	Environment() Environment
	PrivateKey() []byte
	BaseURL() string
}

// StaticSite is a Site with fixed values.
type StaticSite struct {
	SiteSubdomain   string
	SiteEnvironment Environment
	SiteKey         string
	SiteBaseURL     string
}

func (s StaticSite) Subdomain() string        { return s.SiteSubdomain }
func (s StaticSite) Environment() Environment { return s.SiteEnvironment }
func (s StaticSite) PrivateKey() []byte       { return []byte(s.SiteKey) }
func (s StaticSite) BaseURL() string          { return s.SiteBaseURL }
