// Package forms issues signed transparent redirect forms to integrator
// backends and records each issuance.
package forms

import (
	"context"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"billingform/internal/engine/transparent"
	"billingform/internal/pkg/logger"
	"billingform/internal/platform/metrics"
	"billingform/internal/platform/models"
)

// IssuanceRecorder persists issuance entries.
type IssuanceRecorder interface {
	Create(ctx context.Context, iss *models.Issuance) error
}

type PrepareRequest struct {
	Action   transparent.Action
	ClientID string
	Params   transparent.Params
}

// Form is everything a page needs to render a transparent redirect form.
type Form struct {
	Action      string `json:"action"`
	URL         string `json:"url"`
	Token       string `json:"token"`
	HiddenField string `json:"hidden_field"`
	Signature   string `json:"signature"`
}

type Verification struct {
	Signature string     `json:"signature"`
	Values    url.Values `json:"params"`
}

type Service struct {
	builder  *transparent.Builder
	recorder IssuanceRecorder
	metrics  *metrics.Metrics
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(builder *transparent.Builder, recorder IssuanceRecorder, m *metrics.Metrics) *Service {
	return &Service{
		builder:  builder,
		recorder: recorder,
		metrics:  m,
		log:      logger.Component("forms"),
		now:      time.Now,
	}
}

// Prepare signs req.Params and resolves the endpoint for req.Action.
func (s *Service) Prepare(ctx context.Context, req PrepareRequest) (*Form, error) {
	formURL, err := s.builder.URL(req.Action)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	started := s.now()
	payload, err := s.builder.Build(req.Params)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	s.metrics.ObserveSign(s.now().Sub(started))

	path, _ := req.Action.Path()
	site := s.builder.Site()
	token := payload.Token()

	form := &Form{
		Action:      path,
		URL:         formURL,
		Token:       token,
		HiddenField: transparent.HiddenField(token),
		Signature:   payload.Signature,
	}

	s.metrics.FormIssued(path)
	s.record(ctx, &models.Issuance{
		ClientID:    req.ClientID,
		Action:      path,
		Subdomain:   site.Subdomain(),
		Environment: string(site.Environment()),
		Signature:   payload.Signature,
		CreatedAt:   s.now().Unix(),
	})

	s.log.Info().
		Str("client_id", req.ClientID).
		Str("action", path).
		Str("subdomain", site.Subdomain()).
		Str("signature", logger.SignaturePrefix(payload.Signature)).
		Msg("form issued")

	return form, nil
}

// Ready fails with a configuration error while the site has no private key.
func (s *Service) Ready() error {
	if err := s.builder.CheckCredentials(); err != nil {
		s.fail(err)
		return err
	}
	return nil
}

// URL resolves the endpoint for action without signing anything.
func (s *Service) URL(action transparent.Action) (string, error) {
	u, err := s.builder.URL(action)
	if err != nil {
		s.fail(err)
	}
	return u, err
}

// Verify checks a token previously issued for this site.
func (s *Service) Verify(ctx context.Context, token string) (*Verification, error) {
	payload, err := s.builder.Verify(token)
	if err != nil {
		if transparent.KindOf(err) == transparent.KindInvalidArgument {
			s.metrics.Verification(false)
		}
		s.fail(err)
		return nil, err
	}

	values, err := payload.Values()
	if err != nil {
		s.metrics.Verification(false)
		s.fail(err)
		return nil, err
	}

	s.metrics.Verification(true)
	return &Verification{Signature: payload.Signature, Values: values}, nil
}

// record failures do not invalidate the form: the token is already signed.
func (s *Service) record(ctx context.Context, iss *models.Issuance) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Create(ctx, iss); err != nil {
		s.log.Error().Err(err).Str("action", iss.Action).Msg("failed to record issuance")
	}
}

func (s *Service) fail(err error) {
	kind := transparent.KindOf(err)
	s.metrics.Error(kind.String())
	s.log.Warn().Err(err).Str("kind", kind.String()).Msg("form request rejected")
}
