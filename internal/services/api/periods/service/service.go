// Package service implements period listing and resolution for the API
package service

import (
	"context"
	"fmt"
	"time"

	"bizdash/internal/core/period"
	perr "bizdash/internal/platform/errors"
	"bizdash/internal/platform/logger"
	ptime "bizdash/internal/platform/time"
	"bizdash/internal/services/api/periods/domain"
)

// Service is the concrete implementation of domain.ServicePort
type Service struct {
	Resolver period.Resolver
	Clock    ptime.Clock
	Default  period.Identifier
}

var _ domain.ServicePort = (*Service)(nil)

// New constructs the periods service; def falls back to period.Default when empty
func New(res period.Resolver, clock ptime.Clock, def period.Identifier) *Service {
	if clock == nil {
		panic("periods.Service requires a non-nil Clock")
	}
	if def == "" {
		def = period.Default()
	}
	if !def.Valid() {
		panic(fmt.Sprintf("periods.Service default %q is not a period identifier", def))
	}
	return &Service{Resolver: res, Clock: clock, Default: def}
}

// List returns every identifier in display order
func (s *Service) List(_ context.Context) domain.ListResp {
	ids := period.Identifiers()
	out := make([]domain.PeriodInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.PeriodInfo{ID: id, Label: id.Label(), Family: id.Family(), ToDate: id.ToDate()})
	}
	return domain.ListResp{
		Periods:  out,
		Default:  s.Default,
		Timezone: s.Resolver.Location().String(),
	}
}

// Resolve computes the windows for in
// with Fallback set a failed resolution answers with the default period and a notice
func (s *Service) Resolve(ctx context.Context, in domain.ResolveInput) (domain.ResolveResp, error) {
	now, err := s.now(in.Now)
	if err != nil {
		return domain.ResolveResp{}, err
	}

	id, bounds, err := s.parse(in)
	if err != nil {
		if !in.Fallback {
			return domain.ResolveResp{}, err
		}
		p, ferr := s.Resolver.Resolve(s.Default, now, nil)
		if ferr != nil {
			return domain.ResolveResp{}, ferr
		}
		return s.withNotice(ctx, in.Period, s.Default, p, err), nil
	}

	if !in.Fallback {
		p, err := s.Resolver.Resolve(id, now, bounds)
		if err != nil {
			return domain.ResolveResp{}, err
		}
		return s.render(id, p), nil
	}

	p, used, err := s.Resolver.ResolveOrDefault(id, now, bounds, s.Default)
	if used == "" {
		return domain.ResolveResp{}, err
	}
	if err != nil {
		return s.withNotice(ctx, in.Period, used, p, err), nil
	}
	return s.render(used, p), nil
}

// Change applies the percentage change rule
func (s *Service) Change(_ context.Context, in domain.ChangeInput) domain.ChangeResp {
	return domain.ChangeResp{ChangePct: period.ChangeDecimal(in.Current, in.Previous)}
}

func (s *Service) now(override string) (time.Time, error) {
	if override == "" {
		return s.Clock.Now(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, override)
	if err != nil {
		return time.Time{}, perr.WithField(perr.InvalidArgf("now must be RFC 3339, got %q", override), "now")
	}
	return t, nil
}

// parse reads the identifier and, when either bound is present, the custom range
func (s *Service) parse(in domain.ResolveInput) (period.Identifier, *period.DateRange, error) {
	id, err := period.ParseIdentifier(in.Period)
	if err != nil {
		return "", nil, perr.WithField(err, "period")
	}
	bounds, err := period.ParseCustom(in.CustomStart, in.CustomEnd, s.Resolver.Location())
	if err != nil {
		return "", nil, err
	}
	return id, bounds, nil
}

func (s *Service) render(id period.Identifier, p period.Pair) domain.ResolveResp {
	return domain.ResolveResp{
		Period:     id,
		Label:      id.Label(),
		Current:    domain.WindowOf(p.Current),
		Comparison: domain.WindowOf(p.Comparison),
		Params:     p.ParamsIn(s.Resolver.Location()),
	}
}

func (s *Service) withNotice(ctx context.Context, asked string, used period.Identifier, p period.Pair, cause error) domain.ResolveResp {
	logger.C(ctx).Warn().Err(cause).Str("asked", asked).Str("used", string(used)).Msg("period fell back to default")
	resp := s.render(used, p)
	resp.Notice = fmt.Sprintf("%s could not be resolved (%s); showing %s", asked, perr.WireFrom(cause).Message, used.Label())
	return resp
}
