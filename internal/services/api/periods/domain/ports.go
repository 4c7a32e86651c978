package domain

import "context"

// ServicePort is consumed by handlers and by the dashboard module
type ServicePort interface {
	List(ctx context.Context) ListResp
	Resolve(ctx context.Context, in ResolveInput) (ResolveResp, error)
	Change(ctx context.Context, in ChangeInput) ChangeResp
}
