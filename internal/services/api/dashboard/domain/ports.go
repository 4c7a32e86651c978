package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Stores(ctx context.Context) ([]Store, error)
	KPIs(ctx context.Context, in QueryInput) (KPIResp, error)
	SalesByStore(ctx context.Context, in QueryInput) ([]StoreSales, error)
	TopProducts(ctx context.Context, in QueryInput) ([]ProductSales, error)
	TopCategories(ctx context.Context, in QueryInput) ([]CategorySales, error)
	TopMovers(ctx context.Context, in QueryInput) (MoversResp, error)
	SalesTrend(ctx context.Context, in QueryInput) (TrendResp, error)
	Invalidate(ctx context.Context) InvalidateResp
}
