package grpc

import (
	"context"
	"errors"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const catalogServiceName = "storefront.v1.CatalogService"

// CatalogServer отдаёт другим сервисам цены товаров для сессии покупателя.
//
// Запрос GetProducts: {"ids": [string], "session_id": string}. Без session_id
// или с неизвестной сессией цены считаются для анонимного посетителя.
// Ответ: {"products": [{...}], "not_found": [string]}; скрытые товары попадают в not_found.
type CatalogServer interface {
	GetProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: catalogServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetProducts",
			Handler:    getProductsHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/catalog.proto",
}

func registerCatalogService(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&catalogServiceDesc, srv)
}

func getProductsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).GetProducts(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + catalogServiceName + "/GetProducts",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogServer).GetProducts(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type CatalogService struct {
	sessions  usecase.SessionProvider
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewCatalogService(sessions usecase.SessionProvider, catalogUC usecase.CatalogUC, logger logger.Logger) *CatalogService {
	return &CatalogService{sessions: sessions, catalogUC: catalogUC, logger: logger}
}

func (g *CatalogService) GetProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.GetProducts"

	ids := stringList(req.GetFields()["ids"])
	if len(ids) == 0 {
		return nil, GRPCErrorResponse(e.ErrMissingFields)
	}

	customer, err := g.viewer(ctx, req.GetFields()["session_id"].GetStringValue())
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	products := make([]interface{}, 0, len(ids))
	notFound := make([]interface{}, 0)
	for _, id := range ids {
		view, err := g.catalogUC.GetProduct(ctx, customer, id)
		if errors.Is(err, e.ErrProductNotFound) {
			notFound = append(notFound, id)
			continue
		}
		if err != nil {
			g.logger.Errorf(e.Wrap(op, err), "%s", op)
			return nil, GRPCErrorResponse(e.Wrap(op, err))
		}

		products = append(products, toGRPCProduct(view))
	}

	res, err := structpb.NewStruct(map[string]interface{}{
		"products":  products,
		"not_found": notFound,
	})
	if err != nil {
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return res, nil
}

// viewer возвращает покупателя сессии или nil для анонимного посетителя.
func (g *CatalogService) viewer(ctx context.Context, sessionID string) (*domain.Customer, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := g.sessions.Get(ctx, sessionID)
	if errors.Is(err, e.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer g.sessions.Release(session)

	return session.Customer(), nil
}

func toGRPCProduct(v *usecase.ProductView) map[string]interface{} {
	return map[string]interface{}{
		"id":              v.Product.ID,
		"name":            v.Product.Name,
		"sku":             v.Product.SKU,
		"category":        v.Product.Category,
		"price_base":      v.Product.PriceBase.StringFixed(2),
		"effective_price": v.EffectivePrice.StringFixed(2),
		"price_tier":      string(v.Tier),
		"availability":    string(v.Availability),
	}
}

func stringList(v *structpb.Value) []string {
	values := v.GetListValue().GetValues()
	res := make([]string, 0, len(values))
	for _, item := range values {
		if s := item.GetStringValue(); s != "" {
			res = append(res, s)
		}
	}

	return res
}
