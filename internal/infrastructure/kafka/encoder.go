package kafka

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// OrderEventEncoder сериализует событие order.placed в protobuf Struct.
// Денежные значения передаются строками, чтобы не терять точность.
type OrderEventEncoder struct{}

func NewOrderEventEncoder() *OrderEventEncoder {
	return &OrderEventEncoder{}
}

func (OrderEventEncoder) EncodeOrderPlaced(order *domain.Order) ([]byte, error) {
	items := make([]interface{}, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, map[string]interface{}{
			"product_id":       it.Product.ID,
			"sku":              it.Product.SKU,
			"quantity":         it.Quantity,
			"calculated_price": it.CalculatedPrice.String(),
		})
	}

	event, err := structpb.NewStruct(map[string]interface{}{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
		"status":      string(order.Status),
		"total":       order.Total.String(),
		"created_at":  order.CreatedAt.UnixMilli(),
		"items":       items,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := proto.Marshal(event)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}

// DecodeOrderPlaced разбирает payload события order.placed.
func DecodeOrderPlaced(data []byte) (map[string]interface{}, error) {
	var event structpb.Struct
	if err := proto.Unmarshal(data, &event); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return event.AsMap(), nil
}
