package schema

const OrderPlacedSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "order_placed",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "number", "type": "string"},
		{"name": "placed_at", "type": "long"},
		{"name": "lines", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "order_line",
				"fields": [
					{"name": "product_id", "type": "int"},
					{"name": "name", "type": "string"},
					{"name": "unit_price", "type": "double"},
					{"name": "quantity", "type": "int"}
				]
			}
		}},
		{"name": "subtotal", "type": "string"},
		{"name": "shipping", "type": "string"},
		{"name": "tax", "type": "string"},
		{"name": "total", "type": "string"}
	]
}`

type (
	// An OrderPlacedV1 is published once per confirmed checkout.
	//
	// Money fields are decimal strings with two fractional digits.
	OrderPlacedV1 struct {
		OrderID  string        `avro:"order_id"`
		Number   string        `avro:"number"`
		PlacedAt int64         `avro:"placed_at"`
		Lines    []OrderLineV1 `avro:"lines"`
		Subtotal string        `avro:"subtotal"`
		Shipping string        `avro:"shipping"`
		Tax      string        `avro:"tax"`
		Total    string        `avro:"total"`
	}

	OrderLineV1 struct {
		ProductID int     `avro:"product_id"`
		Name      string  `avro:"name"`
		UnitPrice float64 `avro:"unit_price"`
		Quantity  int     `avro:"quantity"`
	}
)
