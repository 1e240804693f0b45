package schema

const productRecordV1 = `{
	"type": "record",
	"name": "product",
	"fields": [
		{"name": "id", "type": "int"},
		{"name": "name", "type": "string"},
		{"name": "images", "type": {"type": "array", "items": "string"}},
		{"name": "price", "type": "double"},
		{"name": "rating", "type": "double"},
		{"name": "description", "type": "string"},
		{"name": "category", "type": "string", "default": ""},
		{"name": "discount_percentage", "type": "double", "default": 0},
		{"name": "stock", "type": "int", "default": 0},
		{"name": "tags", "type": {"type": "array", "items": "string"}, "default": []}
	]
}`

const CartStateSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "cart_state",
	"fields": [
		{"name": "items", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "cart_item",
				"fields": [
					{"name": "product", "type": ` + productRecordV1 + `},
					{"name": "quantity", "type": "int"}
				]
			}
		}}
	]
}`

const WishlistStateSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "wishlist_state",
	"fields": [
		{"name": "items", "type": {"type": "array", "items": ` + productRecordV1 + `}}
	]
}`

type (
	ProductV1 struct {
		ID                 int      `avro:"id" json:"id"`
		Name               string   `avro:"name" json:"name"`
		Images             []string `avro:"images" json:"images"`
		Price              float64  `avro:"price" json:"price"`
		Rating             float64  `avro:"rating" json:"rating"`
		Description        string   `avro:"description" json:"description"`
		Category           string   `avro:"category" json:"category,omitempty"`
		DiscountPercentage float64  `avro:"discount_percentage" json:"discountPercentage,omitempty"`
		Stock              int      `avro:"stock" json:"stock,omitempty"`
		Tags               []string `avro:"tags" json:"tags,omitempty"`
	}

	CartItemV1 struct {
		Product  ProductV1 `avro:"product" json:"product"`
		Quantity int       `avro:"quantity" json:"quantity"`
	}

	// A CartStateV1 is the persisted cart snapshot, items ordered by product id.
	CartStateV1 struct {
		Items []CartItemV1 `avro:"items"`
	}

	// A WishlistStateV1 is the persisted wishlist snapshot in insertion order.
	WishlistStateV1 struct {
		Items []ProductV1 `avro:"items"`
	}
)
