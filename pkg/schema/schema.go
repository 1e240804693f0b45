package schema

import "github.com/hamba/avro/v2"

// AvroEncodeFn binds avro.Marshal to s.
func AvroEncodeFn(s avro.Schema) func(v any) ([]byte, error) {
	return func(v any) ([]byte, error) {
		return avro.Marshal(s, v)
	}
}

// AvroDecodeFn binds avro.Unmarshal to s. v must be a pointer.
func AvroDecodeFn(s avro.Schema) func([]byte, any) error {
	return func(data []byte, v any) error {
		return avro.Unmarshal(s, data, v)
	}
}

// Panics on invalid schema text, which is a develop mistake.
func CartStateV1Avro() avro.Schema {
	return avro.MustParse(CartStateSchemaTextV1)
}

func WishlistStateV1Avro() avro.Schema {
	return avro.MustParse(WishlistStateSchemaTextV1)
}

func OrderPlacedV1Avro() avro.Schema {
	return avro.MustParse(OrderPlacedSchemaTextV1)
}
