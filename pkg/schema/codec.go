package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/hamba/avro/v2"
)

var ErrUnknownCodec = errors.New("unknown codec")

const (
	CodecJSON = "json"
	CodecAvro = "avro"
)

// A Codec converts a persisted state snapshot to bytes and back.
type Codec[T any] interface {
	Encode(v T) ([]byte, error)
	Decode(data []byte) (T, error)
}

func NewCartCodec(name string) (Codec[CartStateV1], error) {
	switch name {
	case CodecJSON, "":
		return cartJSONCodec{}, nil
	case CodecAvro:
		return newAvroCodec[CartStateV1](CartStateV1Avro()), nil
	}
	return nil, fmt.Errorf("NewCartCodec: %w: %q", ErrUnknownCodec, name)
}

func NewWishlistCodec(name string) (Codec[WishlistStateV1], error) {
	switch name {
	case CodecJSON, "":
		return wishlistJSONCodec{}, nil
	case CodecAvro:
		return newAvroCodec[WishlistStateV1](WishlistStateV1Avro()), nil
	}
	return nil, fmt.Errorf("NewWishlistCodec: %w: %q", ErrUnknownCodec, name)
}

type avroCodec[T any] struct {
	encode func(v any) ([]byte, error)
	decode func([]byte, any) error
}

func newAvroCodec[T any](s avro.Schema) avroCodec[T] {
	return avroCodec[T]{encode: AvroEncodeFn(s), decode: AvroDecodeFn(s)}
}

func (c avroCodec[T]) Encode(v T) ([]byte, error) {
	return c.encode(v)
}

func (c avroCodec[T]) Decode(data []byte) (T, error) {
	var v T
	err := c.decode(data, &v)
	return v, err
}

// The JSON documents keep the layout of the browser storefront:
// a "state" object plus a version number that is always 0.
type (
	cartDocument struct {
		State struct {
			Items map[string]CartItemV1 `json:"items"`
		} `json:"state"`
		Version int `json:"version"`
	}

	wishlistDocument struct {
		State struct {
			Items []ProductV1 `json:"items"`
		} `json:"state"`
		Version int `json:"version"`
	}
)

type cartJSONCodec struct{}

func (cartJSONCodec) Encode(v CartStateV1) ([]byte, error) {
	var doc cartDocument
	doc.State.Items = make(map[string]CartItemV1, len(v.Items))
	for _, item := range v.Items {
		doc.State.Items[strconv.Itoa(item.Product.ID)] = item
	}
	return json.Marshal(doc)
}

func (cartJSONCodec) Decode(data []byte) (CartStateV1, error) {
	const op = "cartJSONCodec.Decode"

	var doc cartDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return CartStateV1{}, fmt.Errorf("%s: %w", op, err)
	}

	var v CartStateV1
	for _, item := range doc.State.Items {
		v.Items = append(v.Items, item)
	}
	slices.SortFunc(v.Items, func(a, b CartItemV1) int {
		return a.Product.ID - b.Product.ID
	})
	return v, nil
}

type wishlistJSONCodec struct{}

func (wishlistJSONCodec) Encode(v WishlistStateV1) ([]byte, error) {
	var doc wishlistDocument
	doc.State.Items = v.Items
	if doc.State.Items == nil {
		doc.State.Items = []ProductV1{}
	}
	return json.Marshal(doc)
}

func (wishlistJSONCodec) Decode(data []byte) (WishlistStateV1, error) {
	const op = "wishlistJSONCodec.Decode"

	var doc wishlistDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return WishlistStateV1{}, fmt.Errorf("%s: %w", op, err)
	}
	return WishlistStateV1{Items: doc.State.Items}, nil
}
