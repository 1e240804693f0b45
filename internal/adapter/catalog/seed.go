package catalog

import "github.com/niksmo/storefront/internal/core/domain"

// SeedProducts returns the reference catalog. Each call returns fresh
// slices.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:     1,
			Name:   "Premium Wireless Headphones",
			Images: []string{"/headphones.jpg", "/headphones.jpg"},
			Price:  199.99,
			Rating: 4.8,
			Description: "Experience crystal-clear sound with our premium wireless " +
				"headphones featuring nois e cancellation technology.",
			Category:           "Electronics",
			DiscountPercentage: 15,
			Stock:              23,
			Tags:               []string{"wireless", "audio", "premium"},
		},
		{
			ID:     2,
			Name:   "Designer Leather Jacket",
			Images: []string{"/leather_jacket.jpg", "/leather_jacket.jpg"},
			Price:  349.99,
			Rating: 4.6,
			Description: "Elevate your style with this premium leather jacket, " +
				"crafted with the finest materials for lasting comfort.",
			Category: "Clothing",
			Stock:    12,
			Tags:     []string{"fashion", "outerwear", "leather"},
		},
		{
			ID:     3,
			Name:   "Smart Home Assistant",
			Images: []string{"/home_assistant.jpg", "/home_assistant.jpg"},
			Price:  129.99,
			Rating: 4.5,
			Description: "Control your home with voice commands using our " +
				"advanced smart home assistant with AI technology.",
			Category:           "Electronics",
			DiscountPercentage: 10,
			Stock:              45,
			Tags:               []string{"smart home", "AI", "voice control"},
		},
		{
			ID:     4,
			Name:   "Luxury Scented Candle Set",
			Images: []string{"/scented_candles.jpg", "/scented_candles.jpg"},
			Price:  49.99,
			Rating: 4.7,
			Description: "Transform your space with our collection of premium " +
				"scented candles, made with natural soy wax.",
			Category: "Home",
			Stock:    32,
			Tags:     []string{"home decor", "candles", "scented"},
		},
		{
			ID:     5,
			Name:   "Professional Skincare Kit",
			Images: []string{"/skincare_Set.jpg", "/skincare_Set.jpg"},
			Price:  89.99,
			Rating: 4.9,
			Description: "Achieve radiant skin with our professional-grade " +
				"skincare kit featuring natural ingredients.",
			Category:           "Beauty",
			DiscountPercentage: 20,
			Stock:              18,
			Tags:               []string{"skincare", "beauty", "natural"},
		},
		{
			ID:     6,
			Name:   "Ultra-Light Running Shoes",
			Images: []string{"/shoes.jpg", "/shoes.jpg"},
			Price:  129.99,
			Rating: 4.6,
			Description: "Engineered for performance, these ultra-light running " +
				"shoes provide superior comfort and support.",
			Category: "Sports",
			Stock:    27,
			Tags:     []string{"running", "shoes", "athletic"},
		},
	}
}
