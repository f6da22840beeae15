package store

import (
	"github.com/shopspring/decimal"

	"github.com/xyzlearns/ShopEase1/internal/models"
)

// DefaultCatalog is the product list seeded into an empty catalog.
func DefaultCatalog() []models.Product {
	return []models.Product{
		{
			Name:        "Memory Foam Mattress",
			Price:       decimal.NewFromInt(12999),
			Category:    "mattress",
			Rating:      4.5,
			Image:       "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			Description: "Premium memory foam mattress with cooling gel technology and 10-year warranty.",
		},
		{
			Name:        "Orthopedic Pillow",
			Price:       decimal.NewFromInt(1899),
			Category:    "pillow",
			Rating:      4.2,
			Image:       "https://images.unsplash.com/photo-1584434128309-6d96d6818202?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			Description: "Ergonomic orthopedic pillow designed for neck and spine support with breathable fabric.",
		},
		{
			Name:        "Luxury Spring Mattress",
			Price:       decimal.NewFromInt(18999),
			Category:    "mattress",
			Rating:      4.7,
			Image:       "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			Description: "High-quality spring mattress with premium comfort layers and motion isolation.",
		},
		{
			Name:        "Wooden Bed Frame",
			Price:       decimal.NewFromInt(8999),
			Category:    "home",
			Rating:      4.3,
			Image:       "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			Description: "Solid wood bed frame with modern design and sturdy construction.",
		},
		{
			Name:        "Bamboo Pillow Set",
			Price:       decimal.NewFromInt(2999),
			Category:    "pillow",
			Rating:      4.6,
			Image:       "/images/bro.png",
			Description: "Set of 2 bamboo fiber pillows with hypoallergenic and antimicrobial properties.",
		},
		{
			Name:        "Ceramic Table Lamp",
			Price:       decimal.NewFromInt(1599),
			Category:    "home",
			Rating:      4.4,
			Image:       "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			Description: "Beautiful ceramic table lamp with adjustable brightness and modern design.",
		},
		{
			Name:        "Coir Mattress",
			Price:       decimal.NewFromInt(7999),
			Category:    "mattress",
			Rating:      4.8,
			Image:       "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			Description: "Natural coir mattress with excellent ventilation and firm support.",
		},
		{
			Name:        "Silk Pillowcase Set",
			Price:       decimal.NewFromInt(1299),
			Category:    "pillow",
			Rating:      4.5,
			Image:       "https://images.unsplash.com/photo-1584434128309-6d96d6818202?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			Description: "Premium silk pillowcase set that's gentle on hair and skin.",
		},
	}
}
