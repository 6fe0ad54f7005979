package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sustainabuy/backend/internal/domain"
	"github.com/sustainabuy/backend/internal/usecase"
)

func registerTools(s *server.MCPServer) {
	// score_product
	scoreTool := mcp.NewTool("score_product",
		mcp.WithDescription("Compute the sustainability score, category breakdown and analysis for a product"),
		mcp.WithString("brand",
			mcp.Required(),
			mcp.Description("Product brand, matched case-insensitively against known brands"),
		),
		mcp.WithString("name",
			mcp.Description("Product name"),
		),
		mcp.WithArray("materials",
			mcp.Description("Materials the product is made of"),
			mcp.WithStringItems(),
		),
		mcp.WithArray("certifications",
			mcp.Description("Certifications held by the product"),
			mcp.WithStringItems(),
		),
		mcp.WithString("origin",
			mcp.Description("Country of origin"),
		),
	)
	s.AddTool(scoreTool, handleScoreProduct)

	// generate_offers
	offersTool := mcp.NewTool("generate_offers",
		mcp.WithDescription("Generate marketplace offers for a product variant, cheapest first"),
		mcp.WithString("brand",
			mcp.Description("Product brand"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Product name"),
		),
		mcp.WithString("variant",
			mcp.Description("Variant name (default: Standard Edition)"),
		),
		mcp.WithString("variant_id",
			mcp.Description("Variant id used in offer ids (default: default)"),
		),
		mcp.WithNumber("price",
			mcp.Description("Variant base price; 0 falls back to 100"),
		),
	)
	s.AddTool(offersTool, handleGenerateOffers)

	// parse_search_intent
	intentTool := mcp.NewTool("parse_search_intent",
		mcp.WithDescription("Normalize a search query and extract brand, category and keywords"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text search query"),
		),
	)
	s.AddTool(intentTool, handleParseSearchIntent)
}

func handleScoreProduct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	brand := request.GetString("brand", "")
	if brand == "" {
		return mcp.NewToolResultError("brand is required"), nil
	}

	score := usecase.CalculateSustainabilityScore(domain.ProductData{
		Name:           request.GetString("name", ""),
		Brand:          brand,
		Materials:      request.GetStringSlice("materials", nil),
		Certifications: request.GetStringSlice("certifications", nil),
		Origin:         request.GetString("origin", ""),
	})

	return jsonResult(score)
}

func handleGenerateOffers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	subject := domain.OfferSubject{
		Brand: request.GetString("brand", ""),
		Name:  name,
	}
	variant := domain.ProductVariant{
		ID:        request.GetString("variant_id", "default"),
		Name:      request.GetString("variant", "Standard Edition"),
		BasePrice: request.GetFloat("price", 0),
	}

	offers := usecase.GenerateMetaOffers(subject, variant)
	usecase.SortOffersByPrice(offers)

	return jsonResult(offers)
}

func handleParseSearchIntent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")

	return jsonResult(map[string]any{
		"normalized": usecase.NormalizeQuery(query),
		"intent":     usecase.ParseSearchIntent(query),
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
