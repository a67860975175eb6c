// cartscout-mcp exposes the cartscout HTTP API as an MCP stdio server,
// so assistants can run price comparisons as a tool call.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// compareRequest mirrors the cartscout API request model.
type compareRequest struct {
	ShoppingList []shoppingListItem `json:"shoppingList"`
}

type shoppingListItem struct {
	Name       string `json:"name"`
	Preference string `json:"preference,omitempty"`
}

// compareResponse mirrors the cartscout API response model.
type compareResponse struct {
	Success bool `json:"success"`
	Results []struct {
		ProductName string `json:"productName"`
		Preference  string `json:"preference"`
		Options     []struct {
			Name         string  `json:"name"`
			Price        float64 `json:"price"`
			PricePerUnit string  `json:"pricePerUnit"`
			Store        string  `json:"store"`
			IsPreferred  bool    `json:"isPreferred"`
			Link         string  `json:"link"`
		} `json:"options"`
	} `json:"results"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("CARTSCOUT_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("CARTSCOUT_API_KEY") // optional; auth is off by default

	s := server.NewMCPServer(
		"cartscout",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	comparePricesTool := mcp.NewTool("compare_prices",
		mcp.WithDescription("Compare grocery prices across UK retailers (Tesco, Sainsbury's) for a shopping list. Returns ranked product options per item with one preferred pick."),
		mcp.WithArray("items",
			mcp.Required(),
			mcp.Description("Shopping-list items to search for, e.g. [\"milk\", \"bread\"]"),
		),
		mcp.WithString("preference",
			mcp.Description("Ranking preference applied to every item: 'cheapest' (default), 'highest-quality', or 'best-value'"),
			mcp.Enum("cheapest", "highest-quality", "best-value"),
		),
	)
	s.AddTool(comparePricesTool, handleComparePrices(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleComparePrices(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 180 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		items, err := request.RequireStringSlice("items")
		if err != nil {
			return mcp.NewToolResultError("items is required and must be an array of strings"), nil
		}
		preference := request.GetString("preference", "")

		reqBody := compareRequest{}
		for _, name := range items {
			reqBody.ShoppingList = append(reqBody.ShoppingList, shoppingListItem{
				Name:       name,
				Preference: preference,
			})
		}

		body, err := json.Marshal(reqBody)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/compare", bytes.NewReader(body))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if apiKey != "" {
			httpReq.Header.Set("X-API-Key", apiKey)
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var compareResp compareResponse
		if err := json.Unmarshal(respBody, &compareResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !compareResp.Success {
			errMsg := "comparison failed"
			if compareResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", compareResp.Error.Code, compareResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		var sb strings.Builder
		for _, result := range compareResp.Results {
			sb.WriteString(fmt.Sprintf("## %s (%s)\n", result.ProductName, result.Preference))
			if len(result.Options) == 0 {
				sb.WriteString("no options found\n\n")
				continue
			}
			for _, opt := range result.Options {
				marker := "-"
				if opt.IsPreferred {
					marker = "*"
				}
				sb.WriteString(fmt.Sprintf("%s %s: £%.2f", marker, opt.Name, opt.Price))
				if opt.PricePerUnit != "" {
					sb.WriteString(fmt.Sprintf(" (%s)", opt.PricePerUnit))
				}
				sb.WriteString(fmt.Sprintf(" [%s] %s\n", opt.Store, opt.Link))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("* = preferred option\n")

		return mcp.NewToolResultText(sb.String()), nil
	}
}
