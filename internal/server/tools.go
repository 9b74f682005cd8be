package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func outputPathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional file to save the result to. The extension selects the format (png, jpg, gif, tif, bmp).",
	}
}

func histogramModeProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"per-channel", "luminance"},
		"description": "per-channel: one table per channel (R, G, B or gray). luminance: one detailed table of per-pixel luminance. Default per-channel",
		"default":     "per-channel",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, pixel mode and format. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate, with its luminance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at multiple points in one call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Points to sample",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
				},
				"required": []string{"path", "points"},
			},
		},

		// Transforms
		{
			Name:        "image_grayscale",
			Description: "Convert an image to grayscale using luminance weighting (0.299 R + 0.587 G + 0.114 B, truncated). Returns the result as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"output_path": outputPathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_brightness",
			Description: "Scale every channel by a factor, clamping to 0-255. Factors above 1 brighten, below 1 darken. Returns the result as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"factor": map[string]interface{}{
						"type":        "number",
						"description": "Brightness factor, must be > 0 (e.g., 1.5 brightens by 50%, 0.5 halves brightness)",
					},
					"grayscale": map[string]interface{}{
						"type":        "boolean",
						"description": "Convert to grayscale before adjusting. Default false",
						"default":     false,
					},
					"output_path": outputPathProperty(),
				},
				"required": []string{"path", "factor"},
			},
		},

		// Histograms
		{
			Name:        "image_histogram",
			Description: "Compute 256-bin histograms of an image. Returns each table with its sum, peak and mean value.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"mode": histogramModeProperty(),
					"grayscale": map[string]interface{}{
						"type":        "boolean",
						"description": "Measure the grayscale conversion of the image instead of the image itself. Default false",
						"default":     false,
					},
					"cumulative": map[string]interface{}{
						"type":        "boolean",
						"description": "Return cumulative counts. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_histogram_chart",
			Description: "Draw the histograms of an image as a chart and return it as base64-encoded PNG. RGB tables are drawn as colored lines, a gray table as bars, the luminance table as dots.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"mode": histogramModeProperty(),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Chart width in pixels, at most 4096. Default 560",
						"default":     560,
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Chart height in pixels, at most 4096. Default 300",
						"default":     300,
					},
					"with_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw the image to the left of the chart. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
