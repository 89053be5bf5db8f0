package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// mooseProperty is the schema of a moose passed by value: rows of colour names.
func mooseProperty() map[string]interface{} {
	return map[string]interface{}{
		"type": "array",
		"items": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"description": "Moose as rows of palette colour names, top row first",
	}
}

func nameProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Moose name: letters, digits, space, '_' and '-'",
	}
}

func legacyProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": "Use the historical ragged crop, where each row ends after its own last painted cell. Defaults to the server setting",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Definition
		{
			Name:        "moose_palette",
			Description: "Return the moose size and palette, with the hex, RGB, HSL and IRC code of each colour.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Core Operations
		{
			Name:        "moose_validate",
			Description: "Check that a moose has the configured size and only palette colours. Fails with kind 'dimension' or 'invalid_color'.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"moose": mooseProperty(),
				},
				"required": []string{"moose"},
			},
		},
		{
			Name:        "moose_fill",
			Description: "Flood fill the 4-connected region of equal colour containing (x, y) with a new colour, like the editor's paint bucket.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"moose": mooseProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Column of the seed cell (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Row of the seed cell (0-based)",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Palette colour name to fill with",
					},
				},
				"required": []string{"moose", "x", "y", "color"},
			},
		},
		{
			Name:        "moose_encode",
			Description: "Encode a moose to its compact form: palette indices in row-major order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"moose": mooseProperty(),
				},
				"required": []string{"moose"},
			},
		},
		{
			Name:        "moose_decode",
			Description: "Decode palette indices in row-major order back into rows of colour names. Fails with kind 'dimension' or 'decode_range'.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Palette indices, height*width of them",
					},
				},
				"required": []string{"image"},
			},
		},
		{
			Name:        "moose_trim",
			Description: "Crop a moose to its painted cells. Fails with kind 'empty_grid' when nothing is painted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"moose":  mooseProperty(),
					"legacy": legacyProperty(),
				},
				"required": []string{"moose"},
			},
		},
		{
			Name:        "moose_irc",
			Description: "Render a moose as mIRC colour-coded chat lines, cropped to its painted cells. Give either a stored name or a moose.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name":   nameProperty(),
					"moose":  mooseProperty(),
					"legacy": legacyProperty(),
				},
			},
		},

		// Storage
		{
			Name:        "moose_get",
			Description: "Load a stored moose by name.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": nameProperty(),
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "moose_save",
			Description: "Validate and store a new moose. Names are unique; saving over an existing moose fails with kind 'exists'.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name":  nameProperty(),
					"moose": mooseProperty(),
				},
				"required": []string{"name", "moose"},
			},
		},
		{
			Name:        "moose_random",
			Description: "Load a random stored moose.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "moose_latest",
			Description: "List the most recently created moose, newest first, with the total number stored.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of moose (default and maximum: server setting)",
					},
				},
			},
		},

		// Canvas
		{
			Name:        "moose_png",
			Description: "Paint a moose as a PNG and return it base64-encoded. Give either a stored name or a moose.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name":  nameProperty(),
					"moose": mooseProperty(),
					"trim": map[string]interface{}{
						"type":        "boolean",
						"description": "Crop the picture to the painted cells",
						"default":     false,
					},
					"grid": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw cell borders",
						"default":     false,
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Integer upscale factor (default 1)",
						"default":     1,
					},
				},
			},
		},
		{
			Name:        "moose_import",
			Description: "Turn a picture into a moose: scale it to the moose size and map every pixel to the nearest palette colour. Mostly transparent pixels stay transparent. Give a name to store the result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded PNG, JPEG, GIF, BMP or TIFF",
					},
					"name": nameProperty(),
				},
				"required": []string{"image_base64"},
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
