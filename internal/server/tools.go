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

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The image stays cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Recognition
		{
			Name:        "letters_recognize",
			Description: "Recognize the letters A-J in an image. Returns one entry per connected ink region with its bounding box and letter, or \"none\" when it is not a recognizable letter.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"annotate": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the image with a labeled box around every recognized letter as base64 PNG. Default false",
						"default":     false,
					},
					"crops": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return a base64 PNG crop of every recognized letter. Default false",
						"default":     false,
					},
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Number of regions classified in parallel. Default: number of CPUs",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "letters_features",
			Description: "List the stroke features found in every connected ink region of an image, without classifying them.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "letters_feature_area",
			Description: "Render the template of one feature over one ink region for inspection. Tolerance windows are black, template pixels red and ink green.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Region index as reported by letters_recognize",
					},
					"feature": map[string]interface{}{
						"type":        "string",
						"description": "Feature name as reported by letters_rules",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor for the rendered image. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "index", "feature"},
			},
		},
		{
			Name:        "letters_binarize",
			Description: "Binarize an image with an Otsu threshold and grow the ink by one pixel, as done before recognition. Returns the threshold and the bitmap as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "letters_rules",
			Description: "Return the feature catalog and the letter signature table in match order.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return s.resultResponse(req.ID, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
