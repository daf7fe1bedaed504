package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/konko2/letters-recognition/internal/detection"
	"github.com/konko2/letters-recognition/internal/imaging"
	"github.com/konko2/letters-recognition/internal/ocr"
)

// cropPadding is the margin around a letter crop, in pixels.
const cropPadding = 2

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "letters_recognize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return s.resultResponse(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(result),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Recognition
	case "letters_recognize":
		return s.handleLettersRecognize(args)
	case "letters_features":
		return s.handleLettersFeatures(args)
	case "letters_feature_area":
		return s.handleLettersFeatureArea(args)
	case "letters_binarize":
		return s.handleLettersBinarize(args)
	case "letters_rules":
		return s.handleLettersRules()

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
// An empty data string is left out of the response.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{Code: code, Message: message}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{JSONRPC: "2.0", ID: id, Error: mcpErr}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Recognition Handlers ===

type lettersRecognizeArgs struct {
	Path     string `json:"path"`
	Annotate bool   `json:"annotate"`
	Crops    bool   `json:"crops"`
	Workers  int    `json:"workers"`
}

// LetterCrop is the source image region of one recognized letter.
type LetterCrop struct {
	Index  int                   `json:"index"`
	Letter string                `json:"letter"`
	Image  *imaging.EncodedImage `json:"image"`
}

// RecognizeResult is the letters_recognize output.
type RecognizeResult struct {
	*ocr.Report

	// Text is the recognized letters in reading order.
	Text string `json:"text"`

	// Annotated is the source image with recognized letters boxed and labeled.
	Annotated *imaging.EncodedImage `json:"annotated,omitempty"`

	// Crops holds one crop per recognized letter.
	Crops []LetterCrop `json:"crops,omitempty"`
}

func (s *Server) handleLettersRecognize(args json.RawMessage) (interface{}, error) {
	var a lettersRecognizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	opts := s.opts
	if a.Workers > 0 {
		opts.Workers = a.Workers
	}
	report, err := ocr.Recognize(context.Background(), img, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to recognize letters: %w", err)
	}

	result := &RecognizeResult{Report: report, Text: report.Text()}
	if a.Annotate {
		result.Annotated, err = imaging.EncodePNG(imaging.Annotate(img, report.Annotations(), s.face))
		if err != nil {
			return nil, err
		}
	}
	if a.Crops {
		for _, l := range report.Letters {
			if !l.Recognized {
				continue
			}
			crop, err := imaging.CropRegion(img, l.Bounds.Rect(), cropPadding, 1.0)
			if err != nil {
				return nil, fmt.Errorf("failed to crop letter %d: %w", l.Index, err)
			}
			result.Crops = append(result.Crops, LetterCrop{Index: l.Index, Letter: l.Letter, Image: crop})
		}
	}
	return result, nil
}

// InstanceFeatures lists the features of one ink region.
type InstanceFeatures struct {
	Index    int                     `json:"index"`
	Bounds   ocr.Bounds              `json:"bounds"`
	Eligible bool                    `json:"eligible"`
	Rescaled bool                    `json:"rescaled"`
	Present  []string                `json:"present"`
	Features detection.FeatureVector `json:"features,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

// FeaturesResult is the letters_features output.
type FeaturesResult struct {
	Instances []InstanceFeatures `json:"instances"`
	Count     int                `json:"count"`
}

func (s *Server) handleLettersFeatures(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	_, instances := ocr.Segment(img)
	result := &FeaturesResult{Instances: make([]InstanceFeatures, 0, len(instances))}
	for i, inst := range instances {
		entry := InstanceFeatures{
			Index:    i,
			Bounds:   ocr.BoundsOf(inst),
			Eligible: ocr.Eligible(inst.Size),
		}
		evaluated, rescaled, err := prepare(inst)
		entry.Rescaled = rescaled
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Features = detection.FindFeatures(evaluated)
			entry.Present = entry.Features.Present()
		}
		result.Instances = append(result.Instances, entry)
	}
	result.Count = len(result.Instances)
	return result, nil
}

// prepare is replaced in tests to exercise per-instance failures.
var prepare = ocr.Prepare

type lettersFeatureAreaArgs struct {
	Path    string  `json:"path"`
	Index   int     `json:"index"`
	Feature string  `json:"feature"`
	Scale   float64 `json:"scale"`
}

// FeatureAreaResult is the letters_feature_area output.
type FeatureAreaResult struct {
	Index          int                   `json:"index"`
	Feature        string                `json:"feature"`
	Present        bool                  `json:"present"`
	Tolerance      string                `json:"tolerance"`
	VerifyingCount int                   `json:"verifying_count"`
	Rescaled       bool                  `json:"rescaled"`
	Image          *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleLettersFeatureArea(args json.RawMessage) (interface{}, error) {
	var a lettersFeatureAreaArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	_, instances := ocr.Segment(img)
	if a.Index < 0 || a.Index >= len(instances) {
		return nil, fmt.Errorf("region index %d out of range [0, %d)", a.Index, len(instances))
	}
	inst, rescaled, err := prepare(instances[a.Index])
	if err != nil {
		return nil, err
	}

	verifying, tol, err := detection.Template(a.Feature, inst.Size)
	if err != nil {
		return nil, err
	}
	area := imaging.RenderFeatureArea(inst.Size.W, inst.Size.H, inst.Pixels, verifying, tol)
	encoded, err := imaging.CropRegion(area, area.Bounds(), 0, a.Scale)
	if err != nil {
		return nil, err
	}

	return &FeatureAreaResult{
		Index:          a.Index,
		Feature:        a.Feature,
		Present:        detection.Covers(inst.Pixels, verifying, tol),
		Tolerance:      tol.String(),
		VerifyingCount: verifying.Len(),
		Rescaled:       rescaled,
		Image:          encoded,
	}, nil
}

// BinarizeResult is the letters_binarize output.
type BinarizeResult struct {
	Threshold uint8                 `json:"threshold"`
	InkPixels int                   `json:"ink_pixels"`
	Regions   int                   `json:"regions"`
	Image     *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleLettersBinarize(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	bm, instances := ocr.Segment(img)
	encoded, err := imaging.EncodePNG(bm.Image())
	if err != nil {
		return nil, err
	}
	return &BinarizeResult{
		Threshold: bm.Threshold,
		InkPixels: bm.InkPixels().Len(),
		Regions:   len(instances),
		Image:     encoded,
	}, nil
}

// RulesResult is the letters_rules output.
type RulesResult struct {
	Features   []string        `json:"features"`
	Signatures []ocr.Signature `json:"signatures"`
}

func (s *Server) handleLettersRules() (interface{}, error) {
	return &RulesResult{
		Features:   detection.Catalog(),
		Signatures: ocr.Signatures(),
	}, nil
}
