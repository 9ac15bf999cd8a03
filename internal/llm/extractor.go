package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractionSchema describes a structured extraction task: the instruction
// preamble and the JSON fields the model must return.
type ExtractionSchema struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// SchemaField is one field of the extraction output.
type SchemaField struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// BuildExtractionPrompt renders schema and the input text into a prompt.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\nReturn ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		fmt.Fprintf(&sb, "  %q: %s", field.Name, typeHint)
		if field.Required {
			sb.WriteString(" (required)")
		}
		if field.Description != "" {
			fmt.Fprintf(&sb, " // %s", field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent anything.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// Extract runs schema against inputText and decodes the JSON answer into out.
func Extract(ctx context.Context, client Client, tier ModelTier, schema ExtractionSchema, inputText string, out any) error {
	raw, err := client.GenerateJSON(ctx, BuildExtractionPrompt(schema, inputText), tier)
	if err != nil {
		return fmt.Errorf("%s extraction: %w", schema.Name, err)
	}
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), out); err != nil {
		return fmt.Errorf("%s extraction: invalid JSON: %w", schema.Name, err)
	}
	return nil
}

// PrerequisiteSchema extracts course codes from a roster prerequisite sentence.
func PrerequisiteSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "Prerequisites",
		Description: `You parse university course prerequisite text.
List every course code mentioned, in the order it appears, formatted as SUBJECT NUMBER (for example "CS 2110").
"CS 2110 and (MATH 1920 or MATH 1910)" yields ["CS 2110", "MATH 1920", "MATH 1910"].`,
		Fields: []SchemaField{
			{
				Name:        "courses",
				Type:        `["string"]`,
				Description: "course codes mentioned in the text",
				Required:    true,
			},
		},
	}
}
