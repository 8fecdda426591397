package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/githubnext/synchk/internal/mapper"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/config_schema.json
var configSchema string

const schemaURL = "https://synchk.local/config_schema.json"

// Problem is one located defect in a config file.
type Problem struct {
	Line    int // 1-based; 0 when unknown
	Column  int
	Message string
}

// FileError reports every problem found in a config file.
type FileError struct {
	File     string
	Source   []string // file content split into lines, for rendering context
	Problems []Problem
}

func (e *FileError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		if p.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d:%d: %s", e.File, p.Line, p.Column, p.Message))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", e.File, p.Message))
		}
	}
	return strings.Join(parts, "\n")
}

func (e *FileError) Unwrap() error {
	return ErrInvalidConfig
}

// ValidateFile checks that path holds YAML matching the config schema.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	fileErr := &FileError{File: path, Source: strings.Split(string(data), "\n")}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		line, message := yamlErrorPosition(err)
		fileErr.Problems = append(fileErr.Problems, Problem{Line: line, Column: 1, Message: message})
		return fileErr
	}
	if doc == nil {
		doc = map[string]any{}
	}

	// Round-trip through JSON so the validator sees JSON types only.
	raw, err := json.Marshal(doc)
	if err != nil {
		fileErr.Problems = append(fileErr.Problems, Problem{Message: fmt.Sprintf("config must be a mapping with string keys: %v", err)})
		return fileErr
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return fmt.Errorf("failed to normalize config %s: %w", path, err)
	}

	schema, err := compileSchema()
	if err != nil {
		return err
	}

	err = schema.Validate(normalized)
	if err == nil {
		return nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("schema validation error for %s: %w", path, err)
	}

	for _, leaf := range leafCauses(validationErr) {
		fileErr.Problems = append(fileErr.Problems, locateProblems(data, leaf)...)
	}
	return fileErr
}

func compileSchema() (*jsonschema.Schema, error) {
	var schemaDoc any
	if err := json.Unmarshal([]byte(configSchema), &schemaDoc); err != nil {
		return nil, fmt.Errorf("failed to parse config schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return nil, fmt.Errorf("failed to add config schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile config schema: %w", err)
	}
	return schema, nil
}

func leafCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}

var (
	locationPrefix  = regexp.MustCompile(`^-?\s*at '[^']*':\s*`)
	quotedProperty  = regexp.MustCompile(`'([^']+)'`)
	additionalProps = regexp.MustCompile(`additional propert(?:y|ies) (.+?) not allowed`)
	missingProps    = regexp.MustCompile(`missing propert(?:y|ies) (.+)`)
)

// locateProblems turns one schema violation into problems positioned in the
// YAML source. An additional-properties violation yields one problem per
// offending key.
func locateProblems(data []byte, leaf *jsonschema.ValidationError) []Problem {
	message := cleanSchemaMessage(leaf.Error())
	pointer := instancePointer(leaf.InstanceLocation)

	violation := mapper.Violation{Kind: mapper.KindOther}
	var properties []string
	switch {
	case additionalProps.MatchString(message):
		violation.Kind = mapper.KindAdditionalProperties
		properties = quotedNames(additionalProps.FindStringSubmatch(message)[1])
	case missingProps.MatchString(message):
		violation.Kind = mapper.KindRequired
		properties = quotedNames(missingProps.FindStringSubmatch(message)[1])
	case strings.HasPrefix(message, "got "):
		violation.Kind = mapper.KindType
	}
	if len(properties) == 0 {
		properties = []string{""}
	}

	problems := make([]Problem, 0, len(properties))
	for _, property := range properties {
		violation.Property = property
		text := message
		if violation.Kind == mapper.KindAdditionalProperties && property != "" {
			text = fmt.Sprintf("unknown key '%s'", property)
		}

		problem := Problem{Line: 1, Column: 1, Message: text}
		if span, err := mapper.Locate(data, pointer, violation); err == nil {
			problem.Line = span.StartLine
			problem.Column = span.StartCol
		}
		problems = append(problems, problem)
	}
	return problems
}

func cleanSchemaMessage(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "jsonschema validation failed") {
			continue
		}
		kept = append(kept, locationPrefix.ReplaceAllString(line, ""))
	}
	if len(kept) == 0 {
		return "schema validation failed"
	}
	return strings.Join(kept, "; ")
}

func quotedNames(list string) []string {
	var names []string
	for _, m := range quotedProperty.FindAllStringSubmatch(list, -1) {
		names = append(names, m[1])
	}
	return names
}

func instancePointer(location []string) string {
	var b strings.Builder
	for _, segment := range location {
		segment = strings.ReplaceAll(segment, "~", "~0")
		segment = strings.ReplaceAll(segment, "/", "~1")
		b.WriteString("/")
		b.WriteString(segment)
	}
	return b.String()
}
