package tool

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Cyclone1070/fastctx/internal/tool/command"
)

// Tool names offered to the model.
const (
	NameRestrictedExec = "restricted_exec"
	NameAnswer         = "answer"
)

// AnswerArg is the argument holding the final answer XML.
const AnswerArg = "answer"

func str(desc string) *Schema {
	return &Schema{Type: TypeString, Description: desc}
}

func constType(value, desc string) *Schema {
	return &Schema{Type: TypeString, Const: value, Description: desc}
}

func stringArray(desc string) *Schema {
	return &Schema{Type: TypeArray, Items: &Schema{Type: TypeString}, Description: desc}
}

// commandSchema describes the n-th slot of a restricted_exec call.
func commandSchema(n int) *Schema {
	return &Schema{
		Type:        TypeObject,
		Description: fmt.Sprintf("Command %d to execute. Must be one of: rg, readfile, or tree.", n),
		OneOf: []*Schema{
			{
				Properties: map[string]*Schema{
					"type":    constType(command.TypeSearch, "Search for patterns in files using ripgrep."),
					"pattern": str("The regex pattern to search for."),
					"path":    str("The path to search in."),
					"include": stringArray("File patterns to include."),
					"exclude": stringArray("File patterns to exclude."),
				},
				Required: []string{"type", "pattern", "path"},
			},
			{
				Properties: map[string]*Schema{
					"type":       constType(command.TypeReadFile, "Read contents of a file with optional line range."),
					"file":       str("Path to the file to read."),
					"start_line": {Type: TypeInteger, Description: "Starting line number (1-indexed)."},
					"end_line":   {Type: TypeInteger, Description: "Ending line number (1-indexed)."},
				},
				Required: []string{"type", "file"},
			},
			{
				Properties: map[string]*Schema{
					"type":   constType(command.TypeTree, "Display directory structure as a tree."),
					"path":   str("Path to the directory."),
					"levels": {Type: TypeInteger, Description: "Number of directory levels."},
				},
				Required: []string{"type", "path"},
			},
			{
				Properties: map[string]*Schema{
					"type":        constType(command.TypeList, "List files in a directory."),
					"path":        str("Path to the directory."),
					"long_format": {Type: TypeBoolean},
					"all":         {Type: TypeBoolean},
				},
				Required: []string{"type", "path"},
			},
			{
				Properties: map[string]*Schema{
					"type":        constType(command.TypeGlob, "Find files matching a glob pattern."),
					"pattern":     {Type: TypeString},
					"path":        {Type: TypeString},
					"type_filter": {Type: TypeString, Enum: []string{command.FilterFile, command.FilterDirectory, command.FilterAll}},
				},
				Required: []string{"type", "pattern", "path"},
			},
		},
	}
}

// Definitions returns the restricted_exec and answer tools, with
// restricted_exec accepting up to maxCommands commands per call.
func Definitions(maxCommands int) []Definition {
	props := make(map[string]*Schema, maxCommands)
	for i := 1; i <= maxCommands; i++ {
		props[fmt.Sprintf("%s%d", command.KeyPrefix, i)] = commandSchema(i)
	}

	return []Definition{
		{
			Type: "function",
			Function: Declaration{
				Name:        NameRestrictedExec,
				Description: "Execute restricted commands (rg, readfile, tree, ls, glob) in parallel.",
				Parameters: &Schema{
					Type:       TypeObject,
					Properties: props,
					Required:   []string{command.KeyPrefix + "1"},
				},
			},
		},
		{
			Type: "function",
			Function: Declaration{
				Name:        NameAnswer,
				Description: "Final answer with relevant files and line ranges.",
				Parameters: &Schema{
					Type:       TypeObject,
					Properties: map[string]*Schema{AnswerArg: str("The final answer in XML format.")},
					Required:   []string{AnswerArg},
				},
			},
		},
	}
}

// DefinitionsJSON encodes Definitions as the JSON array sent with every turn.
func DefinitionsJSON(maxCommands int) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Definitions(maxCommands)); err != nil {
		return "", fmt.Errorf("encode tool definitions: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
