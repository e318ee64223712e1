// Package command decodes the restricted inspection commands a model may
// request in one batch.
package command

// Command type discriminators as sent by the model.
const (
	TypeSearch   = "rg"
	TypeReadFile = "readfile"
	TypeTree     = "tree"
	TypeList     = "ls"
	TypeGlob     = "glob"
)

// Glob kind filters.
const (
	FilterFile      = "file"
	FilterDirectory = "directory"
	FilterAll       = "all"
)

// Command is one of Search, ReadFile, Tree, List or Glob.
type Command interface {
	Type() string
	isCommand()
}

// Search runs a regex content search.
type Search struct {
	Pattern string   `mapstructure:"pattern"`
	Path    string   `mapstructure:"path"`
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`
}

func (Search) Type() string { return TypeSearch }
func (Search) isCommand()   {}

func (c *Search) validate() error {
	if c.Pattern == "" {
		return &MissingFieldError{Field: "pattern"}
	}
	if c.Path == "" {
		return &MissingFieldError{Field: "path"}
	}
	return nil
}

// ReadFile reads a 1-indexed inclusive line range. Zero bounds mean the
// start or end of the file.
type ReadFile struct {
	File      string `mapstructure:"file"`
	StartLine int    `mapstructure:"start_line"`
	EndLine   int    `mapstructure:"end_line"`
}

func (ReadFile) Type() string { return TypeReadFile }
func (ReadFile) isCommand()   {}

func (c *ReadFile) validate() error {
	if c.File == "" {
		return &MissingFieldError{Field: "file"}
	}
	return nil
}

// Tree renders a directory tree. Zero Levels means the default depth.
type Tree struct {
	Path   string `mapstructure:"path"`
	Levels int    `mapstructure:"levels"`
}

func (Tree) Type() string { return TypeTree }
func (Tree) isCommand()   {}

func (c *Tree) validate() error {
	if c.Path == "" {
		return &MissingFieldError{Field: "path"}
	}
	return nil
}

// List lists a directory.
type List struct {
	Path       string `mapstructure:"path"`
	LongFormat bool   `mapstructure:"long_format"`
	All        bool   `mapstructure:"all"`
}

func (List) Type() string { return TypeList }
func (List) isCommand()   {}

func (c *List) validate() error {
	if c.Path == "" {
		return &MissingFieldError{Field: "path"}
	}
	return nil
}

// Glob matches a recursive glob pattern below Path.
type Glob struct {
	Pattern    string `mapstructure:"pattern"`
	Path       string `mapstructure:"path"`
	TypeFilter string `mapstructure:"type_filter"`
}

func (Glob) Type() string { return TypeGlob }
func (Glob) isCommand()   {}

func (c *Glob) validate() error {
	if c.Pattern == "" {
		return &MissingFieldError{Field: "pattern"}
	}
	if c.Path == "" {
		return &MissingFieldError{Field: "path"}
	}
	switch c.TypeFilter {
	case "":
		c.TypeFilter = FilterAll
	case FilterFile, FilterDirectory, FilterAll:
	default:
		return &InvalidFilterError{Value: c.TypeFilter}
	}
	return nil
}
