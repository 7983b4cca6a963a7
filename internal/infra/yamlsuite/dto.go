package yamlsuite

import "gopkg.in/yaml.v3"

type yamlSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Cases       []yamlCase `yaml:"cases"`
}

type yamlCase struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Optional    bool       `yaml:"optional"`
	Steps       []yamlStep `yaml:"steps"`
}

type yamlStep struct {
	Name     string `yaml:"name"`
	Function string `yaml:"function"`

	// Nodes keep "absent" apart from "null".
	Input  yaml.Node `yaml:"input"`
	Inputs yaml.Node `yaml:"inputs"`

	Limit  int            `yaml:"limit"`
	Assert yamlAssertions `yaml:"assert"`
}

type yamlAssertions struct {
	Error  string    `yaml:"error"`
	Equals yaml.Node `yaml:"equals"`
	MinMS  *int      `yaml:"min_ms"`
	MaxMS  *int      `yaml:"max_ms"`

	JSONPath map[string]yamlJSONPathAssertion `yaml:"jsonpath"`
}

type yamlJSONPathAssertion struct {
	Exists   bool     `yaml:"exists"`
	Eq       *string  `yaml:"eq"`
	Contains *string  `yaml:"contains"`
	Matches  *string  `yaml:"matches"`
	Gt       *float64 `yaml:"gt"`
	Lt       *float64 `yaml:"lt"`
}
