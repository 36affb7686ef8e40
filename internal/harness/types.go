package harness

// Scenario defines a conformance test scenario: a history fixture to load
// and the verdict it's expected to produce.
type Scenario struct {
	// Name uniquely identifies this scenario, and is also the golden file
	// basename when Golden is true.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture is a path to a history fixture YAML file, relative to the
	// scenario file's own directory.
	Fixture string `yaml:"fixture"`

	// ExpectValid is the expected Report.Valid value.
	ExpectValid bool `yaml:"expect_valid"`

	// ExpectPrefixLen is the expected length of Report.LinearizablePrefix.
	ExpectPrefixLen int `yaml:"expect_prefix_len"`

	// Golden additionally compares the rendered verdict text against
	// testdata/golden/<name>.golden.
	Golden bool `yaml:"golden,omitempty"`
}
