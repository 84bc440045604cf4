package encoding

import (
	"path/filepath"
	"testing"
)

// testMessageYAML is a test structure to use for encoding tests using YAML.
type testMessageYAML struct {
	Section struct {
		Name string `yaml:"name"`
		Age  uint   `yaml:"age"`
	} `yaml:"section"`
}

const (
	// testMessageYAMLString is the YAML-encoded form of the YAML test data.
	testMessageYAMLString = `
section:
  name: "Abraham"
  age: 56
`
	// testMessageYAMLName is the YAML test name.
	testMessageYAMLName = "Abraham"
	// testMessageYAMLAge is the YAML test age.
	testMessageYAMLAge = 56
)

// TestLoadAndUnmarshalYAML tests that loading and unmarshaling YAML data
// succeeds.
func TestLoadAndUnmarshalYAML(t *testing.T) {
	// Write the test YAML to a temporary file.
	path := writeTemporary(t, testMessageYAMLString)

	// Attempt to load and unmarshal.
	value := &testMessageYAML{}
	if err := LoadAndUnmarshalYAML(path, value); err != nil {
		t.Fatal("LoadAndUnmarshalYAML failed:", err)
	}

	// Verify test value names.
	if value.Section.Name != testMessageYAMLName {
		t.Error("test message name mismatch:", value.Section.Name, "!=", testMessageYAMLName)
	}
	if value.Section.Age != testMessageYAMLAge {
		t.Error("test message age mismatch:", value.Section.Age, "!=", testMessageYAMLAge)
	}
}

// TestLoadAndUnmarshalYAMLStrict tests that unknown fields are rejected.
func TestLoadAndUnmarshalYAMLStrict(t *testing.T) {
	path := writeTemporary(t, "section:\n  name: x\n  height: 3\n")
	if LoadAndUnmarshalYAML(path, &testMessageYAML{}) == nil {
		t.Error("unknown field accepted")
	}
}

// TestMarshalAndSaveYAML tests that saved YAML data loads back.
func TestMarshalAndSaveYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message.yml")

	value := &testMessageYAML{}
	value.Section.Name = testMessageYAMLName
	value.Section.Age = testMessageYAMLAge
	if err := MarshalAndSaveYAML(path, nil, value); err != nil {
		t.Fatal("MarshalAndSaveYAML failed:", err)
	}

	loaded := &testMessageYAML{}
	if err := LoadAndUnmarshalYAML(path, loaded); err != nil {
		t.Fatal("unable to load saved YAML:", err)
	} else if *loaded != *value {
		t.Error("loaded value does not match saved value")
	}
}
