// Package harness is a conformance testing framework: YAML-defined
// scenarios that load a history fixture, run it through Analyze, and
// assert the verdict and prefix length against the scenario's
// expectations. Scenarios that additionally declare golden: true compare
// the rendered verdict text (cli.RenderVerdict) byte-for-byte against a
// golden file.
package harness
