// Package harness runs reduction scenarios described in YAML.
//
// # Scenario Format
//
//	name: numerals
//	description: "Church numerals applied to I and K"
//	specs:
//	  - defs/numerals.cue
//	max_depth: 512
//	cases:
//	  - name: twelve
//	    term: [Twelve, I, K]
//	    expect:
//	      result: K
//	      realized: Constant
//	  - name: omega
//	    term: [Omega, Omega]
//	    expect:
//	      error: depth_exceeded
//
// A term is a vocabulary name, a non-negative integer (Church numeral) or a
// list applied left-associatively. specs are CUE definition files loaded
// on top of the builtin vocabulary, relative to the scenario file.
//
// # Expectations
//
//   - result: an expression, reduced and compared structurally
//   - realized: the realized debug string
//   - error: depth_exceeded or malformed
//
// # Determinism
//
// Each scenario gets a fresh vocabulary and engine, so scenarios never see
// each other's definitions. Snapshot output contains names, outcomes and
// realized strings only, which keeps golden files stable.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/basics.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range result.Failed() {
//	    log.Println(c.Name, c.Errors)
//	}
package harness
