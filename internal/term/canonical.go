package term

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// DomainTerm is the domain prefix for content-addressed term identity.
// Version suffix enables future algorithm migration.
const DomainTerm = "ski/term/v1"

// MarshalCanonical produces canonical JSON for a term:
//
//	{"kind":"PartialConstant","operands":[{"kind":"Identity"}]}
//
// Keys are emitted in sorted order, strings are NFC normalized and HTML
// escaping is disabled. Primitives carry no "operands" key.
// This is the ONLY serialization used for Hash.
func MarshalCanonical(t Term) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshalCanonical(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalCanonical(buf *bytes.Buffer, t Term) error {
	if t == nil {
		return fmt.Errorf("nil term is forbidden in canonical JSON")
	}
	kind := t.Kind()
	if _, ok := kindNames[kind]; !ok {
		return fmt.Errorf("unknown term kind: %d", kind)
	}

	name, err := marshalCanonicalString(kind.String())
	if err != nil {
		return err
	}
	buf.WriteString(`{"kind":`)
	buf.Write(name)

	ops := Operands(t)
	if len(ops) > 0 {
		buf.WriteString(`,"operands":[`)
		for i, op := range ops {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalCanonical(buf, op); err != nil {
				return fmt.Errorf("operands[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')
	return nil
}

// marshalCanonicalString encodes s as a JSON string after NFC normalization,
// without HTML escaping.
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}
	// json.Encoder adds trailing newline
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalCanonical decodes JSON produced by MarshalCanonical. Unknown
// kinds, unknown keys and wrong operand counts are rejected.
func UnmarshalCanonical(data []byte) (Term, error) {
	t, err := unmarshalCanonical(data)
	if err != nil {
		return nil, fmt.Errorf("UnmarshalCanonical: %w", err)
	}
	return t, nil
}

type canonicalNode struct {
	Kind     string            `json:"kind"`
	Operands []json.RawMessage `json:"operands"`
}

// operandCounts is the number of operands each kind carries.
var operandCounts = map[Kind]int{
	KindIdentity:            0,
	KindConstant:            0,
	KindSubstitutor:         0,
	KindPartialConstant:     1,
	KindPartialSubstitutor1: 1,
	KindPartialSubstitutor2: 2,
	KindApplication:         2,
}

func unmarshalCanonical(data []byte) (Term, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var node canonicalNode
	if err := dec.Decode(&node); err != nil {
		return nil, err
	}

	kind, ok := kindByName(node.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown term kind %q", node.Kind)
	}
	if want := operandCounts[kind]; len(node.Operands) != want {
		return nil, fmt.Errorf("%s: got %d operands, want %d", node.Kind, len(node.Operands), want)
	}

	ops := make([]Term, len(node.Operands))
	for i, raw := range node.Operands {
		op, err := unmarshalCanonical(raw)
		if err != nil {
			return nil, fmt.Errorf("operands[%d]: %w", i, err)
		}
		ops[i] = op
	}

	switch kind {
	case KindIdentity:
		return I(), nil
	case KindConstant:
		return K(), nil
	case KindSubstitutor:
		return S(), nil
	case KindPartialConstant:
		return &PartialConstant{value: ops[0]}, nil
	case KindPartialSubstitutor1:
		return &PartialSubstitutor1{first: ops[0]}, nil
	case KindPartialSubstitutor2:
		return &PartialSubstitutor2{first: ops[0], second: ops[1]}, nil
	default:
		return Apply(ops[0], ops[1]), nil
	}
}

func kindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash computes the content-addressed identity of t.
// Structurally equal terms always hash equally.
func Hash(t Term) (string, error) {
	canonical, err := MarshalCanonical(t)
	if err != nil {
		return "", fmt.Errorf("Hash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTerm, canonical), nil
}

// MustHash is like Hash but panics on error.
// Use only in tests or when t is known to be well formed.
func MustHash(t Term) string {
	h, err := Hash(t)
	if err != nil {
		panic(err)
	}
	return h
}
