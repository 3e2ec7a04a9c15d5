package envelope

import (
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/zoobzio/envelope/tags"
)

func mustLeaf(t *testing.T, v any) *Envelope {
	t.Helper()
	e, err := Leaf(v)
	if err != nil {
		t.Fatalf("Leaf(%v): %v", v, err)
	}
	return e
}

func TestEncodeDecode_Leaf(t *testing.T) {
	e := mustLeaf(t, "hello")

	data, err := EncodeCBOR(e)
	if err != nil {
		t.Fatalf("EncodeCBOR: %v", err)
	}

	got, err := DecodeCBOR(data)
	if err != nil {
		t.Fatalf("DecodeCBOR: %v", err)
	}
	if !got.Equal(e) {
		t.Errorf("digest mismatch after round trip")
	}

	var s string
	if err := got.LeafValue(&s); err != nil {
		t.Fatalf("LeafValue: %v", err)
	}
	if s != "hello" {
		t.Errorf("LeafValue = %q, want %q", s, "hello")
	}
}

func TestEncodeDecode_Wrapped(t *testing.T) {
	inner := mustLeaf(t, 42)
	wrapped, err := Wrap(inner)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if wrapped.Equal(inner) {
		t.Errorf("wrapping should change digest")
	}

	data, err := EncodeCBOR(wrapped)
	if err != nil {
		t.Fatalf("EncodeCBOR: %v", err)
	}
	got, err := DecodeCBOR(data)
	if err != nil {
		t.Fatalf("DecodeCBOR: %v", err)
	}
	if !got.Equal(wrapped) {
		t.Errorf("digest mismatch after round trip")
	}
	if !got.WrappedEnvelope().Equal(inner) {
		t.Errorf("wrapped content mismatch")
	}
}

func TestEncodeDecode_KnownValue(t *testing.T) {
	e := NewKnownValue(KnownValueSalt)

	data, err := EncodeCBOR(e)
	if err != nil {
		t.Fatalf("EncodeCBOR: %v", err)
	}
	got, err := DecodeCBOR(data)
	if err != nil {
		t.Fatalf("DecodeCBOR: %v", err)
	}
	if !got.Equal(e) {
		t.Errorf("digest mismatch")
	}
	if got.KnownValue() != KnownValueSalt {
		t.Errorf("KnownValue() = %v, want %v", got.KnownValue(), KnownValueSalt)
	}
}

func TestEncodeDecode_Assertion(t *testing.T) {
	e, err := NewAssertionWithPredObj("name", "Alice")
	if err != nil {
		t.Fatalf("NewAssertionWithPredObj: %v", err)
	}

	data, err := EncodeCBOR(e)
	if err != nil {
		t.Fatalf("EncodeCBOR: %v", err)
	}
	got, err := DecodeCBOR(data)
	if err != nil {
		t.Fatalf("DecodeCBOR: %v", err)
	}
	if !got.Equal(e) {
		t.Errorf("digest mismatch")
	}
}

func TestEncodeDecode_Node(t *testing.T) {
	subject := mustLeaf(t, "Alice")
	a1, err := NewAssertionWithPredObj("knows", "Bob")
	if err != nil {
		t.Fatalf("NewAssertionWithPredObj: %v", err)
	}
	a2, err := NewAssertionWithPredObj("age", 30)
	if err != nil {
		t.Fatalf("NewAssertionWithPredObj: %v", err)
	}

	node, err := NewNode(subject, []*Envelope{a1, a2})
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}

	data, err := EncodeCBOR(node)
	if err != nil {
		t.Fatalf("EncodeCBOR: %v", err)
	}
	got, err := DecodeCBOR(data)
	if err != nil {
		t.Fatalf("DecodeCBOR: %v", err)
	}
	if !got.Equal(node) {
		t.Errorf("digest mismatch after round trip")
	}
	if len(got.Assertions()) != 2 {
		t.Errorf("Assertions() len = %d, want 2", len(got.Assertions()))
	}
}

func TestNode_AssertionOrderIndependent(t *testing.T) {
	subject := mustLeaf(t, "Alice")
	a1, _ := NewAssertionWithPredObj("knows", "Bob")
	a2, _ := NewAssertionWithPredObj("age", 30)

	n1, err := NewNode(subject, []*Envelope{a1, a2})
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	n2, err := NewNode(subject, []*Envelope{a2, a1})
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}

	if !n1.Equal(n2) {
		t.Errorf("node digest should not depend on assertion insertion order")
	}
}

func TestNode_DeduplicatesByDigest(t *testing.T) {
	subject := mustLeaf(t, "Alice")
	a1, _ := NewAssertionWithPredObj("knows", "Bob")
	a1Dup, _ := NewAssertionWithPredObj("knows", "Bob")

	node, err := NewNode(subject, []*Envelope{a1, a1Dup})
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	if len(node.Assertions()) != 1 {
		t.Errorf("expected duplicate assertion to be deduplicated, got %d assertions", len(node.Assertions()))
	}
}

func TestDecodeCBOR_RejectsWrongOuterTag(t *testing.T) {
	data, err := encMode.Marshal(cbor.Tag{Number: 999, Content: "not an envelope"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := DecodeCBOR(data); err == nil {
		t.Errorf("expected error for wrong outer tag")
	}
}

func TestDecodeCBOR_RejectsNodeWithZeroAssertions(t *testing.T) {
	subject := mustLeaf(t, "Alice")
	subjectCBOR, err := EncodeCBOR(subject)
	if err != nil {
		t.Fatalf("EncodeCBOR: %v", err)
	}

	data, err := encMode.Marshal(cbor.Tag{
		Number:  tags.ENVELOPE,
		Content: []cbor.RawMessage{subjectCBOR},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if _, err := DecodeCBOR(data); err == nil {
		t.Errorf("expected error decoding a node array with only a subject and no assertions")
	}
}
