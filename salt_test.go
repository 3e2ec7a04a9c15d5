package envelope

import "testing"

func TestAddSalt_ChangesDigestButAddsSaltSibling(t *testing.T) {
	subject := mustLeaf(t, "Alice")
	a, _ := NewAssertionWithPredObj("knows", "Bob")
	node, err := NewNode(subject, []*Envelope{a})
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}

	salted, err := addSalt(node)
	if err != nil {
		t.Fatalf("addSalt: %v", err)
	}

	if salted.Equal(node) {
		t.Errorf("salting should change the digest")
	}
	if len(salted.Assertions()) != 2 {
		t.Errorf("expected original assertion plus salt, got %d", len(salted.Assertions()))
	}

	foundSalt := false
	for _, a := range salted.Assertions() {
		if a.Assertion().Predicate().IsKnownValue() && a.Assertion().Predicate().KnownValue() == KnownValueSalt {
			foundSalt = true
		}
	}
	if !foundSalt {
		t.Errorf("expected a salt assertion among the node's assertions")
	}
}

func TestAddSalt_TwiceProducesDifferentDigests(t *testing.T) {
	e := mustLeaf(t, "x")

	s1, err := addSalt(e)
	if err != nil {
		t.Fatalf("addSalt: %v", err)
	}
	s2, err := addSalt(e)
	if err != nil {
		t.Fatalf("addSalt: %v", err)
	}
	if s1.Equal(s2) {
		t.Errorf("two independent salts should produce different digests")
	}
}
