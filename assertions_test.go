package envelope

import "testing"

func TestAddAssertion_WrapsBareSubject(t *testing.T) {
	subject := mustLeaf(t, "Alice")
	a, err := NewAssertionWithPredObj("knows", "Bob")
	if err != nil {
		t.Fatalf("NewAssertionWithPredObj: %v", err)
	}

	node, err := AddAssertion(subject, a, false)
	if err != nil {
		t.Fatalf("AddAssertion: %v", err)
	}
	if !node.IsNode() {
		t.Fatalf("expected Node, got %v", node.Kind())
	}
	if len(node.Assertions()) != 1 {
		t.Errorf("expected 1 assertion, got %d", len(node.Assertions()))
	}
}

func TestAddAssertion_MergesIntoExistingNode(t *testing.T) {
	subject := mustLeaf(t, "Alice")
	a1, _ := NewAssertionWithPredObj("knows", "Bob")
	a2, _ := NewAssertionWithPredObj("age", 30)

	node, err := AddAssertion(subject, a1, false)
	if err != nil {
		t.Fatalf("AddAssertion: %v", err)
	}
	node2, err := AddAssertion(node, a2, false)
	if err != nil {
		t.Fatalf("AddAssertion: %v", err)
	}
	if len(node2.Assertions()) != 2 {
		t.Errorf("expected 2 assertions, got %d", len(node2.Assertions()))
	}
}

func TestAddAssertion_DedupesSameDigest(t *testing.T) {
	subject := mustLeaf(t, "Alice")
	a1, _ := NewAssertionWithPredObj("knows", "Bob")
	a1Again, _ := NewAssertionWithPredObj("knows", "Bob")

	node, err := AddAssertion(subject, a1, false)
	if err != nil {
		t.Fatalf("AddAssertion: %v", err)
	}
	node2, err := AddAssertion(node, a1Again, false)
	if err != nil {
		t.Fatalf("AddAssertion: %v", err)
	}
	if len(node2.Assertions()) != 1 {
		t.Errorf("expected duplicate assertion not to grow the set, got %d", len(node2.Assertions()))
	}
	if !node.Equal(node2) {
		t.Errorf("dedup should return an unchanged digest")
	}
}

func TestAddAssertion_AcceptsCompressedAssertion(t *testing.T) {
	subject := mustLeaf(t, "Alice")
	a, _ := NewAssertionWithPredObj("knows", "a friend whose name compresses nicely nicely nicely")
	compressedA, err := Compress(a)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	node, err := AddAssertion(subject, compressedA, false)
	if err != nil {
		t.Fatalf("expected a compressed assertion to be accepted, got %v", err)
	}
	if len(node.Assertions()) != 1 {
		t.Errorf("expected 1 assertion, got %d", len(node.Assertions()))
	}
}

func TestAddAssertion_RejectsNonAssertionEnvelope(t *testing.T) {
	subject := mustLeaf(t, "Alice")
	notAnAssertion := mustLeaf(t, "not an assertion")

	if _, err := AddAssertion(subject, notAnAssertion, false); err == nil {
		t.Errorf("expected error attaching a non-assertion envelope")
	}
}

func TestAddAssertion_Salted_ChangesDigest(t *testing.T) {
	subject := mustLeaf(t, "Alice")
	a, _ := NewAssertionWithPredObj("knows", "Bob")

	unsalted, err := AddAssertion(subject, a, false)
	if err != nil {
		t.Fatalf("AddAssertion: %v", err)
	}

	subject2 := mustLeaf(t, "Alice")
	a2, _ := NewAssertionWithPredObj("knows", "Bob")
	salted, err := AddAssertion(subject2, a2, true)
	if err != nil {
		t.Fatalf("AddAssertion salted: %v", err)
	}

	if unsalted.Equal(salted) {
		t.Errorf("salted attachment should differ from unsalted")
	}
	if len(salted.Assertions()) != 2 {
		t.Errorf("expected original assertion plus salt, got %d", len(salted.Assertions()))
	}
}
