package envelope

import "testing"

func TestGetFormatContext_Singleton(t *testing.T) {
	a := GetFormatContext()
	b := GetFormatContext()
	if a != b {
		t.Errorf("GetFormatContext should return the same instance")
	}
}

func TestFormatContext_NameForTag(t *testing.T) {
	name, ok := GetFormatContext().NameForTag(200)
	if !ok || name != "envelope" {
		t.Errorf("NameForTag(200) = %q, %v, want %q, true", name, ok, "envelope")
	}
}

func TestFormatContext_RegisterKnownValueName(t *testing.T) {
	fc := GetFormatContext()
	fc.RegisterKnownValueName(12345, "custom")

	name, ok := fc.NameForKnownValue(12345)
	if !ok || name != "custom" {
		t.Errorf("NameForKnownValue(12345) = %q, %v, want %q, true", name, ok, "custom")
	}
}

func TestFormatContext_UnregisteredTag(t *testing.T) {
	if _, ok := GetFormatContext().NameForTag(999999); ok {
		t.Errorf("expected no name for an unregistered tag")
	}
}
