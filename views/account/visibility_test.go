package account

import "testing"

func TestToggleIsInvolutive(t *testing.T) {
	all := []Dialog{
		DialogDelete, DialogEdit, DialogExport, DialogFaucet,
		DialogFund, DialogPassword, DialogTransfer, DialogVerification,
	}

	for _, d := range all {
		t.Run(string(d), func(t *testing.T) {
			v := NewVisibility()
			v.Toggle(d)
			if !v.Open(d) {
				t.Fatalf("flag %s not set after toggle", d)
			}
			for _, other := range all {
				if other != d && v.Open(other) {
					t.Errorf("toggling %s also set %s", d, other)
				}
			}
			v.Toggle(d)
			if v.Open(d) {
				t.Errorf("flag %s still set after second toggle", d)
			}
		})
	}
}

func TestFlagsAreIndependent(t *testing.T) {
	v := NewVisibility()
	v.Toggle(DialogTransfer)
	v.Toggle(DialogDelete)

	if !v.Open(DialogTransfer) || !v.Open(DialogDelete) {
		t.Fatal("flags must not exclude each other")
	}

	// fixed order decides which one renders
	if d, open := v.Active(); !open || d != DialogTransfer {
		t.Errorf("Active() = %v, want transfer first", d)
	}

	v.Toggle(DialogTransfer)
	if d, _ := v.Active(); d != DialogDelete {
		t.Errorf("Active() = %v after closing transfer, want delete", d)
	}
}

func TestActiveEmpty(t *testing.T) {
	v := NewVisibility()
	if _, open := v.Active(); open {
		t.Error("fresh visibility should have no active dialog")
	}
}
