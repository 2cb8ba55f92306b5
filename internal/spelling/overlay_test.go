package spelling

import "testing"

func TestReconcileTable(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
		want Plan
	}{
		{"disabled detached", Inputs{}, Plan{}},
		{"disabled attached", Inputs{Attached: true, ModeValid: true}, Plan{Detach: true, Refresh: true}},
		{"enabled detached", Inputs{Enabled: true, ModeValid: true}, Plan{Attach: true, Refresh: true}},
		{"enabled attached", Inputs{Enabled: true, ModeValid: true, Attached: true}, Plan{}},
		{"bad mode attached", Inputs{Enabled: true, Attached: true}, Plan{Detach: true, Refresh: true}},
		{"bad mode detached", Inputs{Enabled: true}, Plan{}},
		{"forced attached", Inputs{Enabled: true, ModeValid: true, Attached: true, ForcedRefresh: true}, Plan{Detach: true, Attach: true, Refresh: true}},
		{"forced detached", Inputs{Enabled: true, ModeValid: true, ForcedRefresh: true}, Plan{Attach: true, Refresh: true}},
		{"forced while disabled", Inputs{ModeValid: true, Attached: true, ForcedRefresh: true}, Plan{Detach: true}},
		{"forced bad mode", Inputs{Enabled: true, Attached: true, ForcedRefresh: true}, Plan{Detach: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reconcile(tt.in); got != tt.want {
				t.Fatalf("Reconcile(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestReconcileNeverLeavesOverlayWhenDisabled(t *testing.T) {
	for _, mode := range []bool{false, true} {
		for _, attached := range []bool{false, true} {
			for _, forced := range []bool{false, true} {
				in := Inputs{ModeValid: mode, Attached: attached, ForcedRefresh: forced}
				p := Reconcile(in)
				after := (attached && !p.Detach) || p.Attach
				if after {
					t.Fatalf("Reconcile(%+v) leaves overlay attached: %+v", in, p)
				}
			}
		}
	}
}

func TestSetEnabledAttachesAndDetaches(t *testing.T) {
	f := newFixture("hello", nil)
	f.c.SetEnabled(true)
	if !f.ed.overlay || !f.ed.styled {
		t.Fatalf("overlay not attached after enable")
	}
	if f.oracle.mode != "text" {
		t.Fatalf("oracle mode = %q, want text", f.oracle.mode)
	}
	f.c.SetEnabled(false)
	if f.ed.overlay || f.ed.styled {
		t.Fatalf("overlay still attached after disable")
	}
	if f.ed.refreshes != 2 {
		t.Fatalf("refreshes = %d, want 2", f.ed.refreshes)
	}
}

func TestSetEnabledSameValueIsNoop(t *testing.T) {
	f := newFixture("hello", nil)
	f.c.SetEnabled(false)
	if f.ed.refreshes != 0 || f.ed.adds != 0 {
		t.Fatalf("disabled -> disabled touched the view")
	}
	f.c.SetEnabled(true)
	before := f.ed.refreshes
	f.c.SetEnabled(true)
	if f.ed.refreshes != before {
		t.Fatalf("enabled -> enabled refreshed the view")
	}
}

func TestUpdateInterfaceRespectsModePolicy(t *testing.T) {
	f := newFixture("hello", nil)
	f.c.modeValid = OnlyModes("markdown")
	f.c.SetEnabled(true)
	if f.ed.overlay {
		t.Fatalf("overlay attached for mode %q", f.ed.mode)
	}
	f.ed.mode = "markdown"
	f.c.UpdateInterface()
	if !f.ed.overlay {
		t.Fatalf("overlay missing for markdown")
	}
	f.ed.mode = "go"
	f.c.UpdateInterface()
	if f.ed.overlay {
		t.Fatalf("overlay kept after switching to go")
	}
}

func TestForcedRefreshIsOneShot(t *testing.T) {
	f := newFixture("hello", nil)
	f.c.SetEnabled(true)
	f.c.RequestRefresh("doc-1")
	f.c.UpdateInterface()
	if f.ed.removes != 1 || f.ed.adds != 2 || !f.ed.overlay {
		t.Fatalf("forced refresh: removes=%d adds=%d overlay=%v", f.ed.removes, f.ed.adds, f.ed.overlay)
	}
	f.c.UpdateInterface()
	if f.ed.removes != 1 || f.ed.adds != 2 {
		t.Fatalf("forced flag not consumed: removes=%d adds=%d", f.ed.removes, f.ed.adds)
	}
}

func TestForcedRefreshForOtherDocumentWaits(t *testing.T) {
	f := newFixture("hello", nil)
	f.c.SetEnabled(true)
	f.c.RequestRefresh("doc-2")
	f.c.UpdateInterface()
	if f.ed.removes != 0 {
		t.Fatalf("refresh for doc-2 applied to doc-1")
	}
	other := newFakeEditor("doc-2", "world")
	f.ws.active = other
	f.c.UpdateInterface()
	if other.adds != 1 || other.removes != 0 {
		t.Fatalf("doc-2: adds=%d removes=%d", other.adds, other.removes)
	}
	if f.c.refresh["doc-2"] {
		t.Fatalf("forced flag for doc-2 not consumed")
	}
}

func TestUpdateInterfaceWithoutEditor(t *testing.T) {
	f := newFixture("hello", nil)
	f.ws.active = nil
	f.c.SetEnabled(true)
	f.c.UpdateInterface()
	if f.oracle.mode != "" {
		t.Fatalf("oracle mode set without an editor")
	}
}

func TestSetLocaleOnlyTouchesOracle(t *testing.T) {
	f := newFixture("hello", nil)
	f.c.SetEnabled(true)
	refreshes := f.ed.refreshes
	f.c.SetLocale("en_GB")
	if f.oracle.locale != "en_GB" {
		t.Fatalf("locale = %q", f.oracle.locale)
	}
	if f.ed.refreshes != refreshes {
		t.Fatalf("SetLocale refreshed the view")
	}
}
