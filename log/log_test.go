package log

import "testing"

func TestModuleByName(t *testing.T) {
	mod, ok := ModuleByName("cpu")
	if !ok || mod != ModCPU {
		t.Errorf("got (%v, %t), want (ModCPU, true)", mod, ok)
	}
	if _, ok := ModuleByName("nope"); ok {
		t.Error("unknown module should not resolve")
	}
}

func TestModuleMasks(t *testing.T) {
	if ModCPU.Enabled(DebugLevel) {
		t.Error("debug should be disabled by default")
	}
	EnableDebugModules(ModCPU.Mask())
	if !ModCPU.Enabled(DebugLevel) {
		t.Error("debug should be enabled for cpu")
	}
	if ModBus.Enabled(DebugLevel) {
		t.Error("debug should stay disabled for bus")
	}
	DisableDebugModules(ModCPU.Mask())
	if ModCPU.Enabled(DebugLevel) {
		t.Error("debug should be disabled again")
	}
}

func TestNilEntryZ(t *testing.T) {
	// A filtered-out builder must swallow everything without blowing up.
	ModCPU.DebugZ("dropped").
		Hex16("PC", 0x8000).
		Hex8("opcode", 0xEA).
		String("s", "x").
		Int("n", 1).
		Bool("b", true).
		Error("err", nil).
		End()
}
