package vrp

import "testing"

func TestMIPVerifierNoCommand(t *testing.T) {
	v := MIPVerifier{}
	if _, err := v.Verify(test_instance()); err == nil {
		t.Fatal("expected error with no command configured")
	}
}

func TestMIPVerifierParsesOutput(t *testing.T) {
	v := MIPVerifier{
		Command: []string{"/bin/sh", "-c", `echo '{"total_cost": 402, "routes": []}'`},
	}
	got, err := v.Verify(test_instance())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCost != 402 {
		t.Fatalf("total cost = %v, want 402", got.TotalCost)
	}
}

func TestMIPVerifierBadOutput(t *testing.T) {
	v := MIPVerifier{
		Command: []string{"/bin/sh", "-c", "echo not-json"},
	}
	if _, err := v.Verify(test_instance()); err == nil {
		t.Fatal("expected unmarshal error")
	}
}
