package testkit

import (
	"os"
	"testing"
)

var seam = func() string { return "real" }

func TestSwap_RestoresAfterTest(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &seam, func() string { return "fake" })
		if got := seam(); got != "fake" {
			t.Fatalf("seam = %q, want fake", got)
		}
	})
	if got := seam(); got != "real" {
		t.Fatalf("seam after subtest = %q, want real", got)
	}
}

func TestEnv(t *testing.T) {
	Env(t, map[string]string{"TESTKIT_A": "1", "TESTKIT_B": "two"})
	if os.Getenv("TESTKIT_A") != "1" || os.Getenv("TESTKIT_B") != "two" {
		t.Fatalf("env not applied")
	}
}

func TestMustPanic(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
}
