package hl7tree_test

import (
	"testing"

	"github.com/elanza-health/hl7tree"
	"github.com/elanza-health/hl7tree/buildertree"
	"github.com/elanza-health/hl7tree/dividertree"
)

// backends returns one Element per concrete implementation, built from the
// same wire text, so lookup behavior can be checked identically against both.
func backends(t *testing.T, wire string) map[string]hl7tree.Element {
	t.Helper()

	div, err := dividertree.NewMessage(wire)
	if err != nil {
		t.Fatalf("dividertree.NewMessage(%q): %v", wire, err)
	}

	build, err := buildertree.NewMessageBuilderFromText(wire)
	if err != nil {
		t.Fatalf("buildertree.NewMessageBuilderFromText(%q): %v", wire, err)
	}

	return map[string]hl7tree.Element{
		"dividertree": div,
		"buildertree": build,
	}
}

const sampleMessage = "MSH|^~\\&|SEND|FAC|REC|FAC2|20240101120000||ADT^A01|123|P|2.5\r" +
	"PID|1||1001||DOE^JOHN||19800101|M\r" +
	"AL1|1||PENICILLIN\r" +
	"AL1|2||PEANUTS\r"

func TestGetResolvesSimpleField(t *testing.T) {
	for name, msg := range backends(t, sampleMessage) {
		t.Run(name, func(t *testing.T) {
			got, err := hl7tree.Get(msg, "MSH.9")
			if err != nil {
				t.Fatalf("Get(MSH.9): %v", err)
			}
			if got != "ADT^A01" {
				t.Errorf("Get(MSH.9) = %q, want %q", got, "ADT^A01")
			}
		})
	}
}

func TestGetResolvesComponent(t *testing.T) {
	for name, msg := range backends(t, sampleMessage) {
		t.Run(name, func(t *testing.T) {
			got, err := hl7tree.Get(msg, "PID.5.1")
			if err != nil {
				t.Fatalf("Get(PID.5.1): %v", err)
			}
			if got != "DOE" {
				t.Errorf("Get(PID.5.1) = %q, want %q", got, "DOE")
			}

			got, err = hl7tree.Get(msg, "PID.5.2")
			if err != nil {
				t.Fatalf("Get(PID.5.2): %v", err)
			}
			if got != "JOHN" {
				t.Errorf("Get(PID.5.2) = %q, want %q", got, "JOHN")
			}
		})
	}
}

func TestGetMissingSegmentReturnsEmpty(t *testing.T) {
	for name, msg := range backends(t, sampleMessage) {
		t.Run(name, func(t *testing.T) {
			got, err := hl7tree.Get(msg, "ZZZ.1")
			if err != nil {
				t.Fatalf("Get(ZZZ.1): %v", err)
			}
			if got != "" {
				t.Errorf("Get(ZZZ.1) = %q, want empty", got)
			}
		})
	}
}

func TestGetSecondSegmentOccurrence(t *testing.T) {
	for name, msg := range backends(t, sampleMessage) {
		t.Run(name, func(t *testing.T) {
			// Segment index is 0-based: AL1[1] is the second AL1 occurrence.
			got, err := hl7tree.Get(msg, "AL1[1].3")
			if err != nil {
				t.Fatalf("Get(AL1[1].3): %v", err)
			}
			if got != "PEANUTS" {
				t.Errorf("Get(AL1[1].3) = %q, want %q", got, "PEANUTS")
			}
		})
	}
}

func TestGetAllReadsFirstOfRepeatingSegments(t *testing.T) {
	for name, msg := range backends(t, sampleMessage) {
		t.Run(name, func(t *testing.T) {
			got, err := hl7tree.GetAll(msg, "AL1.3")
			if err != nil {
				t.Fatalf("GetAll(AL1.3): %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("GetAll(AL1.3) = %v, want one value from the first AL1 occurrence", got)
			}
			if got[0] != "PENICILLIN" {
				t.Errorf("GetAll(AL1.3)[0] = %q, want %q", got[0], "PENICILLIN")
			}
		})
	}
}

func TestGetAllAcrossFieldRepetitions(t *testing.T) {
	for name, msg := range backends(t, "MSH|^~\\&|A\rPID|1||X~Y~Z\r") {
		t.Run(name, func(t *testing.T) {
			got, err := hl7tree.GetAll(msg, "PID.3")
			if err != nil {
				t.Fatalf("GetAll(PID.3): %v", err)
			}
			want := []string{"X", "Y", "Z"}
			if len(got) != len(want) {
				t.Fatalf("GetAll(PID.3) = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("GetAll(PID.3)[%d] = %q, want %q", i, got[i], want[i])
				}
			}
		})
	}
}

func TestSetWritesExistingField(t *testing.T) {
	for name, msg := range backends(t, sampleMessage) {
		t.Run(name, func(t *testing.T) {
			if err := hl7tree.Set(msg, "PID.5.1", "SMITH"); err != nil {
				t.Fatalf("Set(PID.5.1): %v", err)
			}
			got, err := hl7tree.Get(msg, "PID.5.1")
			if err != nil {
				t.Fatalf("Get(PID.5.1) after Set: %v", err)
			}
			if got != "SMITH" {
				t.Errorf("Get(PID.5.1) after Set = %q, want %q", got, "SMITH")
			}
		})
	}
}

func TestSetCreatesMissingSegment(t *testing.T) {
	for name, msg := range backends(t, "MSH|^~\\&|A\r") {
		t.Run(name, func(t *testing.T) {
			if err := hl7tree.Set(msg, "PID.3", "9999"); err != nil {
				t.Fatalf("Set(PID.3) on message without PID: %v", err)
			}
			got, err := hl7tree.Get(msg, "PID.3")
			if err != nil {
				t.Fatalf("Get(PID.3) after Set: %v", err)
			}
			if got != "9999" {
				t.Errorf("Get(PID.3) after Set = %q, want %q", got, "9999")
			}
		})
	}
}

func TestGetFieldAtAddressesSegmentDirectly(t *testing.T) {
	for name, msg := range backends(t, sampleMessage) {
		t.Run(name, func(t *testing.T) {
			loc, err := hl7tree.ParseLocation("PID.5.2")
			if err != nil {
				t.Fatalf("ParseLocation: %v", err)
			}
			pid := msg.At(2)
			if got := hl7tree.GetFieldAt(pid, loc); got != "JOHN" {
				t.Errorf("GetFieldAt(pid, PID.5.2) = %q, want %q", got, "JOHN")
			}
		})
	}
}
