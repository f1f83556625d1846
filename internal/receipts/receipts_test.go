package receipts

import "testing"

func TestNewReference(t *testing.T) {
	tests := []struct {
		name       string
		prefix     string
		iterations int
	}{
		{name: "payment receipts", prefix: PrefixPayment, iterations: 100},
		{name: "exam codes", prefix: PrefixExam, iterations: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make(map[string]bool)
			for i := 0; i < tt.iterations; i++ {
				ref, err := NewReference(tt.prefix)
				if err != nil {
					t.Fatalf("NewReference() error = %v", err)
				}
				if !Valid(tt.prefix, ref) {
					t.Errorf("reference %q is not valid for prefix %q", ref, tt.prefix)
				}
				if seen[ref] {
					t.Errorf("duplicate reference generated: %s", ref)
				}
				seen[ref] = true
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"RCP-ABCDEFGH", true},
		{"EXM-ABCDEFGH", false},
		{"RCP-ABC", false},
		{"RCP-ABCDEFG0", false},
		{"RCPABCDEFGH", false},
	}
	for _, tt := range tests {
		if got := Valid(PrefixPayment, tt.ref); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}
