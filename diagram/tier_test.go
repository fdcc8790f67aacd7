package diagram

import "testing"

func TestTier_IsValid(t *testing.T) {
	tests := []struct {
		name string
		tier Tier
		want bool
	}{
		{"external is valid", TierExternal, true},
		{"dmz is valid", TierDMZ, true},
		{"internal is valid", TierInternal, true},
		{"data is valid", TierData, true},
		{"empty is invalid", Tier(""), false},
		{"unknown is invalid", Tier("edge"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tier.IsValid(); got != tt.want {
				t.Errorf("Tier.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Tier
		wantErr bool
	}{
		{"parse external", "external", TierExternal, false},
		{"parse dmz", "dmz", TierDMZ, false},
		{"parse internal", "internal", TierInternal, false},
		{"parse data", "data", TierData, false},
		{"invalid tier", "cloud", "", true},
		{"empty string", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTier() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseTier() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllTiers(t *testing.T) {
	tiers := AllTiers()
	if len(tiers) != 4 {
		t.Fatalf("AllTiers() returned %d tiers, want 4", len(tiers))
	}
	for _, tier := range tiers {
		if !tier.IsValid() {
			t.Errorf("AllTiers() contains invalid tier %q", tier)
		}
	}
}
