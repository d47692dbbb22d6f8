package allocation

import "testing"

func TestDistributionValidate(t *testing.T) {
	t.Run("valid_region_breakdown", func(t *testing.T) {
		d := Distribution{"US": 60, "DM": 30, "EM": 10}
		if err := d.Validate(DimensionRegion); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("empty_distribution_is_valid_unclassified", func(t *testing.T) {
		if err := (Distribution{}).Validate(DimensionCategory); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects_unknown_label", func(t *testing.T) {
		d := Distribution{"Europe": 100}
		if err := d.Validate(DimensionRegion); err == nil {
			t.Error("expected error for unknown region label")
		}
	})

	t.Run("rejects_sum_outside_tolerance", func(t *testing.T) {
		d := Distribution{"US": 60, "DM": 30}
		if err := d.Validate(DimensionRegion); err == nil {
			t.Error("expected error for sum of 90")
		}
	})

	t.Run("rejects_negative_percentage", func(t *testing.T) {
		d := Distribution{"US": 110, "DM": -10}
		if err := d.Validate(DimensionRegion); err == nil {
			t.Error("expected error for negative percentage")
		}
	})

	t.Run("region_label_is_not_a_category_label", func(t *testing.T) {
		d := Distribution{"US": 100}
		if err := d.Validate(DimensionCategory); err == nil {
			t.Error("expected error for region label in category dimension")
		}
	})
}

func TestParseDimension(t *testing.T) {
	if _, err := ParseDimension("region"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseDimension("category"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseDimension("sector"); err == nil {
		t.Error("expected error for unsupported dimension")
	}
}

func TestFallback(t *testing.T) {
	fb := Fallback()
	if err := fb.Validate(); err != nil {
		t.Errorf("fallback classification must be valid: %v", err)
	}
	if fb.Region["US"] != 100 || fb.Category["Other"] != 100 {
		t.Errorf("unexpected fallback: %+v", fb)
	}
}

func TestParseBrokerage(t *testing.T) {
	if b, ok := ParseBrokerage("Fidelity"); !ok || b != BrokerageFidelity {
		t.Errorf("expected fidelity, got %q %v", b, ok)
	}
	if _, ok := ParseBrokerage("vanguard"); ok {
		t.Error("expected vanguard to be rejected")
	}
}
