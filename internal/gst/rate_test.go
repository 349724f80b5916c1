package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRate_StandardSchedule(t *testing.T) {
	for _, rate := range []string{"0", "0.25", "3", "5", "12", "18", "28"} {
		check := ValidateRate(dec(rate))
		assert.True(t, check.Valid, "rate %s", rate)
		assert.True(t, check.Standard, "rate %s", rate)
		assert.Empty(t, check.Message)
	}
}

func TestValidateRate_NonStandard(t *testing.T) {
	check := ValidateRate(dec("17.5"))
	assert.True(t, check.Valid)
	assert.False(t, check.Standard)
	assert.Contains(t, check.Message, "17.5")
}

func TestValidateRate_OutOfRange(t *testing.T) {
	for _, rate := range []string{"-0.01", "100.01", "-5"} {
		check := ValidateRate(dec(rate))
		assert.False(t, check.Valid, "rate %s", rate)
		assert.False(t, check.Standard, "rate %s", rate)
		assert.NotEmpty(t, check.Message, "rate %s", rate)
	}
}

func TestClassifyRegion(t *testing.T) {
	cases := []struct {
		name          string
		gstin         string
		outletState   string
		customerState string
		sez           bool
		want          Region
	}{
		{"sez wins over everything", "29ABCDE1234F1Z5", "Karnataka", "Karnataka", true, RegionSEZ},
		{"no gstin cross state is export", "", "Karnataka", "Maharashtra", false, RegionExport},
		{"no gstin same state is domestic", "", "Karnataka", "Karnataka", false, RegionDomestic},
		{"gstin cross state is domestic", "27ABCDE1234F1Z5", "Karnataka", "Maharashtra", false, RegionDomestic},
		{"gstin same state is domestic", "29ABCDE1234F1Z5", "Karnataka", "Karnataka", false, RegionDomestic},
		{"blank gstin treated as absent", "   ", "Karnataka", "Goa", false, RegionExport},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyRegion(tc.gstin, tc.outletState, tc.customerState, tc.sez)
			assert.Equal(t, tc.want, got)
		})
	}
}
