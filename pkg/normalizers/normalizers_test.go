package normalizers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"english", "Tel Aviv", "tel aviv"},
		{"english hyphenated with suffix", "Tel-Aviv-Yafo", "tel aviv"},
		{"english abbreviation", "TLV", "tel aviv"},
		{"hebrew", "תל אביב", "tel aviv"},
		{"hebrew with suffix", "תל אביב יפו", "tel aviv"},
		{"arabic", "تل أبيب", "tel aviv"},
		{"jerusalem hebrew", "ירושלים", "jerusalem"},
		{"jerusalem arabic", "القدس", "jerusalem"},
		{"haifa hebrew", "חיפה", "haifa"},
		{"beer sheva variant", "Beersheba", "beer sheva"},
		{"petah tikva variant", "Petach Tikvah", "petah tikva"},
		{"whitespace collapsed", "  tel   aviv  ", "tel aviv"},
		{"unknown passes through cleaned", "  Kfar   Saba ", "kfar saba"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeLocation(tt.input))
		})
	}
}

func TestNormalizeLocationIdempotent(t *testing.T) {
	inputs := []string{"Tel Aviv", "תל אביב", "تل أبيب", "Kfar Saba", ""}
	for _, input := range inputs {
		once := NormalizeLocation(input)
		assert.Equal(t, once, NormalizeLocation(once), "input %q", input)
	}
}

func TestNormalizePropertyType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"english", "Apartment", "apartment"},
		{"english plural", "apartments", "apartment"},
		{"english synonym", "flat", "apartment"},
		{"hebrew", "דירה", "apartment"},
		{"arabic", "شقة", "apartment"},
		{"villa hebrew", "וילה", "villa"},
		{"penthouse hebrew", "פנטהאוז", "penthouse"},
		{"land hebrew", "מגרש", "land"},
		{"office arabic", "مكتب", "office"},
		{"unknown passes through cleaned", "Castle", "castle"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePropertyType(tt.input))
		})
	}
}

func TestNormalizePropertyTypeIdempotent(t *testing.T) {
	inputs := []string{"Apartment", "דירה", "شقة", "Castle"}
	for _, input := range inputs {
		once := NormalizePropertyType(input)
		assert.Equal(t, once, NormalizePropertyType(once), "input %q", input)
	}
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, "for_sale", NormalizeStatus("For Sale"))
	assert.Equal(t, "for_sale", NormalizeStatus("למכירה"))
	assert.Equal(t, "for_sale", NormalizeStatus("للبيع"))
	assert.Equal(t, "for_rent", NormalizeStatus("rental"))
	assert.Equal(t, "for_rent", NormalizeStatus("להשכרה"))
	assert.Equal(t, "for_rent", NormalizeStatus("for_rent"))
	assert.Equal(t, "lease to own", NormalizeStatus("Lease To Own"))
}

func TestNormalizeIntent(t *testing.T) {
	assert.Equal(t, "buyer", NormalizeIntent("Buying"))
	assert.Equal(t, "buyer", NormalizeIntent("קונה"))
	assert.Equal(t, "renter", NormalizeIntent("tenant"))
	assert.Equal(t, "renter", NormalizeIntent("שוכר"))
	assert.Equal(t, "both", NormalizeIntent("Both"))
	assert.Equal(t, "unknown", NormalizeIntent(""))
	assert.Equal(t, "unknown", NormalizeIntent("investor"))
}

func TestNormalizeTypeList(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected []string
	}{
		{"nil", nil, []string{}},
		{"scalar string", "דירה", []string{"apartment"}},
		{"string slice", []string{"Apartment", "וילה"}, []string{"apartment", "villa"}},
		{"any slice", []any{"penthouse", "דופלקס"}, []string{"penthouse", "duplex"}},
		{"any slice with non-string", []any{"studio", 7}, []string{"studio"}},
		{"json array", json.RawMessage(`["דירה","villa"]`), []string{"apartment", "villa"}},
		{"json scalar", json.RawMessage(`"בית"`), []string{"house"}},
		{"json empty", json.RawMessage(``), []string{}},
		{"raw free text", json.RawMessage(`קוטג`), []string{"cottage"}},
		{"unsupported type", 42, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTypeList(tt.input))
		})
	}
}
