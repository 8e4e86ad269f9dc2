package sheet

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Front Panel(Bazel)", want: "frontpanelbazel"},
		{in: " Model_No. ", want: "modelno"},
		{in: "screen-non-touch", want: "screennontouch"},
		{in: "Touch\tPad", want: "touchpad"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.in))
			assert.Equal(t, tt.want, Normalize(Normalize(tt.in)))
		})
	}
}

func TestRowFind(t *testing.T) {
	t.Parallel()

	value := gofakeit.Word()

	tests := []struct {
		name    string
		row     Row
		targets []string
		want    any
		found   bool
	}{
		{
			name:    "direct match ignores case and spacing",
			row:     Row{"Product Name": value},
			targets: []string{"productName"},
			want:    value,
			found:   true,
		},
		{
			name:    "touch pad with space",
			row:     Row{"touch pad": value},
			targets: []string{"touchPad"},
			want:    value,
			found:   true,
		},
		{
			name:    "touch pad camel case",
			row:     Row{"TouchPad": value},
			targets: []string{"touchPad"},
			want:    value,
			found:   true,
		},
		{
			name:    "alias match",
			row:     Row{"Brand": value},
			targets: []string{"make"},
			want:    value,
			found:   true,
		},
		{
			name:    "direct match beats alias",
			row:     Row{"Brand": "alias", "Make": value},
			targets: []string{"make"},
			want:    value,
			found:   true,
		},
		{
			name:    "later target direct match beats earlier target alias",
			row:     Row{"Model": "alias", "Model Number": value},
			targets: []string{"modelNumber", "model number"},
			want:    value,
			found:   true,
		},
		{
			name:    "earlier target wins over earlier sorted column",
			row:     Row{"Product": "short", "Product Name": value},
			targets: []string{"productName", "product name", "product"},
			want:    value,
			found:   true,
		},
		{
			name:    "first target wins on alias pass",
			row:     Row{"batt": value, "keyboard": "other"},
			targets: []string{"battery"},
			want:    value,
			found:   true,
		},
		{
			name:    "missing column",
			row:     Row{"Grade": "A"},
			targets: []string{"tagNo"},
			found:   false,
		},
		{
			name:    "empty row",
			row:     nil,
			targets: []string{"make"},
			found:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tt.row.Find(tt.targets...)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRowFindFrontPanelAliases(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"Front Panel(Bazel)", "frontpanelbazel", "bazel", "FRONT_PANEL"} {
		got, ok := Row{key: "broken"}.Find("frontPanel")
		require.True(t, ok, key)
		assert.Equal(t, "broken", got, key)
	}
}

func TestRowFindIsDeterministic(t *testing.T) {
	t.Parallel()

	row := Row{"Model": "a", "SKU": "b", "Part Number": "c"}
	first, ok := row.Find("modelNumber")
	require.True(t, ok)

	for i := 0; i < 50; i++ {
		got, _ := row.Find("modelNumber")
		assert.Equal(t, first, got)
	}
}

func TestStringify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "abc", Stringify("  abc "))
	assert.Equal(t, "1500", Stringify(float64(1500)))
	assert.Equal(t, "12.5", Stringify(12.5))
	assert.Equal(t, "8", Stringify(8))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "3.1", Stringify(decimal.RequireFromString("3.10")))
}

func TestParseDecimal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{name: "float", in: 1499.999, want: "1500", ok: true},
		{name: "int", in: 30000, want: "30000", ok: true},
		{name: "plain string", in: "1500", want: "1500", ok: true},
		{name: "thousands separator", in: "30,000.50", want: "30000.5", ok: true},
		{name: "trailing text", in: "1200 INR", want: "1200", ok: true},
		{name: "negative", in: "-5", want: "-5", ok: true},
		{name: "empty", in: "", ok: false},
		{name: "text", in: "n/a", ok: false},
		{name: "nil", in: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseDecimal(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
			}
		})
	}
}

func TestRowNullDecimal(t *testing.T) {
	t.Parallel()

	row := Row{"Front Panel": "1500", "Hinge": "unknown"}

	fp := row.NullDecimal("frontPanel")
	require.True(t, fp.Valid)
	assert.True(t, decimal.NewFromInt(1500).Equal(fp.Decimal))

	assert.False(t, row.NullDecimal("hinge").Valid)
	assert.False(t, row.NullDecimal("battery").Valid)
	assert.True(t, row.Decimal("battery").IsZero())
}

func TestIsPresent(t *testing.T) {
	t.Parallel()

	for _, v := range []any{nil, "", " ", "No", "missing", "FALSE", "0", 0, "none"} {
		assert.False(t, IsPresent(v), "%v", v)
	}
	for _, v := range []any{"8GB", 16, "yes", "256 GB"} {
		assert.True(t, IsPresent(v), "%v", v)
	}
}

func TestRowPresent(t *testing.T) {
	t.Parallel()

	row := Row{"RAM Capacity": " 8GB ", "HDD Capacity": "none"}

	ram := row.Present("ramCapacity", "ram capacity")
	require.NotNil(t, ram)
	assert.Equal(t, "8GB", *ram)
	assert.Nil(t, row.Present("hddCapacity", "hdd capacity"))
	assert.Nil(t, row.Present("ssdCapacity"))
}
