package inspector

import (
	"testing"

	"github.com/pthm-cable/tanksim/components"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		widget  Widget
		options map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"label", WidgetLabel, map[string]string{}},
		{"bar,max:200", WidgetBar, map[string]string{"max": "200"}},
		{"bar, of:Capacity", WidgetBar, map[string]string{"of": "Capacity"}},
		{"label,fmt:%.2f C", WidgetLabel, map[string]string{"fmt": "%.2f C"}},
		{"bool", WidgetBool, map[string]string{}},
		{"skip", WidgetSkip, map[string]string{}},
		{"dial", WidgetAuto, map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			w, opts := ParseTag(tt.tag)
			if w != tt.widget {
				t.Errorf("widget = %v, want %v", w, tt.widget)
			}
			if len(opts) != len(tt.options) {
				t.Fatalf("options = %v, want %v", opts, tt.options)
			}
			for k, v := range tt.options {
				if opts[k] != v {
					t.Errorf("options[%q] = %q, want %q", k, opts[k], v)
				}
			}
		})
	}
}

func TestExtractTankFields(t *testing.T) {
	tank := components.NewTank("TANK 2", 100, 20)
	tank.Amount = 42

	fields := ExtractFields(&tank)
	if len(fields) != 4 {
		t.Fatalf("got %d fields, want 4", len(fields))
	}

	byName := make(map[string]Field)
	for _, f := range fields {
		byName[f.Name] = f
	}

	amount, ok := byName["Amount"]
	if !ok {
		t.Fatal("missing Amount field")
	}
	if amount.Widget != WidgetBar {
		t.Errorf("Amount widget = %v, want bar", amount.Widget)
	}
	if amount.Max != 100 {
		t.Errorf("Amount max = %v, want capacity 100", amount.Max)
	}
	if got := FormatValue(byName["Temperature"].Value, byName["Temperature"].Options["fmt"]); got != "20.00 C" {
		t.Errorf("Temperature = %q", got)
	}
	if got := FormatValue(byName["Label"].Value, ""); got != "TANK 2" {
		t.Errorf("Label = %q", got)
	}
}

func TestExtractPumpFields(t *testing.T) {
	pump := components.Pump{Running: true, Temperature: 21.5}
	fields := ExtractFields(pump)
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields[0].Widget != WidgetBool || fields[0].Value != true {
		t.Errorf("Running field = %+v", fields[0])
	}
}

func TestExtractFieldsSkipsAndDetects(t *testing.T) {
	type sample struct {
		On      bool
		Count   int
		Hidden  float64 `inspect:"skip"`
		Limit   float64 `inspect:"bar,max:50"`
		Missing float64 `inspect:"bar,of:Nope"`
		private int
	}
	fields := ExtractFields(sample{On: true, Count: 3, Limit: 10, private: 1})
	if len(fields) != 4 {
		t.Fatalf("got %d fields, want 4", len(fields))
	}
	if fields[0].Widget != WidgetBool {
		t.Errorf("bool auto widget = %v", fields[0].Widget)
	}
	if fields[1].Widget != WidgetLabel {
		t.Errorf("int auto widget = %v", fields[1].Widget)
	}
	if fields[2].Max != 50 {
		t.Errorf("literal max = %v, want 50", fields[2].Max)
	}
	if fields[3].Max != 0 || fields[3].GetMax() != 1 {
		t.Errorf("unknown sibling max = %v, GetMax = %v", fields[3].Max, fields[3].GetMax())
	}
}

func TestExtractFieldsNonStruct(t *testing.T) {
	if fields := ExtractFields(3.5); fields != nil {
		t.Errorf("ExtractFields(float) = %v, want nil", fields)
	}
}

func TestFieldHeight(t *testing.T) {
	tests := []struct {
		field Field
		want  int32
	}{
		{Field{Widget: WidgetBar, Value: 1.0}, 18},
		{Field{Widget: WidgetBar, Value: "x"}, 20},
		{Field{Widget: WidgetBool, Value: true}, 18},
		{Field{Widget: WidgetLabel, Value: 2}, 20},
	}
	for _, tt := range tests {
		if got := FieldHeight(tt.field); got != tt.want {
			t.Errorf("FieldHeight(%+v) = %d, want %d", tt.field, got, tt.want)
		}
	}
}
