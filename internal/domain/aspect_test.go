package domain

import "testing"

func TestAspectRatioValidate(t *testing.T) {
	tests := []struct {
		name    string
		aspect  AspectRatio
		wantErr bool
	}{
		{name: "auto is valid", aspect: AspectRatio{Value: AspectAuto}},
		{name: "named ratio is valid", aspect: AspectRatio{Value: "16:9"}},
		{name: "preset is valid before resolution", aspect: AspectRatio{Value: AspectIPhone}},
		{name: "custom with both dimensions", aspect: AspectRatio{Value: AspectCustom, Width: "1024", Height: "768"}},
		{name: "custom with zero width", aspect: AspectRatio{Value: AspectCustom, Width: "0", Height: "100"}, wantErr: true},
		{name: "custom with empty width", aspect: AspectRatio{Value: AspectCustom, Width: "", Height: "768"}, wantErr: true},
		{name: "custom with empty height", aspect: AspectRatio{Value: AspectCustom, Width: "1024", Height: ""}, wantErr: true},
		{name: "custom with negative height", aspect: AspectRatio{Value: AspectCustom, Width: "1024", Height: "-5"}, wantErr: true},
		{name: "custom with non-numeric width", aspect: AspectRatio{Value: AspectCustom, Width: "abc", Height: "768"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.aspect.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAspectRatioDimensionText(t *testing.T) {
	tests := []struct {
		name   string
		aspect AspectRatio
		want   string
	}{
		{name: "auto contributes nothing", aspect: AspectRatio{Value: AspectAuto}, want: ""},
		{name: "empty value contributes nothing", aspect: AspectRatio{}, want: ""},
		{name: "named ratio passes through", aspect: AspectRatio{Value: "16:9"}, want: "16:9"},
		{name: "custom renders pixels", aspect: AspectRatio{Value: AspectCustom, Width: "1024", Height: "768"}, want: "1024x768 px"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.aspect.DimensionText(); got != tt.want {
				t.Fatalf("DimensionText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAspectRatioResolvePreset(t *testing.T) {
	resolved := AspectRatio{Value: AspectIPhone}.ResolvePreset()
	if resolved.Value != AspectCustom {
		t.Fatalf("Value = %q, want %q", resolved.Value, AspectCustom)
	}
	if resolved.Width != "1170" || resolved.Height != "2532" {
		t.Fatalf("dimensions = %sx%s, want 1170x2532", resolved.Width, resolved.Height)
	}
	if got := resolved.DimensionText(); got != "1170x2532 px" {
		t.Fatalf("DimensionText() = %q, want %q", got, "1170x2532 px")
	}

	named := AspectRatio{Value: "4:5"}
	if got := named.ResolvePreset(); got != named {
		t.Fatalf("ResolvePreset() changed a non-preset value: %+v", got)
	}
}
