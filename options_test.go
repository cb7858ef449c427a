package textc

import "testing"

func TestDefaultOptionsValid(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Fatalf("DefaultOptions().Validate() = %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		field  string
	}{
		{"empty styles", func(o *Options) { o.StylesPath = "" }, "StylesPath"},
		{"empty strings", func(o *Options) { o.StringsPath = "" }, "StringsPath"},
		{"empty fonts", func(o *Options) { o.FontDir = "" }, "FontDir"},
		{"empty out", func(o *Options) { o.OutDir = "" }, "OutDir"},
		{"empty cache", func(o *Options) { o.CachePath = "" }, "CachePath"},
		{"negative workers", func(o *Options) { o.Workers = -1 }, "Workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			ce, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}
