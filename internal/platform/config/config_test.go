package config

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{name: "morning default", value: "11:20", want: 11*60 + 20},
		{name: "evening default", value: "16:15", want: 16*60 + 15},
		{name: "midnight", value: "00:00", want: 0},
		{name: "end of day", value: "23:59", want: 23*60 + 59},
		{name: "missing colon", value: "1120", wantErr: true},
		{name: "hour out of range", value: "24:00", wantErr: true},
		{name: "minute out of range", value: "11:60", wantErr: true},
		{name: "not numeric", value: "aa:bb", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseClock(tc.value)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ParseClock(%q) = %d, want %d", tc.value, got, tc.want)
			}
		})
	}
}

func TestValidateRequiresSecrets(t *testing.T) {
	cfg := Config{
		DatabaseURL:       "postgres://localhost/pantry",
		JWTSecret:         "secret",
		MorningEditCutoff: "11:20",
		EveningEditCutoff: "16:15",
		AdminSignupCode:   "letmein",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := cfg
	missing.JWTSecret = ""
	if err := missing.Validate(); err == nil {
		t.Fatal("expected error for missing JWT secret")
	}

	prod := cfg
	prod.Environment = "production"
	prod.AdminSignupCode = "admin"
	if err := prod.Validate(); err == nil {
		t.Fatal("expected error for default signup code in production")
	}
}
