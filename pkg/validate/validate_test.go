// pkg/validate/validate_test.go
package validate

import (
	"errors"
	"testing"
)

func TestPackageID(t *testing.T) {
	tests := []struct {
		id string
		ok bool
	}{
		{"Google.Chrome", true},
		{"Notepad++.Notepad++", true},
		{"Microsoft.VisualStudioCode", true},
		{"7zip.7zip", true},
		{"Some_Vendor-App.x64", true},
		{"", false},
		{".Leading", false},
		{"bad id;rm -rf", false},
		{"a&b", false},
		{"quote\"d", false},
		{"-flag", false},
	}
	for _, tt := range tests {
		err := PackageID(tt.id)
		if tt.ok && err != nil {
			t.Errorf("PackageID(%q) = %v, want nil", tt.id, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidID) {
			t.Errorf("PackageID(%q) = %v, want ErrInvalidID", tt.id, err)
		}
	}
}

func TestPackageNameRejectsPlus(t *testing.T) {
	if err := PackageName("Microsoft.BingWeather"); err != nil {
		t.Fatalf("PackageName: %v", err)
	}
	if err := PackageName("Notepad++"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("PackageName with '+' = %v, want ErrInvalidID", err)
	}
	if err := PackageName("*Candy*"); err == nil {
		t.Fatal("wildcards must be rejected")
	}
}

func TestSanitizeQuery(t *testing.T) {
	got := SanitizeQuery(` "vlc"; rm -rf $(whoami) | cat & ` + "`x`")
	want := "vlc rm -rf whoami  cat  x"
	if got != want {
		t.Fatalf("SanitizeQuery = %q, want %q", got, want)
	}
}
