package viz

import "testing"

func TestSetTheme(t *testing.T) {
	orig := CurrentTheme
	t.Cleanup(func() { CurrentTheme = orig })

	for _, name := range ThemeNames() {
		if err := SetTheme(name); err != nil {
			t.Errorf("expected %s to be accepted, got %v", name, err)
		}
		if CurrentTheme.Name != name {
			t.Errorf("expected current theme %s, got %s", name, CurrentTheme.Name)
		}
	}

	if err := SetTheme("sepia"); err == nil {
		t.Error("expected an error for an unknown theme")
	}
	if CurrentTheme.Name != ThemeNames()[len(ThemeNames())-1] {
		t.Errorf("expected theme unchanged after a failed set, got %s", CurrentTheme.Name)
	}
}

func TestNextThemeWraps(t *testing.T) {
	orig := CurrentTheme
	t.Cleanup(func() { CurrentTheme = orig })

	CurrentTheme = Themes[len(Themes)-1]
	NextTheme()
	if CurrentTheme.Name != Themes[0].Name {
		t.Errorf("expected %s, got %s", Themes[0].Name, CurrentTheme.Name)
	}
}
