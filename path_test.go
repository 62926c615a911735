package grove

import "testing"

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want Path
	}{
		{"position", Position},
		{"position.z", PositionZ},
		{" Rotation.Y ", RotationY},
		{"scale", Scale},
		{"rotation.x", RotationX},
	}
	for _, tt := range tests {
		got, err := ParsePath(tt.in)
		if err != nil {
			t.Errorf("ParsePath(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, in := range []string{"", "color", "position.w", "scale.xy"} {
		if _, err := ParsePath(in); err == nil {
			t.Errorf("ParsePath(%q) succeeded", in)
		}
	}
}

func TestPathStringRoundTrip(t *testing.T) {
	for _, p := range []Path{Position, PositionX, PositionY, PositionZ, Rotation, RotationY, Scale} {
		got, err := ParsePath(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePath(%q) = %v, %v", p.String(), got, err)
		}
	}
}

func TestPathComponents(t *testing.T) {
	if c := Position.components(); len(c) != 3 {
		t.Errorf("Position components = %v", c)
	}
	if c := PositionZ.components(); len(c) != 1 || c[0] != 2 {
		t.Errorf("PositionZ components = %v", c)
	}
}

func TestEasing(t *testing.T) {
	for _, name := range []string{"linear", "outBounce", "OUTBOUNCE", "inoutcubic"} {
		if fn, ok := Easing(name); !ok || fn == nil {
			t.Errorf("Easing(%q) not found", name)
		}
	}
	if _, ok := Easing("wobble"); ok {
		t.Error("Easing(wobble) found")
	}
	fn, _ := Easing("linear")
	if v := fn(0.5, 0, 1, 1); v != 0.5 {
		t.Errorf("linear(0.5) = %v", v)
	}
}
