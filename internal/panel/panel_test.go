package panel

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/drummonds/inkclock/internal/drawing"
)

func filled(w, h int, y uint8) *image.Gray {
	buf := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(buf, buf.Bounds(), image.NewUniform(color.Gray{Y: y}), image.Point{}, draw.Src)
	return buf
}

func TestImagePanelWithoutPicture(t *testing.T) {
	buf := filled(80, 106, 200)
	p := NewImagePanel(nil, drawing.FitCoverTop)
	if err := p.Render(buf); err != nil {
		t.Fatal(err)
	}
	for i, v := range buf.Pix {
		if v != 200 {
			t.Fatalf("pixel %d = %d, want 200", i, v)
		}
	}
}

func TestImagePanelPlacement(t *testing.T) {
	buf := filled(800, 1060, 255)
	p := NewImagePanel(filled(1600, 900, 0), drawing.FitCoverTop)
	if err := p.Render(buf); err != nil {
		t.Fatal(err)
	}
	if p.Placement.OffsetX != 542 || p.Placement.OffsetY != 0 {
		t.Fatalf("Placement = %+v, want offset 542,0", p.Placement)
	}
	if got := buf.GrayAt(400, 530).Y; got != 0 {
		t.Fatalf("center pixel = %d, want 0", got)
	}
}

func TestClockPanel(t *testing.T) {
	faces, err := LoadFaces("", 80)
	if err != nil {
		t.Fatal(err)
	}
	buf := filled(800, 1060, 128)
	p := NewClockPanel(800, faces, []string{"88:88", "2024-02-10 Saturday", "lunar", "Sunny +21C"})
	if err := p.Render(buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.GrayAt(5, 50).Y; got != 128 {
		t.Fatalf("outside box = %d, want untouched 128", got)
	}
	if got := buf.GrayAt(20, 300).Y; got > 64 {
		t.Fatalf("box outline = %d, want dark", got)
	}
	if got := buf.GrayAt(30, 110).Y; got != 255 {
		t.Fatalf("box inside = %d, want white", got)
	}
	dark := 0
	for y := 140; y < 240; y++ {
		for x := 200; x < 600; x++ {
			if buf.GrayAt(x, y).Y < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Fatal("no time glyphs drawn")
	}
}

func TestLoadFacesMissingFile(t *testing.T) {
	if _, err := LoadFaces("/nonexistent/font.ttf", 80); err == nil {
		t.Fatal("LoadFaces want error for missing file")
	}
}
