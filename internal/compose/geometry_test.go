package compose

import "testing"

func TestCover(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		tgtW, tgtH   int
		want         Geometry
	}{
		{
			name: "landscape source into portrait target",
			srcW: 1920, srcH: 1080, tgtW: 720, tgtH: 1280,
			want: Geometry{ScaledWidth: 2276, ScaledHeight: 1280, CropX: 778, CropY: 0, Width: 720, Height: 1280},
		},
		{
			name: "portrait source matching target ratio",
			srcW: 1080, srcH: 1920, tgtW: 720, tgtH: 1280,
			want: Geometry{ScaledWidth: 720, ScaledHeight: 1280, CropX: 0, CropY: 0, Width: 720, Height: 1280},
		},
		{
			name: "square source into portrait target",
			srcW: 1000, srcH: 1000, tgtW: 720, tgtH: 1280,
			want: Geometry{ScaledWidth: 1280, ScaledHeight: 1280, CropX: 280, CropY: 0, Width: 720, Height: 1280},
		},
		{
			name: "source already at target size",
			srcW: 640, srcH: 480, tgtW: 640, tgtH: 480,
			want: Geometry{ScaledWidth: 640, ScaledHeight: 480, CropX: 0, CropY: 0, Width: 640, Height: 480},
		},
		{
			name: "tall source into landscape target",
			srcW: 600, srcH: 1200, tgtW: 1280, tgtH: 720,
			want: Geometry{ScaledWidth: 1280, ScaledHeight: 2560, CropX: 0, CropY: 920, Width: 1280, Height: 720},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cover(tt.srcW, tt.srcH, tt.tgtW, tt.tgtH)
			if got != tt.want {
				t.Errorf("Cover(%d, %d, %d, %d) = %+v, want %+v",
					tt.srcW, tt.srcH, tt.tgtW, tt.tgtH, got, tt.want)
			}
		})
	}
}

func TestCoverAlwaysFillsTarget(t *testing.T) {
	// Any source aspect ratio must produce a scaled image at least as large
	// as the target in both dimensions, with a crop window inside it.
	sizes := [][2]int{{100, 100}, {3000, 500}, {500, 3000}, {721, 1281}, {1, 1}, {7, 13}}

	for _, s := range sizes {
		g := Cover(s[0], s[1], 720, 1280)

		if g.ScaledWidth < 720 || g.ScaledHeight < 1280 {
			t.Errorf("source %dx%d: scaled %dx%d does not cover 720x1280",
				s[0], s[1], g.ScaledWidth, g.ScaledHeight)
		}
		if g.CropX < 0 || g.CropY < 0 {
			t.Errorf("source %dx%d: negative crop origin (%d, %d)", s[0], s[1], g.CropX, g.CropY)
		}
		if g.CropX+g.Width > g.ScaledWidth || g.CropY+g.Height > g.ScaledHeight {
			t.Errorf("source %dx%d: crop window exceeds scaled bounds", s[0], s[1])
		}
		if g.Width != 720 || g.Height != 1280 {
			t.Errorf("source %dx%d: frame is %dx%d, want 720x1280", s[0], s[1], g.Width, g.Height)
		}
	}
}
