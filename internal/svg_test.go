package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const sampleSVG = `<svg xmlns="http://www.w3.org/2000/svg">
<g class="prefecture hokkaido" data-code="1" transform="translate(100.5, 20)">
  <path id="p1" d="M0,0 L10,0 L10,10 Z"/>
  <polygon points="10,10 20,10 20,20"/>
</g>
<g data-code="13" transform="matrix(1 0 0 1 0 0) translate(7)">
  <polygon points="1 2 3 4 5"/>
  <path d="M5,5 L6,6"/>
</g>
<g data-code="47">
  <circle cx="1" cy="1" r="1"/>
</g>
<g class="label">ignored</g>
</svg>`

func TestPolygonToPath(t *testing.T) {
	testCases := []struct {
		name   string
		points string
		want   string
	}{
		{"comma pairs", "10,10 20,10 20,20", "M10,10 L20,10 L20,20 Z"},
		{"space separated", "1 2 3 4", "M1,2 L3,4 Z"},
		{"odd trailing coordinate", "1 2 3 4 5", "M1,2 L3,4 Z"},
		{"single point", "1,2", "M1,2 Z"},
		{"too short", "1", ""},
		{"empty", "  ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PolygonToPath(tc.points); got != tc.want {
				t.Errorf("PolygonToPath(%q) = %q; want %q", tc.points, got, tc.want)
			}
		})
	}
}

func TestExtractRegions(t *testing.T) {
	regions := ExtractRegions(sampleSVG)
	if len(regions) != 3 {
		t.Fatalf("Expected 3 regions, got %d: %+v", len(regions), regions)
	}

	want := []Region{
		{Code: 1, Path: "M0,0 L10,0 L10,10 Z M10,10 L20,10 L20,20 Z", TX: 100.5, TY: 20},
		{Code: 13, Path: "M5,5 L6,6 M1,2 L3,4 Z", TX: 7, TY: 0},
		{Code: 47, Path: "", TX: 0, TY: 0},
	}
	for i, w := range want {
		if regions[i] != w {
			t.Errorf("region %d = %+v; want %+v", i, regions[i], w)
		}
	}
}

func TestExtractRegions_PathsBeforePolygons(t *testing.T) {
	svg := `<g data-code="26">
  <polygon points="1 2 3 4"/>
  <path d="M5,5 L6,6"/>
  <polygon points="7,8 9,10"/>
  <path d="M0,0 Z"/>
</g>`
	regions := ExtractRegions(svg)
	if len(regions) != 1 {
		t.Fatalf("Expected 1 region, got %d", len(regions))
	}
	want := "M5,5 L6,6 M0,0 Z M1,2 L3,4 Z M7,8 L9,10 Z"
	if regions[0].Path != want {
		t.Errorf("Path = %q; want %q", regions[0].Path, want)
	}
}

func TestExtractRegions_Empty(t *testing.T) {
	if got := ExtractRegions("<svg></svg>"); len(got) != 0 {
		t.Errorf("Expected no regions, got %+v", got)
	}
}

func TestRenderRegions_Swift(t *testing.T) {
	var buf bytes.Buffer
	regions := []Region{{Code: 13, Path: `M1,2 Z`, TX: 7, TY: 2.25}}
	if err := RenderRegions(&buf, regions, "swift"); err != nil {
		t.Fatalf("RenderRegions failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"shapes[13] = PrefectureShapeData(",
		"    prefectureId: 13,",
		`    pathData: "M1,2 Z",`,
		"    transform: CGAffineTransform(translationX: 7.0, y: 2.25)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRegions_JSON(t *testing.T) {
	var buf bytes.Buffer
	regions := []Region{{Code: 1, Path: "M0,0 Z", TX: 1, TY: 2}}
	if err := RenderRegions(&buf, regions, "json"); err != nil {
		t.Fatalf("RenderRegions failed: %v", err)
	}

	var got []Region
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Output is not JSON: %v", err)
	}
	if len(got) != 1 || got[0] != regions[0] {
		t.Errorf("Unexpected decoded regions %+v", got)
	}
}

func TestRenderRegions_UnknownFormat(t *testing.T) {
	if err := RenderRegions(&bytes.Buffer{}, nil, "yaml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestSVGClient_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path == "/missing.svg" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(sampleSVG))
	}))
	defer srv.Close()

	client := NewSVGClient("fixture-test/1.0", 5*time.Second)

	body, err := client.Fetch(context.Background(), srv.URL+"/map.svg")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if body != sampleSVG {
		t.Error("Fetched body does not match")
	}
	if gotUA != "fixture-test/1.0" {
		t.Errorf("Expected User-Agent to be sent, got %q", gotUA)
	}

	if _, err := client.Fetch(context.Background(), srv.URL+"/missing.svg"); err == nil {
		t.Error("Expected error for 404 response")
	}
}
