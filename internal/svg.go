package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"text/template"
	"time"
)

const (
	DefaultSVGURL       = "https://raw.githubusercontent.com/geolonia/japanese-prefectures/master/map-full.svg"
	DefaultSVGUserAgent = "geofix-svgpaths/1.0"
)

// SVGClient downloads the upstream map document
type SVGClient struct {
	httpClient *http.Client
	userAgent  string
}

func NewSVGClient(userAgent string, timeout time.Duration) *SVGClient {
	if userAgent == "" {
		userAgent = DefaultSVGUserAgent
	}
	return &SVGClient{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// Fetch GETs url and returns the body; non-2xx responses are errors
func (c *SVGClient) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to fetch %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}
	return string(body), nil
}

// Region is one tagged group of the map
type Region struct {
	Code int     `json:"code"`
	Path string  `json:"path"`
	TX   float64 `json:"tx"`
	TY   float64 `json:"ty"`
}

var (
	groupRe     = regexp.MustCompile(`(?s)(<g[^>]*data-code="(\d+)"[^>]*>)(.*?)</g>`)
	transformRe = regexp.MustCompile(`transform="([^"]+)"`)
	translateRe = regexp.MustCompile(`translate\(([^)]+)\)`)
	pathRe      = regexp.MustCompile(`<path\b[^>]*?\sd="([^"]*)"`)
	polygonRe   = regexp.MustCompile(`<polygon\b[^>]*?\spoints="([^"]*)"`)
	coordSepRe  = regexp.MustCompile(`[\s,]+`)
)

// ExtractRegions returns one region per data-code group, in document order.
// A region's path is every <path> of the group followed by every <polygon>.
// Missing or malformed pieces leave the zero value.
func ExtractRegions(svg string) []Region {
	var regions []Region
	for _, m := range groupRe.FindAllStringSubmatch(svg, -1) {
		code, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		r := Region{Code: code}
		r.TX, r.TY = parseTranslate(m[1])

		var parts []string
		for _, s := range pathRe.FindAllStringSubmatch(m[3], -1) {
			if s[1] != "" {
				parts = append(parts, s[1])
			}
		}
		for _, s := range polygonRe.FindAllStringSubmatch(m[3], -1) {
			if data := PolygonToPath(s[1]); data != "" {
				parts = append(parts, data)
			}
		}
		r.Path = strings.Join(parts, " ")
		regions = append(regions, r)
	}
	return regions
}

func parseTranslate(groupTag string) (float64, float64) {
	tm := transformRe.FindStringSubmatch(groupTag)
	if tm == nil {
		return 0, 0
	}
	am := translateRe.FindStringSubmatch(tm[1])
	if am == nil {
		return 0, 0
	}
	args := coordSepRe.Split(strings.TrimSpace(am[1]), -1)
	tx, _ := strconv.ParseFloat(args[0], 64)
	var ty float64
	if len(args) > 1 {
		ty, _ = strconv.ParseFloat(args[1], 64)
	}
	return tx, ty
}

// PolygonToPath turns "x1,y1 x2,y2 ..." into "Mx1,y1 Lx2,y2 ... Z".
// An odd trailing coordinate is dropped.
func PolygonToPath(points string) string {
	points = strings.TrimSpace(points)
	if points == "" {
		return ""
	}
	coords := coordSepRe.Split(points, -1)
	if len(coords) < 2 {
		return ""
	}

	parts := []string{fmt.Sprintf("M%s,%s", coords[0], coords[1])}
	for i := 2; i+1 < len(coords); i += 2 {
		parts = append(parts, fmt.Sprintf("L%s,%s", coords[i], coords[i+1]))
	}
	parts = append(parts, "Z")
	return strings.Join(parts, " ")
}

var swiftTemplate = template.Must(template.New("swift").Funcs(template.FuncMap{
	"float": swiftFloat,
	"quote": swiftQuote,
}).Parse(`// Prefecture SVG path data
// Generated by geofix svgpaths
{{range .}}
shapes[{{.Code}}] = PrefectureShapeData(
    prefectureId: {{.Code}},
    pathData: {{quote .Path}},
    transform: CGAffineTransform(translationX: {{float .TX}}, y: {{float .TY}})
)
{{end}}`))

func swiftFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func swiftQuote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// ValidateRegionFormat reports whether RenderRegions understands format
func ValidateRegionFormat(format string) error {
	switch format {
	case "", "swift", "json":
		return nil
	}
	return fmt.Errorf("unsupported output format %q (use swift or json)", format)
}

// RenderRegions writes regions as host-app source literals ("swift") or JSON
func RenderRegions(w io.Writer, regions []Region, format string) error {
	switch format {
	case "", "swift":
		return swiftTemplate.Execute(w, regions)
	case "json":
		if regions == nil {
			regions = []Region{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(regions)
	default:
		return ValidateRegionFormat(format)
	}
}
