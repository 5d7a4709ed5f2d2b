package internal

import "image/color"

// Location is a fixed point of interest that photos get tagged with
type Location struct {
	Name      string
	Category  string // tokyo set only
	City      string // kansai set only
	Latitude  float64
	Longitude float64
	Color     color.NRGBA
	Icon      string
}

// CategoryNames maps a checkpoint category to the label the app shows
var CategoryNames = map[string]string{
	"restaurant":  "レストラン",
	"cafe":        "カフェ",
	"gas_station": "ガソリンスタンド",
	"hotel":       "ホテル",
	"tourist":     "観光",
	"park":        "公園",
	"shopping":    "ショッピング",
	"transport":   "交通",
	"other":       "その他",
}

// TokyoLocations covers one spot per checkpoint category
var TokyoLocations = []Location{
	{Name: "レストラン", Category: "restaurant", Latitude: 35.6585805, Longitude: 139.7454329, Color: color.NRGBA{255, 149, 0, 255}, Icon: "🍽️"},
	{Name: "カフェ", Category: "cafe", Latitude: 35.6617773, Longitude: 139.7040506, Color: color.NRGBA{162, 132, 94, 255}, Icon: "☕"},
	{Name: "ガソリンスタンド", Category: "gas_station", Latitude: 35.6938107, Longitude: 139.7033677, Color: color.NRGBA{255, 59, 48, 255}, Icon: "⛽"},
	{Name: "ホテル", Category: "hotel", Latitude: 35.6812362, Longitude: 139.7671248, Color: color.NRGBA{175, 82, 222, 255}, Icon: "🏨"},
	{Name: "浅草寺", Category: "tourist", Latitude: 35.7147651, Longitude: 139.7966553, Color: color.NRGBA{0, 122, 255, 255}, Icon: "🗼"},
	{Name: "上野公園", Category: "park", Latitude: 35.7148245, Longitude: 139.7738466, Color: color.NRGBA{52, 199, 89, 255}, Icon: "🌳"},
	{Name: "銀座三越", Category: "shopping", Latitude: 35.6718285, Longitude: 139.7654424, Color: color.NRGBA{255, 45, 85, 255}, Icon: "🛍️"},
	{Name: "東京駅", Category: "transport", Latitude: 35.6812362, Longitude: 139.7671248, Color: color.NRGBA{90, 200, 250, 255}, Icon: "🚆"},
	{Name: "皇居", Category: "other", Latitude: 35.6851915, Longitude: 139.7527995, Color: color.NRGBA{142, 142, 147, 255}, Icon: "📍"},
}

// Kansai city labels
const (
	CityOsaka    = "大阪"
	CityKyoto    = "京都"
	CityKobe     = "神戸"
	CityNara     = "奈良"
	CityWakayama = "和歌山"
	CityShiga    = "滋賀"
)

var KansaiLocations = []Location{
	{Name: "大阪城", Latitude: 34.6873, Longitude: 135.5262, City: CityOsaka},
	{Name: "道頓堀", Latitude: 34.6686, Longitude: 135.5006, City: CityOsaka},
	{Name: "通天閣", Latitude: 34.6523, Longitude: 135.5063, City: CityOsaka},
	{Name: "梅田スカイビル", Latitude: 34.7055, Longitude: 135.4903, City: CityOsaka},
	{Name: "海遊館", Latitude: 34.6547, Longitude: 135.4291, City: CityOsaka},
	{Name: "USJ", Latitude: 34.6654, Longitude: 135.4321, City: CityOsaka},
	{Name: "天王寺動物園", Latitude: 34.6509, Longitude: 135.5097, City: CityOsaka},

	{Name: "清水寺", Latitude: 34.9949, Longitude: 135.7850, City: CityKyoto},
	{Name: "金閣寺", Latitude: 35.0394, Longitude: 135.7292, City: CityKyoto},
	{Name: "伏見稲荷大社", Latitude: 34.9671, Longitude: 135.7727, City: CityKyoto},
	{Name: "嵐山", Latitude: 35.0096, Longitude: 135.6768, City: CityKyoto},
	{Name: "祇園", Latitude: 35.0037, Longitude: 135.7783, City: CityKyoto},
	{Name: "京都駅", Latitude: 34.9859, Longitude: 135.7581, City: CityKyoto},
	{Name: "銀閣寺", Latitude: 35.0269, Longitude: 135.7983, City: CityKyoto},
	{Name: "二条城", Latitude: 35.0142, Longitude: 135.7481, City: CityKyoto},

	{Name: "神戸ポートタワー", Latitude: 34.6829, Longitude: 135.1862, City: CityKobe},
	{Name: "メリケンパーク", Latitude: 34.6808, Longitude: 135.1864, City: CityKobe},
	{Name: "北野異人館街", Latitude: 34.6958, Longitude: 135.1898, City: CityKobe},
	{Name: "六甲山", Latitude: 34.7676, Longitude: 135.2308, City: CityKobe},
	{Name: "南京町", Latitude: 34.6902, Longitude: 135.1915, City: CityKobe},

	{Name: "東大寺", Latitude: 34.6890, Longitude: 135.8398, City: CityNara},
	{Name: "奈良公園", Latitude: 34.6850, Longitude: 135.8432, City: CityNara},
	{Name: "春日大社", Latitude: 34.6812, Longitude: 135.8482, City: CityNara},
	{Name: "興福寺", Latitude: 34.6828, Longitude: 135.8323, City: CityNara},

	{Name: "和歌山城", Latitude: 34.2266, Longitude: 135.1706, City: CityWakayama},
	{Name: "高野山", Latitude: 34.2135, Longitude: 135.5804, City: CityWakayama},
	{Name: "白浜", Latitude: 33.6914, Longitude: 135.3386, City: CityWakayama},

	{Name: "彦根城", Latitude: 35.2764, Longitude: 136.2517, City: CityShiga},
	{Name: "琵琶湖", Latitude: 35.2167, Longitude: 136.1000, City: CityShiga},
}

// KansaiPalette holds the pastel base colours for kansai backgrounds
var KansaiPalette = []color.NRGBA{
	{135, 206, 235, 255}, // sky blue
	{255, 182, 193, 255}, // light pink
	{144, 238, 144, 255}, // light green
	{255, 218, 185, 255}, // peach
	{221, 160, 221, 255}, // plum
	{176, 224, 230, 255}, // powder blue
}

// LocationsIn returns the locations whose City is one of cities, in table order
func LocationsIn(locs []Location, cities ...string) []Location {
	var out []Location
	for _, l := range locs {
		for _, c := range cities {
			if l.City == c {
				out = append(out, l)
				break
			}
		}
	}
	return out
}
