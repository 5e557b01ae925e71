package rates

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BasePayYear is the year of the embedded basic pay, BAS and BAH tables
const BasePayYear = 2024

// years-of-service columns of the basic pay table ("over N")
var yosColumns = []int{0, 2, 3, 4, 6, 8, 10, 12, 14, 16, 18, 20}

// monthly basic pay; "" marks a cell a grade cannot reach
var basePay = map[string][]string{
	"E-1": {"2017.20", "2017.20", "2017.20", "2017.20", "2017.20", "2017.20", "2017.20", "2017.20", "2017.20", "2017.20", "2017.20", "2017.20"},
	"E-2": {"2261.40", "2261.40", "2261.40", "2261.40", "2261.40", "2261.40", "2261.40", "2261.40", "2261.40", "2261.40", "2261.40", "2261.40"},
	"E-3": {"2378.10", "2527.50", "2680.80", "2680.80", "2680.80", "2680.80", "2680.80", "2680.80", "2680.80", "2680.80", "2680.80", "2680.80"},
	"E-4": {"2634.00", "2768.70", "2919.00", "3066.90", "3197.70", "3197.70", "3197.70", "3197.70", "3197.70", "3197.70", "3197.70", "3197.70"},
	"E-5": {"2802.00", "2990.70", "3135.30", "3283.20", "3513.60", "3754.50", "3952.80", "3976.50", "3976.50", "3976.50", "3976.50", "3976.50"},
	"E-6": {"3058.50", "3365.70", "3514.50", "3658.80", "3808.80", "4147.80", "4279.80", "4535.40", "4613.40", "4670.40", "4736.70", "4736.70"},
	"E-7": {"3536.10", "3859.50", "4007.40", "4202.70", "4356.00", "4618.50", "4766.40", "5028.90", "5247.60", "5397.00", "5555.40", "5617.20"},
	"E-8": {"", "", "", "", "", "5087.10", "5312.10", "5451.30", "5617.80", "5798.70", "6125.10", "6290.40"},
	"E-9": {"", "", "", "", "", "", "6214.20", "6354.90", "6532.50", "6741.30", "6952.50", "7289.40"},
	"O-1": {"3826.20", "3982.80", "4814.70", "4814.70", "4814.70", "4814.70", "4814.70", "4814.70", "4814.70", "4814.70", "4814.70", "4814.70"},
	"O-2": {"4408.50", "5020.80", "5782.80", "5978.10", "6101.10", "6101.10", "6101.10", "6101.10", "6101.10", "6101.10", "6101.10", "6101.10"},
	"O-3": {"5102.10", "5783.40", "6241.80", "6825.90", "7153.20", "7512.30", "7744.20", "8125.50", "8325.30", "8325.30", "8325.30", "8325.30"},
	"O-4": {"5803.20", "6717.60", "7166.40", "7265.70", "7681.80", "8128.20", "8684.40", "9116.70", "9417.30", "9589.80", "9689.70", "9689.70"},
	"O-5": {"6725.70", "7576.50", "8100.60", "8199.60", "8527.20", "8722.50", "9153.00", "9469.50", "9877.50", "10501.80", "10799.40", "11093.40"},
	"O-6": {"8067.90", "8863.50", "9445.50", "9445.50", "9481.50", "9887.70", "9941.70", "9941.70", "10506.60", "11505.60", "12091.80", "12677.70"},
}

var (
	basEnlisted = decimal.RequireFromString("460.25")
	basOfficer  = decimal.RequireFromString("316.98")
)

// NormalizeGrade accepts "E5", "e-5" or "E-5" and returns "E-5"
func NormalizeGrade(grade string) string {
	g := strings.ToUpper(strings.TrimSpace(grade))
	g = strings.ReplaceAll(g, " ", "")
	if len(g) >= 2 && g[1] != '-' {
		g = g[:1] + "-" + g[1:]
	}
	return g
}

// IsOfficer reports whether the grade is a commissioned or warrant officer grade
func IsOfficer(grade string) bool {
	g := NormalizeGrade(grade)
	return strings.HasPrefix(g, "O-") || strings.HasPrefix(g, "W-")
}

// Grades lists the grades in the basic pay table
func Grades() []string {
	return []string{"E-1", "E-2", "E-3", "E-4", "E-5", "E-6", "E-7", "E-8", "E-9", "O-1", "O-2", "O-3", "O-4", "O-5", "O-6"}
}

// BasePay returns monthly basic pay for a grade and completed years of service.
// The column is the highest "over N" bracket at or below yearsOfService.
func BasePay(grade string, yearsOfService int) (decimal.Decimal, bool) {
	row, ok := basePay[NormalizeGrade(grade)]
	if !ok || yearsOfService < 0 {
		return decimal.Zero, false
	}
	col := 0
	for i, y := range yosColumns {
		if yearsOfService >= y {
			col = i
		}
	}
	if row[col] == "" {
		return decimal.Zero, false
	}
	return decimal.RequireFromString(row[col]), true
}

// BAS returns the monthly subsistence allowance
func BAS(grade string) decimal.Decimal {
	if IsOfficer(grade) {
		return basOfficer
	}
	return basEnlisted
}

// BAH grade bands; E-1 through E-4 share one rate
var bahBands = []string{"E-4", "E-5", "E-6", "E-7", "E-8", "E-9", "O-1", "O-2", "O-3", "O-4", "O-5", "O-6"}

type bahArea struct {
	name    string
	withDep []int64
	without []int64
}

// sample Military Housing Areas
var bahAreas = map[string]bahArea{
	"TX286": {
		name:    "Fort Cavazos, TX",
		withDep: []int64{1641, 1794, 1947, 2037, 2115, 2193, 1713, 1830, 1977, 2217, 2370, 2427},
		without: []int64{1302, 1446, 1593, 1689, 1776, 1845, 1380, 1521, 1713, 1872, 1926, 1971},
	},
	"CA038": {
		name:    "San Diego, CA",
		withDep: []int64{3585, 3795, 4008, 4143, 4278, 4410, 3657, 3942, 4275, 4605, 4899, 5004},
		without: []int64{2838, 3054, 3270, 3375, 3483, 3615, 2931, 3180, 3573, 3855, 4020, 4152},
	},
	"VA298": {
		name:    "Norfolk/Portsmouth, VA",
		withDep: []int64{2166, 2397, 2628, 2739, 2853, 2961, 2226, 2475, 2754, 2982, 3111, 3180},
		without: []int64{1764, 1965, 2166, 2259, 2352, 2430, 1830, 2040, 2298, 2502, 2586, 2637},
	},
	"NC182": {
		name:    "Fort Liberty/Fayetteville, NC",
		withDep: []int64{1692, 1848, 1989, 2079, 2163, 2238, 1749, 1881, 2013, 2250, 2409, 2466},
		without: []int64{1353, 1494, 1635, 1731, 1812, 1878, 1419, 1566, 1749, 1905, 1962, 2007},
	},
}

func bahBand(grade string) int {
	g := NormalizeGrade(grade)
	switch g {
	case "E-1", "E-2", "E-3":
		g = "E-4"
	}
	for i, b := range bahBands {
		if b == g {
			return i
		}
	}
	return -1
}

// BAH returns the monthly housing allowance for a Military Housing Area, grade and
// dependency status. ok is false for an unknown area or grade.
func BAH(localityCode, grade string, hasDependents bool) (decimal.Decimal, bool) {
	area, ok := bahAreas[strings.ToUpper(strings.TrimSpace(localityCode))]
	if !ok {
		return decimal.Zero, false
	}
	band := bahBand(grade)
	if band < 0 {
		return decimal.Zero, false
	}
	if hasDependents {
		return decimal.NewFromInt(area.withDep[band]), true
	}
	return decimal.NewFromInt(area.without[band]), true
}

// LocalityName returns the display name of a Military Housing Area
func LocalityName(localityCode string) (string, bool) {
	area, ok := bahAreas[strings.ToUpper(strings.TrimSpace(localityCode))]
	return area.name, ok
}
