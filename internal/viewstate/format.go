package viewstate

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Share is one labelled slice of a breakdown
type Share struct {
	Label   string
	Count   int64
	Percent int
}

// Percentages turns counts into whole percentages summing to 100 using the
// largest-remainder method. Labels are ordered by count then name. A zero
// total yields zero percentages.
func Percentages(counts map[string]int64) []Share {
	shares := make([]Share, 0, len(counts))
	var total int64
	for label, count := range counts {
		if count < 0 {
			count = 0
		}
		shares = append(shares, Share{Label: label, Count: count})
		total += count
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Label < shares[j].Label
	})
	if total == 0 {
		return shares
	}

	type remainder struct {
		index int
		frac  float64
	}
	rems := make([]remainder, len(shares))
	assigned := 0
	for i := range shares {
		exact := float64(shares[i].Count) * 100 / float64(total)
		floor := int(math.Floor(exact))
		shares[i].Percent = floor
		assigned += floor
		rems[i] = remainder{index: i, frac: exact - float64(floor)}
	}
	sort.SliceStable(rems, func(i, j int) bool { return rems[i].frac > rems[j].frac })
	for i := 0; assigned < 100 && i < len(rems); i++ {
		shares[rems[i].index].Percent++
		assigned++
	}
	return shares
}

// CompactNumber renders n as 999, 1.2K, 3.4M or 1.1B
func CompactNumber(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	units := []struct {
		size   int64
		suffix string
	}{
		{1_000_000_000, "B"},
		{1_000_000, "M"},
		{1_000, "K"},
	}
	for _, u := range units {
		if n >= u.size {
			tenths := n * 10 / u.size
			return sign + strconv.FormatFloat(float64(tenths)/10, 'f', -1, 64) + u.suffix
		}
	}
	return sign + strconv.FormatInt(n, 10)
}

// Polyline scales values into a width x height box (y grows downward) and
// returns SVG points "x1,y1 x2,y2 ...". A single value is centred; a flat
// series is drawn along the vertical middle.
func Polyline(values []int64, width, height float64) string {
	if len(values) == 0 {
		return ""
	}
	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	points := make([]string, len(values))
	for i, v := range values {
		x := width / 2
		if len(values) > 1 {
			x = float64(i) * width / float64(len(values)-1)
		}
		y := height / 2
		if maxV != minV {
			y = height - float64(v-minV)*height/float64(maxV-minV)
		}
		points[i] = fmt.Sprintf("%s,%s", trim(x), trim(y))
	}
	return strings.Join(points, " ")
}

func trim(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
