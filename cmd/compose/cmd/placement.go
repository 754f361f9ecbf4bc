package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/compose"
)

// parsePlacement splits "ref[@x,y[,scale[,rotation]]]". A suffix after the
// last '@' that is not a number list is treated as part of the reference.
func parsePlacement(s string) (string, compose.Partial, error) {
	i := strings.LastIndex(s, "@")
	if i < 0 {
		return s, compose.Partial{}, nil
	}
	ref, place := s[:i], s[i+1:]
	fields := strings.Split(place, ",")
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return s, compose.Partial{}, nil
		}
		vals = append(vals, v)
	}
	if ref == "" {
		return "", compose.Partial{}, fmt.Errorf("placement %q: missing reference", s)
	}

	var p compose.Partial
	switch len(vals) {
	case 4:
		p.Rotation = &vals[3]
		fallthrough
	case 3:
		p.ScaleX, p.ScaleY = &vals[2], &vals[2]
		fallthrough
	case 2:
		p.X, p.Y = &vals[0], &vals[1]
	default:
		return "", compose.Partial{}, fmt.Errorf("placement %q: want x,y[,scale[,rotation]]", s)
	}
	return ref, p, nil
}
