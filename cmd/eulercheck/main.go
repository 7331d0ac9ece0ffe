package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cs2bedrock/internal/mathutil"
)

func main() {
	angles := flag.String("angles", "0,0,0", "Euler angles in degrees: x,y,z")
	from := flag.String("from", "YXZ", "Source axis order")
	to := flag.String("to", "LZYX", "Target axis order, or \"all\"")
	point := flag.String("point", "1,2,3", "Sample point to rotate: x,y,z")
	prec := flag.Int("prec", 4, "Decimals to print")
	flag.Parse()

	deg, err := parseVec(*angles)
	if err != nil {
		fail("-angles", err)
	}
	p, err := parseVec(*point)
	if err != nil {
		fail("-point", err)
	}
	src, err := mathutil.ParseOrder(*from)
	if err != nil {
		fail("-from", err)
	}

	targets := mathutil.Orders()
	if !strings.EqualFold(*to, "all") {
		o, err := mathutil.ParseOrder(*to)
		if err != nil {
			fail("-to", err)
		}
		targets = []mathutil.Order{o}
	}

	worst := report(os.Stdout, deg, p, src, targets, *prec)
	if worst > mathutil.Epsilon {
		fmt.Fprintf(os.Stderr, "round trip error %.3g exceeds %g\n", worst, mathutil.Epsilon)
		os.Exit(1)
	}
}

// report prints deg (in order src) re-expressed in each target order and
// returns the largest element-wise recomposition error.
func report(w io.Writer, deg, p mathutil.Vec3, src mathutil.Order, targets []mathutil.Order, prec int) float64 {
	f := mathutil.FixedFormat(prec)
	m := mathutil.Compose(src, mathutil.RadVec(deg))
	q := mathutil.QuatFromMat3(m)

	fmt.Fprintf(w, "%-5s %s\n", src, deg.Format(f))
	fmt.Fprintf(w, "      matrix  %s\n", m.Format(f))
	fmt.Fprintf(w, "      quat    %s\n", formatQuat(q, f))
	fmt.Fprintf(w, "      point   %s\n", m.MulVec3(p).Format(f))
	if mathutil.IsZeroRotation(deg) {
		fmt.Fprintln(w, "      (zero rotation, omitted in Bedrock output)")
	}

	worst := 0.0
	for _, o := range targets {
		rad := m.Euler(o)
		back := mathutil.Compose(o, rad)
		diff := m.MaxDiff(back)
		worst = max(worst, diff)

		out := mathutil.DegVec(rad)
		fmt.Fprintf(w, "%-5s %s\n", o, out.Format(f))
		fmt.Fprintf(w, "      radians %s\n", rad.Format(f))
		if o == src {
			// Same order: only whole turns or a gimbal-lock trade may differ.
			fmt.Fprintf(w, "      delta   %s\n", mathutil.AngleDistVec(deg, out).Format(f))
		}
		fmt.Fprintf(w, "      matrix  %s\n", back.Format(f))
		fmt.Fprintf(w, "      point   %s\n", back.MulVec3(p).Format(f))
		fmt.Fprintf(w, "      error   %.3g\n", diff)
	}
	return worst
}

func formatQuat(q mathutil.Quat, f func(float64) string) string {
	parts := make([]string, len(q))
	for i, v := range q {
		parts[i] = f(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func parseVec(s string) (mathutil.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mathutil.Vec3{}, fmt.Errorf("want 3 comma-separated numbers, got %q", s)
	}
	var v mathutil.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return mathutil.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}

func fail(flagName string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", flagName, err)
	os.Exit(2)
}
