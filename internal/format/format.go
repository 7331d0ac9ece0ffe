// Package format reads and writes CraftStudio block trees (JSON or YAML) and
// Bedrock entity geometry files.
package format

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"cs2bedrock/internal/mathutil"
)

// Kind is the serialization of a CraftStudio model file.
type Kind int

const (
	KindJSON Kind = iota
	KindYAML
)

func (k Kind) String() string {
	if k == KindYAML {
		return "yaml"
	}
	return "json"
}

var ErrUnknownFormat = errors.New("unknown model format")

// KindFromPath picks the serialization from the file extension.
func KindFromPath(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return KindJSON, nil
	case ".yaml", ".yml":
		return KindYAML, nil
	}
	return 0, fmt.Errorf("format: %s: %w", path, ErrUnknownFormat)
}

// snapEps removes float noise left by the rotation round trip.
const snapEps = 1e-9

func snap(v mathutil.Vec3) mathutil.Vec3 {
	for i, x := range v {
		r := math.Round(x)
		if math.Abs(x-r) < snapEps {
			x = r
		}
		if x == 0 {
			x = 0 // drop negative zero
		}
		v[i] = x
	}
	return v
}
