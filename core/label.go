package core

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/huangsam/tpmplot/schema"
)

// vuPattern matches the virtual-user count in result file names like testA_my_10Vu_50Wh.json.
var vuPattern = regexp.MustCompile(`(\d+)Vu`)

// DeriveLabel returns the legend label for a series. An explicit label always wins.
func DeriveLabel(explicit string, strategy schema.LabelStrategy, path, key string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}
	stem := fileStem(path)
	switch strategy {
	case schema.LabelByVU:
		if m := vuPattern.FindStringSubmatch(filepath.Base(path)); m != nil {
			return m[1] + "Vu"
		}
		return stem
	case schema.LabelByFile:
		return stem
	default:
		if engine := strings.TrimSpace(strings.TrimSuffix(key, " tpm")); engine != "" {
			return engine
		}
		return stem
	}
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
