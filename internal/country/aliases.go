package country

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// aliasFile is the on-disk shape of an alias overlay:
//
//	aliases:
//	  "u.a.e.": UAE
//	  "brasil": Brazil
type aliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

// LoadAliases merges extra aliases from a YAML file into the built-in
// table. Keys are lower-cased; existing entries are overridden. Call
// during startup, before Normalize is used concurrently.
func LoadAliases(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, eris.Wrapf(err, "country: read aliases %s", path)
	}

	var f aliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, eris.Wrapf(err, "country: parse aliases %s", path)
	}

	for k, v := range f.Aliases {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || strings.TrimSpace(v) == "" {
			continue
		}
		aliases[k] = strings.TrimSpace(v)
	}
	aliasOrder = rebuildOrder()

	return len(f.Aliases), nil
}

// rebuildOrder recomputes the longest-first scan order after the alias
// table changes.
func rebuildOrder() []string {
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && len(keys[j]) > len(keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
