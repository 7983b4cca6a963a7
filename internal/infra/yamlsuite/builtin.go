package yamlsuite

import (
	"embed"
	"io/fs"
	"path"
	"sort"

	"github.com/aalvaropc/fnkit/internal/domain"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// BuiltinSource marks suites that ship inside the binary.
const BuiltinSource = "builtin"

// Builtin returns the suites embedded in the binary, ordered by file name.
func Builtin() ([]domain.Suite, error) {
	names, err := fs.Glob(builtinFS, "builtin/*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	suites := make([]domain.Suite, 0, len(names))
	for _, name := range names {
		b, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		s, err := parse(BuiltinSource+":"+path.Base(name), b)
		if err != nil {
			return nil, err
		}
		s.Source = BuiltinSource
		suites = append(suites, s)
	}
	return suites, nil
}
