package debug

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Logf writes to stderr. Map and slice arguments are rendered as indented
// YAML.
func Logf(msg string, args ...any) {
	for i := range args {
		switch a := args[i].(type) {
		case map[string]any, []any, []string:
			d, err := yaml.Marshal(a)
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = "   |" + strings.ReplaceAll(strings.TrimRight(string(d), "\n"), "\n", "\n   |")
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
