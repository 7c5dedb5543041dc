// Package output persists collection results to disk and, optionally,
// archives and uploads them.
package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Layout names the output directory and files of one run. Path segments have
// colons replaced with underscores.
type Layout struct {
	Root         string
	FunctionName string
	Start        string
	End          string
}

// NewLayout builds a Layout from the raw CLI values.
func NewLayout(root, functionName, start, end string) Layout {
	return Layout{
		Root:         root,
		FunctionName: sanitize(functionName),
		Start:        sanitize(start),
		End:          sanitize(end),
	}
}

// ExpandRoot resolves a leading ~ in the output root.
func ExpandRoot(root string) (string, error) {
	return homedir.Expand(root)
}

func sanitize(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// Dir is {root}/{function}-{start}-{end}.
func (l Layout) Dir() string {
	return filepath.Join(l.Root, fmt.Sprintf("%s-%s-%s", l.FunctionName, l.Start, l.End))
}

func (l Layout) ConfigFile() string {
	return filepath.Join(l.Dir(), l.FunctionName+"-config.json")
}

func (l Layout) StreamsFile() string {
	return filepath.Join(l.Dir(), fmt.Sprintf("%s-streams-%s-%s.json", l.FunctionName, l.Start, l.End))
}

func (l Layout) LogsFile() string {
	return filepath.Join(l.Dir(), fmt.Sprintf("%s-logs-%s-%s.json", l.FunctionName, l.Start, l.End))
}
