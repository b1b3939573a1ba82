package pipeline

import (
	stderrors "errors"
	"fmt"

	"github.com/siyuan-infoblox/sort-imports/pkg/sortconfig"
	"github.com/siyuan-infoblox/sort-imports/pkg/sorter"
)

var (
	errNoParser   = stderrors.New("no parser")
	errUnparsable = stderrors.New("unexpected token")
)

type fakeSettings struct {
	languages        []string
	defaultSortStyle string
	useCache         bool
	suppressWarnings bool
}

func (s *fakeSettings) Languages() []string                { return s.languages }
func (s *fakeSettings) DefaultSortStyle() string           { return s.defaultSortStyle }
func (s *fakeSettings) CachePackageJSONConfigChecks() bool { return s.useCache }
func (s *fakeSettings) SuppressWarnings() bool             { return s.suppressWarnings }

type resolveCall struct {
	extension string
	directory string
	defaults  sortconfig.Configs
}

// fakeResolver resolves "<extension>-parser" / "<style>" from the defaults it receives
type fakeResolver struct {
	calls []resolveCall
	err   error
}

func (r *fakeResolver) Resolve(extension, directory string, defaults sortconfig.Configs) (sortconfig.SortConfig, error) {
	r.calls = append(r.calls, resolveCall{extension, directory, defaults})
	if r.err != nil {
		return sortconfig.SortConfig{}, r.err
	}
	config, _ := defaults.ForExtension(extension)
	return sortconfig.SortConfig{Parser: extension + "-parser", Style: config.Style}, nil
}

type sortCall struct {
	code, parser, style, filePath string
}

// fakeSorter prefixes the code with the parser and style it was called with
type fakeSorter struct {
	calls []sortCall
	err   error
	panic bool
}

func (s *fakeSorter) Sort(code, parser, style, filePath string) (*sorter.Result, error) {
	s.calls = append(s.calls, sortCall{code, parser, style, filePath})
	if s.panic {
		panic("engine exploded")
	}
	if s.err != nil {
		return nil, s.err
	}
	return &sorter.Result{Code: fmt.Sprintf("// %s %s\n%s", parser, style, code), Changed: true}, nil
}

type fakeWarner struct {
	messages []string
}

func (w *fakeWarner) Warn(msg string, _ ...any) {
	w.messages = append(w.messages, msg)
}

func testDefaults() sortconfig.Configs {
	return sortconfig.Configs{
		".js, .jsx": {Parser: "js-parser", Style: "eslint"},
		".ts, .tsx": {Parser: "ts-parser", Style: "eslint"},
	}
}
