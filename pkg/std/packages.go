package std

import "strings"

// nodePrefix marks a module as a Node.js builtin regardless of its name
const nodePrefix = "node:"

// BuiltinModules lists the modules shipped with the Node.js runtime
var BuiltinModules = map[string]bool{
	"assert":              true,
	"async_hooks":         true,
	"buffer":              true,
	"child_process":       true,
	"cluster":             true,
	"console":             true,
	"constants":           true,
	"crypto":              true,
	"dgram":               true,
	"diagnostics_channel": true,
	"dns":                 true,
	"domain":              true,
	"events":              true,
	"fs":                  true,
	"http":                true,
	"http2":               true,
	"https":               true,
	"inspector":           true,
	"module":              true,
	"net":                 true,
	"os":                  true,
	"path":                true,
	"perf_hooks":          true,
	"process":             true,
	"punycode":            true,
	"querystring":         true,
	"readline":            true,
	"repl":                true,
	"stream":              true,
	"string_decoder":      true,
	"sys":                 true,
	"timers":              true,
	"tls":                 true,
	"trace_events":        true,
	"tty":                 true,
	"url":                 true,
	"util":                true,
	"v8":                  true,
	"vm":                  true,
	"wasi":                true,
	"worker_threads":      true,
	"zlib":                true,
}

// IsBuiltinModule checks if a module specifier refers to a Node.js builtin,
// including subpaths such as "fs/promises" and the "node:" scheme
func IsBuiltinModule(moduleName string) bool {
	if strings.HasPrefix(moduleName, nodePrefix) {
		return len(moduleName) > len(nodePrefix)
	}
	root, _, _ := strings.Cut(moduleName, "/")
	return BuiltinModules[root]
}
