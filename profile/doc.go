// Package profile wraps [github.com/pkg/profile] so that curly can be
// profiled without paying for it in normal builds.
//
// Profiling is compiled in only with the "pprof" build tag. Otherwise
// [Config.Start] returns a controller whose Stop does nothing.
//
// A [Config] yields a mode, an output directory, and a quiet flag:
//
//	ctrl := profile.WithQuiet(true)(profile.Make("heap", dir, false)).Start()
//	defer ctrl.Stop()
//
// [Modes] lists the mode names accepted in pprof builds (cpu, heap, and so
// on). An empty or unrecognized mode disables profiling.
//
// From the command line:
//
//	go build -tags pprof .
//	./curly -p cpu render big.tpl -d data.yaml
//	go tool pprof -http=: "$XDG_CACHE_HOME/curly/pprof/cpu.pprof"
package profile

// Tag is the build tag required to enable pprof profiling. It also names the
// cache subdirectory that receives profiles.
const Tag = `pprof`
