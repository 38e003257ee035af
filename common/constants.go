package common

const (
	SrcFileExtension = ".cfgs"
	ModuleFileName   = "cfgs-mod.toml"
	CFGSVersion      = "1.4.0"
	HistoryFileName  = ".cfgs_history"
)

// DefaultMaxCallDepth is the call depth at which the interpreter gives up on a
// runaway recursion and raises a resource fault.
const DefaultMaxCallDepth = 10000
