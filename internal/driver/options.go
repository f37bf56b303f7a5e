package driver

import (
	"fmt"

	"playscript/internal/sema"
)

// Stage определяет, до какой фазы доходит анализ.
type Stage string

const (
	StageTokenize Stage = "tokenize"
	StageSyntax   Stage = "syntax"
	StageScopes   Stage = "scopes"
	StageAll      Stage = "all"
)

// ParseStage validates a --stage flag value.
func ParseStage(s string) (Stage, error) {
	switch st := Stage(s); st {
	case "":
		return StageAll, nil
	case StageTokenize, StageSyntax, StageScopes, StageAll:
		return st, nil
	}
	return StageAll, fmt.Errorf("unknown stage %q (expected tokenize|syntax|scopes|all)", s)
}

// Options configures a driver run. The zero value analyses fields only,
// without a diagnostic limit, on GOMAXPROCS workers.
type Options struct {
	Stage            Stage
	Mode             sema.Mode
	MaxDiagnostics   int
	CheckCycles      bool
	Validate         bool
	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool
	Jobs             int
	// Cache, when set, short-circuits files whose content and options were
	// seen before. Cached results carry diagnostics only.
	Cache    *DiskCache
	Observer PhaseObserver
}

func (o *Options) stage() Stage {
	if o.Stage == "" {
		return StageAll
	}
	return o.Stage
}

// cacheKey folds every option that changes the diagnostics of a file.
func (o *Options) cacheKey() string {
	return fmt.Sprintf("schema=%d;stage=%s;mode=%s;cycles=%t;validate=%t;max=%d;nowarn=%t;werror=%t",
		diskCacheSchemaVersion, o.stage(), o.Mode, o.CheckCycles, o.Validate,
		o.MaxDiagnostics, o.IgnoreWarnings, o.WarningsAsErrors)
}
