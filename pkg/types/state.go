package types

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// StateName is the processing stage of a dataset instance.
type StateName string

const (
	StateRaw       StateName = "raw"
	StateProcessed StateName = "processed"
	StateUnknown   StateName = "unknown"
	StateCorrupted StateName = "corrupted"
)

// MLStage is the pipeline a dataset instance is used in.
type MLStage string

const (
	StageTraining  MLStage = "training"
	StageInference MLStage = "inference"
)

// State classifies a dataset along both dimensions. States compare with ==.
type State struct {
	Name    StateName `json:"name" yaml:"name"`
	MLStage MLStage   `json:"ml_stage" yaml:"ml_stage"`
}

func (s State) String() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.MLStage)
}

// Degraded reports whether the state is UNKNOWN or CORRUPTED. Validation is
// refused in degraded states.
func (s State) Degraded() bool {
	return s.Name == StateUnknown || s.Name == StateCorrupted
}

// Infer classifies the observed column names against cfg. It never fails:
// corrupted and ambiguous datasets are ordinary states.
//
// The ML stage is TRAINING only when the configuration declares targets and
// all of them are observed. The state name is decided by the first matching
// rule: a required column is missing (CORRUPTED); a training target is
// missing (CORRUPTED); no model feature is missing (PROCESSED); no raw
// feature is missing (RAW); otherwise UNKNOWN.
func Infer(observed []string, cfg *DataConfig) State {
	present := make(map[string]bool, len(observed))
	for _, name := range observed {
		present[name] = true
	}

	state := State{Name: StateUnknown, MLStage: StageInference}
	targets := cfg.Target()
	if len(targets) > 0 && countMissing(targets, present) == 0 {
		state.MLStage = StageTraining
	}

	for _, t := range registry {
		if t.Required && countMissing(cfg.ColumnsWithTag(t.Name), present) > 0 {
			state.Name = StateCorrupted
			return state
		}
	}
	if state.MLStage == StageTraining && countMissing(targets, present) > 0 {
		state.Name = StateCorrupted
		return state
	}

	missingModel := countMissing(cfg.ModelFeatures(), present)
	switch {
	case missingModel == 0:
		state.Name = StateProcessed
	case countMissing(cfg.RawFeatures(), present) == 0:
		state.Name = StateRaw
	}
	return state
}

func countMissing(names []string, present map[string]bool) int {
	n := 0
	for _, name := range names {
		if !present[name] {
			n++
		}
	}
	return n
}

// MissingColumns returns, per tag, the configured column names absent from
// observed. Tags with nothing missing are omitted.
func MissingColumns(observed []string, cfg *DataConfig) map[string][]string {
	present := make(map[string]bool, len(observed))
	for _, name := range observed {
		present[name] = true
	}
	missing := make(map[string][]string)
	for _, t := range registry {
		for _, name := range cfg.ColumnsWithTag(t.Name) {
			if !present[name] {
				missing[t.Name] = append(missing[t.Name], name)
			}
		}
	}
	return missing
}

// StateColumns returns the configured column names relevant to state, in
// declaration order: the identifier, metadata and timestamp columns, plus
// targets when training, plus model features when PROCESSED or raw features
// when RAW. UNKNOWN projects to that core only. CORRUPTED has no meaningful
// projection and returns an *EmptyStateColumnsError.
func StateColumns(cfg *DataConfig, state State) ([]string, error) {
	if state.Name == StateCorrupted {
		return nil, &EmptyStateColumnsError{State: state}
	}

	relevant := map[string]bool{
		TagUniqueIdentifier: true,
		TagMetadata:         true,
		TagRowTimestamp:     true,
	}
	if state.MLStage == StageTraining {
		relevant[TagTarget] = true
	}
	switch state.Name {
	case StateProcessed:
		relevant[TagModelFeature] = true
	case StateRaw:
		relevant[TagRawFeature] = true
	}

	names := []string{}
	for _, c := range cfg.Columns() {
		for tag := range relevant {
			if c.Is(tag) {
				names = append(names, c.Name)
				break
			}
		}
	}
	if len(names) == 0 {
		return nil, &EmptyStateColumnsError{State: state}
	}
	return names, nil
}

// roleUnavailable lists, per role view, the states and stages in which the
// view has no meaning: derived and model features do not exist yet in a raw
// dataset, and an inference dataset has no target.
var roleUnavailable = map[string]struct {
	names  []StateName
	stages []MLStage
}{
	AttrDerivedFeatures: {names: []StateName{StateRaw}},
	AttrModelFeatures:   {names: []StateName{StateRaw}},
	AttrTarget:          {stages: []MLStage{StageInference}},
}

// RoleAvailable reports whether the role view attr may be read from a
// dataset in state.
func RoleAvailable(attr string, state State) bool {
	rule, ok := roleUnavailable[attr]
	if !ok {
		return true
	}
	for _, n := range rule.names {
		if state.Name == n {
			return false
		}
	}
	for _, st := range rule.stages {
		if state.MLStage == st {
			return false
		}
	}
	return true
}

// Fingerprint returns a stable digest of a column-name set, independent of
// order. Two observations with equal fingerprints infer to the same state.
func Fingerprint(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "\x00")))
	return hex.EncodeToString(sum[:])
}
