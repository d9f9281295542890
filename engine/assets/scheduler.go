package assets

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/rlres/engine/containers"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/resources"
)

// SortExporters orders exporters so that each one runs after every exporter
// producing a type it depends on. Ties keep registration order. When a pass
// makes no progress the remaining exporters are reported, in registration
// order, through ErrUnsatisfiedDependencies.
func SortExporters(exporters []Exporter, log *core.Logger) ([]Exporter, error) {
	if len(exporters) == 0 {
		return nil, nil
	}

	remaining := containers.NewRingQueue[Exporter](len(exporters))
	for _, e := range exporters {
		if err := remaining.Enqueue(e); err != nil {
			return nil, err
		}
	}

	ordered := make([]Exporter, 0, len(exporters))
	ready := make(map[resources.TypeName]struct{})

	for !remaining.IsEmpty() {
		progress := false
		for n := remaining.Len(); n > 0; n-- {
			e, err := remaining.Dequeue()
			if err != nil {
				return nil, err
			}
			if !depsReady(e, ready) {
				// Re-queued at the tail, so relative order survives the pass.
				if err := remaining.Enqueue(e); err != nil {
					return nil, err
				}
				continue
			}
			ordered = append(ordered, e)
			for _, t := range e.TypeNames() {
				ready[t] = struct{}{}
			}
			progress = true
			log.Debug("Pipeline: scheduled exporter %s (types=%v)", e.Name(), e.TypeNames())
		}

		if !progress {
			stuck := make([]string, 0, remaining.Len())
			for !remaining.IsEmpty() {
				e, _ := remaining.Dequeue()
				stuck = append(stuck, e.Name())
			}
			return nil, fmt.Errorf("%w among: %s", core.ErrUnsatisfiedDependencies, strings.Join(stuck, ", "))
		}
	}
	return ordered, nil
}

func depsReady(e Exporter, ready map[resources.TypeName]struct{}) bool {
	for _, dep := range e.DependsOn() {
		if _, ok := ready[dep]; !ok {
			return false
		}
	}
	return true
}
