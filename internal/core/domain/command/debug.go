package command

import (
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/interpreter"
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"

	"github.com/rs/zerolog/log"
)

type DebugModel struct {
	TotalKB    uint64
	HeapKB     uint64
	StackKB    uint64
	Goroutines int
	Version    string
	GOOS       string
	GOARCH     string
}

// Debug reports runtime statistics of the bot process.
type Debug struct{}

func NewDebug() *Debug {
	return &Debug{}
}

const kb = 1024
const debugTemplate = `allocated mem: %d KB
threads running: %d
heap: %d KB
stack: %d KB
compiled with %s for %s-%s`

func (d *Debug) Command(_ *domain.Message) *interpreter.Command[DebugModel] {
	return interpreter.New[DebugModel]("/debug", interpreter.ActionFunc[DebugModel](readRuntimeStats),
		interpreter.WithSynopsis("Show runtime statistics of the bot"))
}

func readRuntimeStats(_ context.Context, model *DebugModel) error {
	data := []metrics.Sample{
		{Name: "/memory/classes/heap/objects:bytes"},
		{Name: "/memory/classes/heap/stacks:bytes"},
		{Name: "/memory/classes/total:bytes"},
	}

	metrics.Read(data)

	for _, sample := range data {
		if sample.Value.Kind() != metrics.KindUint64 {
			log.Warn().Str("name", sample.Name).Msg("runtime metric unavailable")
			continue
		}
		log.Debug().Str("name", sample.Name).Uint64("value", sample.Value.Uint64()).Msg("runtime metric")
	}

	model.HeapKB = uint64Sample(data[0]) / kb
	model.StackKB = uint64Sample(data[1]) / kb
	model.TotalKB = uint64Sample(data[2]) / kb
	model.Goroutines = runtime.NumGoroutine()
	model.Version = runtime.Version()
	model.GOOS = runtime.GOOS
	model.GOARCH = runtime.GOARCH

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				model.GOOS = setting.Value
			case "GOARCH":
				model.GOARCH = setting.Value
			}
		}
	}

	return nil
}

func uint64Sample(sample metrics.Sample) uint64 {
	if sample.Value.Kind() != metrics.KindUint64 {
		return 0
	}

	return sample.Value.Uint64()
}

func (d *Debug) Reply(model *DebugModel) string {
	return fmt.Sprintf(debugTemplate,
		model.TotalKB, model.Goroutines, model.HeapKB, model.StackKB, model.Version, model.GOOS, model.GOARCH)
}
