// Package pipeline runs an artifact through an ordered chain of stages.
package pipeline

import (
	"context"
	"fmt"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/zerr"
)

// Artifact is the file a pipeline produces, together with what it is built from.
type Artifact struct {
	// Bundle is the configuration the artifact is built with.
	Bundle *domain.Bundle
	// Path is the file every stage reads and rewrites in place.
	Path string
	// Files is the merged, ordered dependency closure of the bundle inputs.
	Files []string
	// Assets are the files referenced from Files whose content or modification
	// time ends up in the artifact, such as cache-busted or embedded images.
	Assets []string
	// Fingerprint identifies the inputs and options of this build. Empty when
	// up-to-date checks are disabled.
	Fingerprint string
}

// Stage is one step of the chain.
type Stage interface {
	// Name identifies the stage in progress output.
	Name() string
	// Run processes the artifact. Returning false stops the chain without error.
	Run(ctx context.Context, a *Artifact) (bool, error)
}

// Pipeline runs stages in order.
type Pipeline struct {
	telemetry ports.Telemetry
	stages    []Stage
}

// New creates a Pipeline. Nil stages are dropped, so optional stages can be passed unconditionally.
func New(telemetry ports.Telemetry, stages ...Stage) *Pipeline {
	p := &Pipeline{telemetry: telemetry}
	for _, s := range stages {
		if s != nil {
			p.stages = append(p.stages, s)
		}
	}
	return p
}

// Stages returns the names of the stages in run order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Run passes the artifact through every stage until one fails or stops the chain.
// It reports whether the chain ran to completion.
func (p *Pipeline) Run(ctx context.Context, a *Artifact) (bool, error) {
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		stageCtx, vertex := p.telemetry.Record(ctx, fmt.Sprintf("%s: %s", a.Bundle.Name, stage.Name()))
		proceed, err := stage.Run(stageCtx, a)
		if err != nil {
			err = zerr.With(zerr.Wrap(err, "stage failed"), "stage", stage.Name())
			vertex.Complete(err)
			return false, err
		}
		if !proceed {
			vertex.Log(domain.LogLevelInfo, "chain stopped")
			vertex.Complete(nil)
			return false, nil
		}
		vertex.Complete(nil)
	}
	return true, nil
}
