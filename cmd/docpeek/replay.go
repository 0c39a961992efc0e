package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/docpeek"
	"github.com/fwojciec/docpeek/hover"
	"gopkg.in/yaml.v3"
)

// Script is a recorded sequence of pointer events over the links of a
// page.
//
//	page: https://cook.example/index.html
//	viewport: 800
//	events:
//	  - {kind: enter, target: "loop.html#update", x: 100, y: 40}
//	  - {kind: move, x: 120, y: 45}
//	  - {kind: leave}
type Script struct {
	Page     string `yaml:"page"`
	Viewport int    `yaml:"viewport"`
	Events   []Step `yaml:"events"`
}

// Step is one pointer event of a Script. Target is the preview target of
// the link entered and is only used by enter steps.
type Step struct {
	Kind          string `yaml:"kind"`
	Target        string `yaml:"target"`
	docpeek.Point `yaml:",inline"`
}

// ParseScript decodes a YAML script and resolves its targets against the
// script's page.
func ParseScript(data []byte) (*Script, []docpeek.PointerEvent, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, nil, docpeek.Errorf(docpeek.EINVALID, "invalid script: %v", err)
	}
	if s.Page == "" {
		return nil, nil, docpeek.Errorf(docpeek.EINVALID, "script has no page")
	}

	events := make([]docpeek.PointerEvent, 0, len(s.Events))
	for i, step := range s.Events {
		ev := docpeek.PointerEvent{Position: step.Point}
		switch step.Kind {
		case "enter":
			key, err := docpeek.NewPreviewKey(s.Page, step.Target)
			if err != nil {
				return nil, nil, err
			}
			ev.Kind = docpeek.PointerEnter
			ev.Key = key
		case "move":
			ev.Kind = docpeek.PointerMove
		case "leave":
			ev.Kind = docpeek.PointerLeave
		default:
			return nil, nil, docpeek.Errorf(docpeek.EINVALID, "event %d: unknown kind %q", i+1, step.Kind)
		}
		events = append(events, ev)
	}
	return &s, events, nil
}

// Run executes the replay command. Events are applied one at a time, each
// enter waiting for its preview, so the output is deterministic.
func (c *ReplayCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.Script)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	script, events, err := ParseScript(data)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docpeek.ErrorMessage(err))
		return err
	}

	surface := newTextSurface(deps.Stdout, script.Viewport)
	p := hover.NewPresenter(deps.Previewer, surface)

	for _, ev := range events {
		fmt.Fprintf(deps.Stdout, "> %s %d,%d\n", ev.Kind, ev.Position.X, ev.Position.Y)
		switch ev.Kind {
		case docpeek.PointerEnter:
			p.PointerEnter(deps.Ctx, ev.Key, ev.Position)
		case docpeek.PointerMove:
			p.PointerMove(ev.Position)
		case docpeek.PointerLeave:
			p.PointerLeave()
		}
		if err := deps.Ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
